package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	SecretKey string
	Database  DatabaseConfig
	JWT       JWTConfig
	Mail      MailConfig
	Links     LinkConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// MailConfig holds SMTP configuration
type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// LinkConfig holds the salts, expiries and target URLs for email link tokens
type LinkConfig struct {
	ConfirmEmailSalt    string
	ResetPasswordSalt   string
	ConfirmEmailExpiry  time.Duration
	ResetPasswordExpiry time.Duration
	BaseURL             string
	LoginURL            string
	RecoverURL          string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "5000"),
		SecretKey: getEnv("SECRET_KEY", "default_secret_key"),
		Database:  loadDatabaseConfig(),
		JWT:       loadJWTConfig(),
		Mail:      loadMailConfig(),
		Links:     loadLinkConfig(),
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		User:     getEnv("DB_USER", "root"),
		Password: getEnv("DB_PASS", ""),
		DBName:   getEnv("DB_NAME", "clubhub"),
	}
}

func loadJWTConfig() JWTConfig {
	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "30"))

	return JWTConfig{
		Secret:           getEnv("JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

func loadMailConfig() MailConfig {
	return MailConfig{
		Host:     getEnv("MAIL_HOST", "smtp.gmail.com"),
		Port:     getEnv("MAIL_PORT", "587"),
		Username: getEnv("MAIL_USERNAME", ""),
		Password: getEnv("MAIL_PASSWORD", ""),
		From:     getEnv("MAIL_DEFAULT_SENDER", "no-reply@clubhub.app"),
	}
}

func loadLinkConfig() LinkConfig {
	confirmHours, _ := strconv.Atoi(getEnv("CONFIRM_EMAIL_EXPIRY_HOURS", "24"))
	resetHours, _ := strconv.Atoi(getEnv("RESET_PASSWORD_EXPIRY_HOURS", "24"))

	return LinkConfig{
		ConfirmEmailSalt:    getEnv("CONFIRM_EMAIL_SALT", "confirm-email-salt"),
		ResetPasswordSalt:   getEnv("RESET_PASSWORD_SALT", "reset-password-salt"),
		ConfirmEmailExpiry:  time.Duration(confirmHours) * time.Hour,
		ResetPasswordExpiry: time.Duration(resetHours) * time.Hour,
		BaseURL:             getEnv("BASE_URL", "http://127.0.0.1:5000"),
		LoginURL:            getEnv("LOGIN_URL", "https://www.clubhub.app/signin"),
		RecoverURL:          getEnv("RECOVER_URL", "https://www.clubhub.app/resetpassword"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://www.clubhub.app"
	}
	return origins
}
