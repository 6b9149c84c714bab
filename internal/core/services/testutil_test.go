package services

import (
	"testing"
	"time"

	"clubhub-backend/internal/adapters/persistence/models"
	"clubhub-backend/internal/config"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

// newTestConfig returns a config with deterministic secrets and short,
// non-zero expiries
func newTestConfig() *config.Config {
	return &config.Config{
		AppMode:   "dev",
		SecretKey: "test-app-secret",
		JWT: config.JWTConfig{
			Secret:           "test-jwt-secret",
			RefreshSecret:    "test-jwt-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 30,
		},
		Links: config.LinkConfig{
			ConfirmEmailSalt:    "confirm-email-salt",
			ResetPasswordSalt:   "reset-password-salt",
			ConfirmEmailExpiry:  time.Hour,
			ResetPasswordExpiry: time.Hour,
			BaseURL:             "http://127.0.0.1:5000",
			LoginURL:            "http://127.0.0.1:3000/signin",
			RecoverURL:          "http://127.0.0.1:3000/resetpassword",
		},
	}
}

// stubSender records outgoing mail instead of sending it
type stubSender struct {
	subjects   []string
	recipients [][]string
	bodies     []string
}

func (s *stubSender) Send(subject string, recipients []string, body string) error {
	s.subjects = append(s.subjects, subject)
	s.recipients = append(s.recipients, recipients)
	s.bodies = append(s.bodies, body)
	return nil
}

// lastLinkToken pulls the most recently issued link token for a purpose
// straight from the store, standing in for reading the emailed URL
func lastLinkToken(t *testing.T, db *gorm.DB, purpose string) string {
	t.Helper()

	var record models.EmailToken
	err := db.Where("purpose = ?", purpose).Order("id DESC").First(&record).Error
	require.NoError(t, err)
	return record.Token
}
