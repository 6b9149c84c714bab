package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// TokenType distinguishes the two token namespaces
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims represents the JWT claims carried by both access and refresh tokens
type Claims struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	Confirmed bool   `json:"confirmed"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JTI returns the unique token identifier
func (c *Claims) JTI() string {
	return c.ID
}

// GenerateAccessToken generates a new access token with a fresh JTI
func GenerateAccessToken(email, role string, confirmed bool, secret string, expiryMinutes int) (string, string, error) {
	return generate(email, role, confirmed, TokenTypeAccess, secret, time.Duration(expiryMinutes)*time.Minute)
}

// GenerateRefreshToken generates a new refresh token with a fresh JTI
func GenerateRefreshToken(email, role string, confirmed bool, secret string, expiryDays int) (string, string, error) {
	return generate(email, role, confirmed, TokenTypeRefresh, secret, time.Duration(expiryDays)*24*time.Hour)
}

func generate(email, role string, confirmed bool, tokenType TokenType, secret string, ttl time.Duration) (string, string, error) {
	jti := uuid.New().String()

	claims := Claims{
		Email:     email,
		Role:      role,
		Confirmed: confirmed,
		TokenType: string(tokenType),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "clubhub-backend",
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// ValidateAccessToken validates an access token and returns its claims
func ValidateAccessToken(tokenString, secret string) (*Claims, error) {
	return validate(tokenString, TokenTypeAccess, secret)
}

// ValidateRefreshToken validates a refresh token and returns its claims
func ValidateRefreshToken(tokenString, secret string) (*Claims, error) {
	return validate(tokenString, TokenTypeRefresh, secret)
}

func validate(tokenString string, tokenType TokenType, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	// A refresh token must never pass for an access token and vice versa
	if claims.TokenType != string(tokenType) {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// AccessExpiry returns the expiry timestamp for an access token issued now
func AccessExpiry(expiryMinutes int) time.Time {
	return time.Now().Add(time.Duration(expiryMinutes) * time.Minute)
}

// RefreshExpiry returns the expiry timestamp for a refresh token issued now
func RefreshExpiry(expiryDays int) time.Time {
	return time.Now().Add(time.Duration(expiryDays) * 24 * time.Hour)
}
