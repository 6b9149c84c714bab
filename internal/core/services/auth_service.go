package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"clubhub-backend/internal/adapters/persistence/models"
	"clubhub-backend/internal/adapters/persistence/repositories"
	"clubhub-backend/internal/config"
	"clubhub-backend/internal/core/domain"
	"clubhub-backend/internal/pkg/jwt"
	"clubhub-backend/internal/pkg/linktoken"
	"clubhub-backend/internal/pkg/mail"
	"clubhub-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService handles registration, the token lifecycle and password reset
type AuthService struct {
	userRepo        repositories.UserRepository
	tokenRepo       repositories.TokenRecordRepository
	emailTokenRepo  repositories.EmailTokenRepository
	preVerifiedRepo repositories.PreVerifiedEmailRepository
	clubRepo        repositories.ClubRepository
	tagRepo         repositories.TagRepository
	serializer      *linktoken.Serializer
	sender          mail.Sender
	cfg             *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRecordRepository,
	emailTokenRepo repositories.EmailTokenRepository,
	preVerifiedRepo repositories.PreVerifiedEmailRepository,
	clubRepo repositories.ClubRepository,
	tagRepo repositories.TagRepository,
	sender mail.Sender,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		emailTokenRepo:  emailTokenRepo,
		preVerifiedRepo: preVerifiedRepo,
		clubRepo:        clubRepo,
		tagRepo:         tagRepo,
		serializer:      linktoken.NewSerializer(cfg.SecretKey),
		sender:          sender,
		cfg:             cfg,
	}
}

// RegisterInput represents club registration input
type RegisterInput struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Tags        []uint `json:"tags" validate:"required,min=1,max=3"`
	AppRequired *bool  `json:"app_required" validate:"required"`
	NewMembers  *bool  `json:"new_members" validate:"required"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// EmailExists reports whether an email is on the pre-verified allow-list
func (s *AuthService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.preVerifiedRepo.Exists(ctx, email)
}

// Register creates an officer user and their club, then sends the
// email confirmation link
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) error {
	// 1. Registration is gated on the pre-verified allow-list
	allowed, err := s.preVerifiedRepo.Exists(ctx, input.Email)
	if err != nil {
		return err
	}
	if !allowed {
		return domain.ErrEmailNotVerified
	}

	// 2. One club per email
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrUserAlreadyExists
	}

	// 3. Hash password
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return err
	}

	// 4. Create user
	user := &models.User{
		Email:             input.Email,
		Password:          hashed,
		Role:              string(domain.RoleOfficer),
		HasUsablePassword: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	// 5. Create club with its tags
	tags, err := s.tagRepo.GetByIDs(ctx, input.Tags)
	if err != nil {
		return err
	}

	club := &models.Club{
		Slug:        slugify(input.Name),
		Name:        input.Name,
		OwnerID:     user.ID,
		AppRequired: *input.AppRequired,
		NewMembers:  *input.NewMembers,
		Tags:        tags,
	}
	if err := s.clubRepo.Create(ctx, club); err != nil {
		return err
	}

	// 6. Send the confirmation link
	if err := s.sendConfirmEmail(ctx, input.Email); err != nil {
		return err
	}

	log.Printf("✅ Club registered: %s (%s)", club.Name, user.Email)
	return nil
}

// ConfirmEmail marks the user confirmed if the link token checks out.
// Confirming an already-confirmed user is a no-op.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) error {
	email, err := s.verifyLinkToken(ctx, token, models.PurposeConfirmEmail)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if user.Confirmed {
		return nil
	}

	now := time.Now()
	user.Confirmed = true
	user.ConfirmedOn = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ Email confirmed: %s", user.Email)
	return nil
}

// Login verifies credentials and issues a recorded access/refresh pair
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*domain.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.issueAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshJTI, err := jwt.GenerateRefreshToken(
		user.Email, user.Role, user.Confirmed,
		s.cfg.JWT.RefreshSecret, s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}
	if err := s.tokenRepo.Record(ctx, user.ID, refreshJTI, models.TokenTypeRefresh, jwt.RefreshExpiry(s.cfg.JWT.RefreshTokenDays)); err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Authenticate validates a bearer token end to end: signature, expiry,
// token type, blacklist, then identity resolution. Each failure maps to
// its own domain error.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string, tokenType jwt.TokenType) (*domain.Identity, error) {
	var claims *jwt.Claims
	var err error

	switch tokenType {
	case jwt.TokenTypeAccess:
		claims, err = jwt.ValidateAccessToken(tokenString, s.cfg.JWT.Secret)
	case jwt.TokenTypeRefresh:
		claims, err = jwt.ValidateRefreshToken(tokenString, s.cfg.JWT.RefreshSecret)
	default:
		return nil, domain.ErrInvalidToken
	}
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}

	revoked, err := s.tokenRepo.IsRevoked(ctx, claims.JTI())
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrRevokedToken
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &domain.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      domain.Role(user.Role),
		Confirmed: user.Confirmed,
		JTI:       claims.JTI(),
	}, nil
}

// Refresh issues a fresh access token for an identity already
// authenticated by its refresh token. The refresh token stays valid.
func (s *AuthService) Refresh(ctx context.Context, identity *domain.Identity) (string, error) {
	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}

	accessToken, err := s.issueAccessToken(ctx, user)
	if err != nil {
		return "", err
	}

	log.Printf("✅ Access token refreshed for: %s", user.Email)
	return accessToken, nil
}

// RevokeAccess blacklists a single access token by identifier
func (s *AuthService) RevokeAccess(ctx context.Context, jti string) error {
	return s.revoke(ctx, jti, models.TokenTypeAccess)
}

// RevokeRefresh blacklists a single refresh token by identifier
func (s *AuthService) RevokeRefresh(ctx context.Context, jti string) error {
	return s.revoke(ctx, jti, models.TokenTypeRefresh)
}

func (s *AuthService) revoke(ctx context.Context, jti, tokenType string) error {
	if err := s.tokenRepo.Revoke(ctx, jti, tokenType); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecordNotFound
		}
		return err
	}

	log.Printf("✅ %s token revoked: %s", tokenType, jti)
	return nil
}

// RequestReset sends a password reset link. It does not reveal whether
// the email belongs to a registered user.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	token, err := s.generateLinkToken(ctx, email, models.PurposeResetPassword)
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s?token=%s", s.cfg.Links.RecoverURL, token)
	body := fmt.Sprintf(
		`<p>A password reset was requested for this email address.</p>
<p><a href="%s">Reset your password</a></p>
<p>If you didn't request this, you can safely ignore this email.</p>`, resetURL)

	return s.sender.Send("Reset your password", []string{email}, body)
}

// ConfirmReset sets a new password and kills every outstanding session.
// The bulk revoke happens before this returns, so no response is sent
// while old tokens are still usable.
func (s *AuthService) ConfirmReset(ctx context.Context, token, newPassword string) error {
	email, err := s.verifyLinkToken(ctx, token, models.PurposeResetPassword)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	// Expire every outstanding access and refresh token first
	if err := s.tokenRepo.RevokeAllByUserID(ctx, user.ID); err != nil {
		return err
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.HasUsablePassword = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ Password reset, all sessions revoked: %s", user.Email)
	return nil
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// issueAccessToken generates and records a new access token for the user
func (s *AuthService) issueAccessToken(ctx context.Context, user *models.User) (string, error) {
	accessToken, jti, err := jwt.GenerateAccessToken(
		user.Email, user.Role, user.Confirmed,
		s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return "", err
	}

	if err := s.tokenRepo.Record(ctx, user.ID, jti, models.TokenTypeAccess, jwt.AccessExpiry(s.cfg.JWT.AccessTokenMins)); err != nil {
		return "", err
	}

	return accessToken, nil
}

// sendConfirmEmail generates a confirm-email link token and mails it
func (s *AuthService) sendConfirmEmail(ctx context.Context, email string) error {
	token, err := s.generateLinkToken(ctx, email, models.PurposeConfirmEmail)
	if err != nil {
		return err
	}

	confirmURL := fmt.Sprintf("%s/api/user/confirm/%s", s.cfg.Links.BaseURL, token)
	body := fmt.Sprintf(
		`<p>Welcome! Please confirm your email address to activate your club.</p>
<p><a href="%s">Confirm your email</a></p>`, confirmURL)

	return s.sender.Send("Please confirm your email", []string{email}, body)
}

func (s *AuthService) linkSalt(purpose string) string {
	if purpose == models.PurposeResetPassword {
		return s.cfg.Links.ResetPasswordSalt
	}
	return s.cfg.Links.ConfirmEmailSalt
}

func (s *AuthService) linkExpiry(purpose string) time.Duration {
	if purpose == models.PurposeResetPassword {
		return s.cfg.Links.ResetPasswordExpiry
	}
	return s.cfg.Links.ConfirmEmailExpiry
}

// generateLinkToken creates a signed link token and persists it so the
// first successful use consumes it
func (s *AuthService) generateLinkToken(ctx context.Context, email, purpose string) (string, error) {
	token := s.serializer.Generate(email, s.linkSalt(purpose))

	record := &models.EmailToken{
		Token:     token,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(s.linkExpiry(purpose)),
	}
	if err := s.emailTokenRepo.Create(ctx, record); err != nil {
		return "", err
	}

	return token, nil
}

// verifyLinkToken checks a link token against the store and its
// signature/age, consuming it on success
func (s *AuthService) verifyLinkToken(ctx context.Context, token, purpose string) (string, error) {
	record, err := s.emailTokenRepo.GetByToken(ctx, token, purpose)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrInvalidToken
		}
		return "", err
	}
	if record.Used {
		return "", domain.ErrInvalidToken
	}

	email, err := s.serializer.Verify(token, s.linkSalt(purpose), s.linkExpiry(purpose))
	if err != nil {
		if errors.Is(err, linktoken.ErrTokenExpired) {
			return "", domain.ErrExpiredToken
		}
		return "", domain.ErrInvalidToken
	}

	if err := s.emailTokenRepo.MarkUsed(ctx, record.ID); err != nil {
		return "", err
	}

	return email, nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL-safe club identifier from its name
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
