package services

import (
	"context"
	"testing"

	"clubhub-backend/internal/adapters/persistence/models"
	"clubhub-backend/internal/adapters/persistence/repositories"
	"clubhub-backend/internal/core/domain"
	"clubhub-backend/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAuthService(t *testing.T) (*AuthService, *gorm.DB, *stubSender) {
	t.Helper()

	db := newTestDB(t)
	cfg := newTestConfig()
	sender := &stubSender{}

	for _, name := range []string{"Academic", "Sports", "Arts"} {
		require.NoError(t, db.Create(&models.Tag{Name: name}).Error)
	}

	svc := NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewTokenRecordRepository(db),
		repositories.NewEmailTokenRepository(db),
		repositories.NewPreVerifiedEmailRepository(db),
		repositories.NewClubRepository(db),
		repositories.NewTagRepository(db),
		sender,
		cfg,
	)
	return svc, db, sender
}

func boolPtr(b bool) *bool { return &b }

func registerInput(email string) *RegisterInput {
	return &RegisterInput{
		Name:        "Chess Club",
		Email:       email,
		Password:    "hunter2hunter2",
		Tags:        []uint{1, 2},
		AppRequired: boolPtr(false),
		NewMembers:  boolPtr(true),
	}
}

func allowEmail(t *testing.T, svc *AuthService, email string) {
	t.Helper()
	require.NoError(t, svc.preVerifiedRepo.Add(context.Background(), email))
}

func TestRegisterRequiresPreVerifiedEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	err := svc.Register(ctx, registerInput("stranger@clubs.edu"))
	require.ErrorIs(t, err, domain.ErrEmailNotVerified)
}

func TestRegisterCreatesUserAndClub(t *testing.T) {
	svc, db, sender := newTestAuthService(t)
	ctx := context.Background()
	allowEmail(t, svc, "officer@clubs.edu")

	require.NoError(t, svc.Register(ctx, registerInput("officer@clubs.edu")))

	user, err := svc.userRepo.GetByEmail(ctx, "officer@clubs.edu")
	require.NoError(t, err)
	require.Equal(t, "officer", user.Role)
	require.False(t, user.Confirmed)

	var club models.Club
	require.NoError(t, db.Preload("Tags").Where("owner_id = ?", user.ID).First(&club).Error)
	require.Equal(t, "chess-club", club.Slug)
	require.Len(t, club.Tags, 2)

	// The confirmation mail went out
	require.Len(t, sender.recipients, 1)
	require.Equal(t, []string{"officer@clubs.edu"}, sender.recipients[0])
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()
	allowEmail(t, svc, "officer@clubs.edu")

	require.NoError(t, svc.Register(ctx, registerInput("officer@clubs.edu")))
	err := svc.Register(ctx, registerInput("officer@clubs.edu"))
	require.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestConfirmEmail(t *testing.T) {
	svc, db, _ := newTestAuthService(t)
	ctx := context.Background()
	allowEmail(t, svc, "officer@clubs.edu")
	require.NoError(t, svc.Register(ctx, registerInput("officer@clubs.edu")))

	token := lastLinkToken(t, db, models.PurposeConfirmEmail)
	require.NoError(t, svc.ConfirmEmail(ctx, token))

	user, err := svc.userRepo.GetByEmail(ctx, "officer@clubs.edu")
	require.NoError(t, err)
	require.True(t, user.Confirmed)
	require.NotNil(t, user.ConfirmedOn)

	// A consumed token is dead
	err = svc.ConfirmEmail(ctx, token)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestConfirmEmailRejectsUnknownToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	err := svc.ConfirmEmail(context.Background(), "never-issued")
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestLoginErrors(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()
	allowEmail(t, svc, "officer@clubs.edu")
	require.NoError(t, svc.Register(ctx, registerInput("officer@clubs.edu")))

	_, err := svc.Login(ctx, &LoginInput{Email: "nobody@clubs.edu", Password: "whatever"})
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.Login(ctx, &LoginInput{Email: "officer@clubs.edu", Password: "wrong password"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginIssuesWorkingTokenPair(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()
	allowEmail(t, svc, "officer@clubs.edu")
	require.NoError(t, svc.Register(ctx, registerInput("officer@clubs.edu")))

	pair, err := svc.Login(ctx, &LoginInput{Email: "officer@clubs.edu", Password: "hunter2hunter2"})
	require.NoError(t, err)

	access, err := svc.Authenticate(ctx, pair.AccessToken, jwt.TokenTypeAccess)
	require.NoError(t, err)
	require.Equal(t, "officer@clubs.edu", access.Email)
	require.Equal(t, domain.RoleOfficer, access.Role)

	refresh, err := svc.Authenticate(ctx, pair.RefreshToken, jwt.TokenTypeRefresh)
	require.NoError(t, err)
	require.NotEqual(t, access.JTI, refresh.JTI)

	// Tokens only authenticate in their own namespace
	_, err = svc.Authenticate(ctx, pair.AccessToken, jwt.TokenTypeRefresh)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
	_, err = svc.Authenticate(ctx, pair.RefreshToken, jwt.TokenTypeAccess)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestRevokeAccessLeavesRefreshAlive(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()
	allowEmail(t, svc, "officer@clubs.edu")
	require.NoError(t, svc.Register(ctx, registerInput("officer@clubs.edu")))

	pair, err := svc.Login(ctx, &LoginInput{Email: "officer@clubs.edu", Password: "hunter2hunter2"})
	require.NoError(t, err)

	access, err := svc.Authenticate(ctx, pair.AccessToken, jwt.TokenTypeAccess)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAccess(ctx, access.JTI))

	_, err = svc.Authenticate(ctx, pair.AccessToken, jwt.TokenTypeAccess)
	require.ErrorIs(t, err, domain.ErrRevokedToken)

	// The refresh token is untouched and still mints access tokens
	refresh, err := svc.Authenticate(ctx, pair.RefreshToken, jwt.TokenTypeRefresh)
	require.NoError(t, err)

	newAccess, err := svc.Refresh(ctx, refresh)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, newAccess, jwt.TokenTypeAccess)
	require.NoError(t, err)
}

func TestRevokeUnknownJTI(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.RevokeAccess(ctx, "no-such-jti"), domain.ErrRecordNotFound)
	require.ErrorIs(t, svc.RevokeRefresh(ctx, "no-such-jti"), domain.ErrRecordNotFound)
}

func TestRevokeIsNamespaced(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()
	allowEmail(t, svc, "officer@clubs.edu")
	require.NoError(t, svc.Register(ctx, registerInput("officer@clubs.edu")))

	pair, err := svc.Login(ctx, &LoginInput{Email: "officer@clubs.edu", Password: "hunter2hunter2"})
	require.NoError(t, err)

	refresh, err := svc.Authenticate(ctx, pair.RefreshToken, jwt.TokenTypeRefresh)
	require.NoError(t, err)

	// A refresh JTI cannot be revoked through the access namespace
	require.ErrorIs(t, svc.RevokeAccess(ctx, refresh.JTI), domain.ErrRecordNotFound)

	_, err = svc.Authenticate(ctx, pair.RefreshToken, jwt.TokenTypeRefresh)
	require.NoError(t, err)
}

func TestAuthenticateUntrackedTokenPasses(t *testing.T) {
	// A valid token whose identifier was never recorded is let through:
	// its record is assumed to have aged out of the store
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()
	allowEmail(t, svc, "officer@clubs.edu")
	require.NoError(t, svc.Register(ctx, registerInput("officer@clubs.edu")))

	cfg := newTestConfig()
	token, _, err := jwt.GenerateAccessToken("officer@clubs.edu", "officer", false, cfg.JWT.Secret, 15)
	require.NoError(t, err)

	identity, err := svc.Authenticate(ctx, token, jwt.TokenTypeAccess)
	require.NoError(t, err)
	require.Equal(t, "officer@clubs.edu", identity.Email)
}

func TestAuthenticateExpiredAndTampered(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()
	cfg := newTestConfig()

	expired, _, err := jwt.GenerateAccessToken("officer@clubs.edu", "officer", false, cfg.JWT.Secret, -1)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, expired, jwt.TokenTypeAccess)
	require.ErrorIs(t, err, domain.ErrExpiredToken)

	forged, _, err := jwt.GenerateAccessToken("officer@clubs.edu", "officer", false, "attacker-secret", 15)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, forged, jwt.TokenTypeAccess)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestConfirmResetRevokesEverySession(t *testing.T) {
	svc, db, _ := newTestAuthService(t)
	ctx := context.Background()
	allowEmail(t, svc, "officer@clubs.edu")
	require.NoError(t, svc.Register(ctx, registerInput("officer@clubs.edu")))

	// Two independent sessions
	first, err := svc.Login(ctx, &LoginInput{Email: "officer@clubs.edu", Password: "hunter2hunter2"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, &LoginInput{Email: "officer@clubs.edu", Password: "hunter2hunter2"})
	require.NoError(t, err)

	require.NoError(t, svc.RequestReset(ctx, "officer@clubs.edu"))
	token := lastLinkToken(t, db, models.PurposeResetPassword)
	require.NoError(t, svc.ConfirmReset(ctx, token, "brand-new-password"))

	// Every outstanding token in both namespaces is dead
	for _, tok := range []string{first.AccessToken, second.AccessToken} {
		_, err = svc.Authenticate(ctx, tok, jwt.TokenTypeAccess)
		require.ErrorIs(t, err, domain.ErrRevokedToken)
	}
	for _, tok := range []string{first.RefreshToken, second.RefreshToken} {
		_, err = svc.Authenticate(ctx, tok, jwt.TokenTypeRefresh)
		require.ErrorIs(t, err, domain.ErrRevokedToken)
	}

	// Old password no longer works, the new one does
	_, err = svc.Login(ctx, &LoginInput{Email: "officer@clubs.edu", Password: "hunter2hunter2"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	pair, err := svc.Login(ctx, &LoginInput{Email: "officer@clubs.edu", Password: "brand-new-password"})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, pair.AccessToken, jwt.TokenTypeAccess)
	require.NoError(t, err)
}

func TestConfirmResetTokenIsSingleUse(t *testing.T) {
	svc, db, _ := newTestAuthService(t)
	ctx := context.Background()
	allowEmail(t, svc, "officer@clubs.edu")
	require.NoError(t, svc.Register(ctx, registerInput("officer@clubs.edu")))

	require.NoError(t, svc.RequestReset(ctx, "officer@clubs.edu"))
	token := lastLinkToken(t, db, models.PurposeResetPassword)

	require.NoError(t, svc.ConfirmReset(ctx, token, "brand-new-password"))
	err := svc.ConfirmReset(ctx, token, "another-password")
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestResetTokenCannotConfirmEmail(t *testing.T) {
	// A reset token must never be usable as a confirmation token
	svc, db, _ := newTestAuthService(t)
	ctx := context.Background()
	allowEmail(t, svc, "officer@clubs.edu")
	require.NoError(t, svc.Register(ctx, registerInput("officer@clubs.edu")))

	require.NoError(t, svc.RequestReset(ctx, "officer@clubs.edu"))
	token := lastLinkToken(t, db, models.PurposeResetPassword)

	err := svc.ConfirmEmail(ctx, token)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestEmailExists(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	exists, err := svc.EmailExists(ctx, "officer@clubs.edu")
	require.NoError(t, err)
	require.False(t, exists)

	allowEmail(t, svc, "officer@clubs.edu")
	exists, err = svc.EmailExists(ctx, "officer@clubs.edu")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "chess-club", slugify("Chess Club"))
	require.Equal(t, "a-b-c", slugify("  A&B / C!  "))
	require.Equal(t, "robotics-2026", slugify("Robotics 2026"))
}
