package repositories

import (
	"context"
	"testing"
	"time"

	"clubhub-backend/internal/adapters/persistence/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, Password: "irrelevant", Role: "officer"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestIsRevokedFailsOpen(t *testing.T) {
	db := newTestDB(t)
	repo := NewTokenRecordRepository(db)

	// No record at all means not revoked
	revoked, err := repo.IsRevoked(context.Background(), "never-recorded")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestRevokeFlipsRecord(t *testing.T) {
	db := newTestDB(t)
	repo := NewTokenRecordRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "officer@clubs.edu")

	require.NoError(t, repo.Record(ctx, user.ID, "jti-1", models.TokenTypeAccess, time.Now().Add(time.Hour)))

	revoked, err := repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "jti-1", models.TokenTypeAccess))

	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestRevokeIsScopedToNamespace(t *testing.T) {
	db := newTestDB(t)
	repo := NewTokenRecordRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "officer@clubs.edu")

	require.NoError(t, repo.Record(ctx, user.ID, "jti-r", models.TokenTypeRefresh, time.Now().Add(time.Hour)))

	err := repo.Revoke(ctx, "jti-r", models.TokenTypeAccess)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	revoked, err := repo.IsRevoked(ctx, "jti-r")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestSameJTIAllowedAcrossNamespaces(t *testing.T) {
	db := newTestDB(t)
	repo := NewTokenRecordRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "officer@clubs.edu")

	// Uniqueness holds per namespace, not globally
	require.NoError(t, repo.Record(ctx, user.ID, "shared", models.TokenTypeAccess, time.Now().Add(time.Hour)))
	require.NoError(t, repo.Record(ctx, user.ID, "shared", models.TokenTypeRefresh, time.Now().Add(time.Hour)))

	err := repo.Record(ctx, user.ID, "shared", models.TokenTypeAccess, time.Now().Add(time.Hour))
	require.Error(t, err)
}

func TestRevokeAllByUserID(t *testing.T) {
	db := newTestDB(t)
	repo := NewTokenRecordRepository(db)
	ctx := context.Background()
	victim := seedUser(t, db, "victim@clubs.edu")
	other := seedUser(t, db, "other@clubs.edu")

	require.NoError(t, repo.Record(ctx, victim.ID, "v-access", models.TokenTypeAccess, time.Now().Add(time.Hour)))
	require.NoError(t, repo.Record(ctx, victim.ID, "v-refresh", models.TokenTypeRefresh, time.Now().Add(time.Hour)))
	require.NoError(t, repo.Record(ctx, other.ID, "o-access", models.TokenTypeAccess, time.Now().Add(time.Hour)))

	require.NoError(t, repo.RevokeAllByUserID(ctx, victim.ID))

	for _, jti := range []string{"v-access", "v-refresh"} {
		revoked, err := repo.IsRevoked(ctx, jti)
		require.NoError(t, err)
		require.True(t, revoked)
	}

	revoked, err := repo.IsRevoked(ctx, "o-access")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestDeleteExpiredAndCountActive(t *testing.T) {
	db := newTestDB(t)
	repo := NewTokenRecordRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "officer@clubs.edu")

	require.NoError(t, repo.Record(ctx, user.ID, "live", models.TokenTypeAccess, time.Now().Add(time.Hour)))
	require.NoError(t, repo.Record(ctx, user.ID, "stale", models.TokenTypeAccess, time.Now().Add(-time.Hour)))
	require.NoError(t, repo.Record(ctx, user.ID, "dead", models.TokenTypeRefresh, time.Now().Add(time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "dead", models.TokenTypeRefresh))

	active, err := repo.CountActive(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, active)

	require.NoError(t, repo.DeleteExpired(ctx))

	_, err = repo.GetByJTI(ctx, "stale")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Unexpired records survive the sweep, revoked or not
	for _, jti := range []string{"live", "dead"} {
		_, err = repo.GetByJTI(ctx, jti)
		require.NoError(t, err)
	}
}
