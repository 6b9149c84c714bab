package repositories

import (
	"context"
	"time"

	"clubhub-backend/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountConfirmed(ctx context.Context) (int64, error)
}

// TokenRecordRepository defines the persistent token blacklist interface.
// Access and refresh identifiers live in separate namespaces.
type TokenRecordRepository interface {
	Record(ctx context.Context, userID uint, jti, tokenType string, expiresAt time.Time) error
	GetByJTI(ctx context.Context, jti string) (*models.TokenRecord, error)
	IsRevoked(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti, tokenType string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
	CountActive(ctx context.Context) (int64, error)
}

// EmailTokenRepository defines the email link token store interface
type EmailTokenRepository interface {
	Create(ctx context.Context, token *models.EmailToken) error
	GetByToken(ctx context.Context, token, purpose string) (*models.EmailToken, error)
	MarkUsed(ctx context.Context, id uint) error
}

// PreVerifiedEmailRepository defines the registration allow-list interface
type PreVerifiedEmailRepository interface {
	Exists(ctx context.Context, email string) (bool, error)
	Add(ctx context.Context, email string) error
}

// ClubRepository defines club repository interface
type ClubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id uint) (*models.Club, error)
	GetBySlug(ctx context.Context, slug string) (*models.Club, error)
	GetByOwnerID(ctx context.Context, ownerID uint) (*models.Club, error)
	ListOfficerOwned(ctx context.Context) ([]*models.Club, error)
	ListAll(ctx context.Context) ([]*models.Club, error)
	List(ctx context.Context, offset, limit int) ([]*models.Club, int64, error)
	Update(ctx context.Context, club *models.Club) error
	CountOpenForMembers(ctx context.Context) (int64, error)
}

// TagRepository defines tag master data interface
type TagRepository interface {
	List(ctx context.Context) ([]*models.Tag, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Tag, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, tag *models.Tag) error
}
