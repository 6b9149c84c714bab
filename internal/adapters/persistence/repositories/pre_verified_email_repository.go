package repositories

import (
	"context"

	"clubhub-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// preVerifiedEmailRepository implements PreVerifiedEmailRepository interface
type preVerifiedEmailRepository struct {
	db *gorm.DB
}

// NewPreVerifiedEmailRepository creates a new pre-verified email repository
func NewPreVerifiedEmailRepository(db *gorm.DB) PreVerifiedEmailRepository {
	return &preVerifiedEmailRepository{db: db}
}

// Exists checks if an email is on the allow-list
func (r *preVerifiedEmailRepository) Exists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PreVerifiedEmail{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// Add adds an email to the allow-list, ignoring duplicates
func (r *preVerifiedEmailRepository) Add(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PreVerifiedEmail{Email: email}).Error
}
