package repositories

import (
	"context"

	"clubhub-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// emailTokenRepository implements EmailTokenRepository interface
type emailTokenRepository struct {
	db *gorm.DB
}

// NewEmailTokenRepository creates a new email token repository
func NewEmailTokenRepository(db *gorm.DB) EmailTokenRepository {
	return &emailTokenRepository{db: db}
}

// Create creates a new email link token record
func (r *emailTokenRepository) Create(ctx context.Context, token *models.EmailToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByToken gets an email token by its value and purpose
func (r *emailTokenRepository) GetByToken(ctx context.Context, token, purpose string) (*models.EmailToken, error) {
	var record models.EmailToken
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		Where("purpose = ?", purpose).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarkUsed consumes an email token so it cannot be replayed
func (r *emailTokenRepository) MarkUsed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.EmailToken{}).
		Where("id = ?", id).
		Update("used", true).Error
}
