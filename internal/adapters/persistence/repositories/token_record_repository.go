package repositories

import (
	"context"
	"errors"
	"time"

	"clubhub-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// tokenRecordRepository implements TokenRecordRepository interface
type tokenRecordRepository struct {
	db *gorm.DB
}

// NewTokenRecordRepository creates a new token record repository
func NewTokenRecordRepository(db *gorm.DB) TokenRecordRepository {
	return &tokenRecordRepository{db: db}
}

// Record inserts a new token record, not yet expired. The expiry mirrors
// the cryptographic expiry of the token itself.
func (r *tokenRecordRepository) Record(ctx context.Context, userID uint, jti, tokenType string, expiresAt time.Time) error {
	record := &models.TokenRecord{
		UserID:    userID,
		JTI:       jti,
		TokenType: tokenType,
		ExpiresAt: expiresAt,
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// GetByJTI gets a token record by identifier, searching both namespaces
func (r *tokenRecordRepository) GetByJTI(ctx context.Context, jti string) (*models.TokenRecord, error) {
	var record models.TokenRecord
	err := r.db.WithContext(ctx).Where("jti = ?", jti).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// IsRevoked reports whether the identifier is blacklisted. An identifier
// with no record at all is treated as not revoked: untracked tokens are
// assumed to have already aged out of the store.
func (r *tokenRecordRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	record, err := r.GetByJTI(ctx, jti)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return record.Expired, nil
}

// Revoke marks the token record expired. Returns gorm.ErrRecordNotFound
// when no record matches the identifier in the given namespace.
func (r *tokenRecordRepository) Revoke(ctx context.Context, jti, tokenType string) error {
	result := r.db.WithContext(ctx).
		Model(&models.TokenRecord{}).
		Where("jti = ?", jti).
		Where("token_type = ?", tokenType).
		Update("expired", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RevokeAllByUserID bulk-expires every access and refresh record owned by
// the user. Invoked by password reset before the response is sent.
func (r *tokenRecordRepository) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.TokenRecord{}).
		Where("user_id = ?", userID).
		Where("expired = ?", false).
		Update("expired", true).Error
}

// DeleteExpired deletes records past their token expiry (cleanup job)
func (r *tokenRecordRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.TokenRecord{}).Error
}

// CountActive counts records that are neither revoked nor past expiry
func (r *tokenRecordRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TokenRecord{}).
		Where("expired = ?", false).
		Where("expires_at > ?", time.Now()).
		Count(&count).Error
	return count, err
}
