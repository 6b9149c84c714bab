package repositories

import (
	"context"

	"clubhub-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// clubRepository implements ClubRepository interface
type clubRepository struct {
	db *gorm.DB
}

// NewClubRepository creates a new club repository
func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

// Create creates a new club with its tag associations
func (r *clubRepository) Create(ctx context.Context, club *models.Club) error {
	return r.db.WithContext(ctx).Create(club).Error
}

// GetByID gets a club by ID with tags preloaded
func (r *clubRepository) GetByID(ctx context.Context, id uint) (*models.Club, error) {
	var club models.Club
	err := r.db.WithContext(ctx).Preload("Tags").Where("id = ?", id).First(&club).Error
	if err != nil {
		return nil, err
	}
	return &club, nil
}

// GetBySlug gets a club by slug with tags preloaded
func (r *clubRepository) GetBySlug(ctx context.Context, slug string) (*models.Club, error) {
	var club models.Club
	err := r.db.WithContext(ctx).Preload("Tags").Where("slug = ?", slug).First(&club).Error
	if err != nil {
		return nil, err
	}
	return &club, nil
}

// GetByOwnerID gets the club owned by the given user
func (r *clubRepository) GetByOwnerID(ctx context.Context, ownerID uint) (*models.Club, error) {
	var club models.Club
	err := r.db.WithContext(ctx).Preload("Tags").Where("owner_id = ?", ownerID).First(&club).Error
	if err != nil {
		return nil, err
	}
	return &club, nil
}

// ListOfficerOwned lists every club whose owner holds the officer role.
// Used by the status recompute job.
func (r *clubRepository) ListOfficerOwned(ctx context.Context) ([]*models.Club, error) {
	var clubs []*models.Club
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = clubs.owner_id").
		Where("users.role = ?", "officer").
		Find(&clubs).Error
	if err != nil {
		return nil, err
	}
	return clubs, nil
}

// ListAll lists every club with tags preloaded. Used by model training.
func (r *clubRepository) ListAll(ctx context.Context) ([]*models.Club, error) {
	var clubs []*models.Club
	err := r.db.WithContext(ctx).Preload("Tags").Find(&clubs).Error
	if err != nil {
		return nil, err
	}
	return clubs, nil
}

// List lists clubs with pagination, tags preloaded
func (r *clubRepository) List(ctx context.Context, offset, limit int) ([]*models.Club, int64, error) {
	var clubs []*models.Club
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Club{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Tags").
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&clubs).Error
	if err != nil {
		return nil, 0, err
	}

	return clubs, total, nil
}

// Update updates a club
func (r *clubRepository) Update(ctx context.Context, club *models.Club) error {
	return r.db.WithContext(ctx).Save(club).Error
}

// CountOpenForMembers counts clubs currently accepting new members
func (r *clubRepository) CountOpenForMembers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Club{}).
		Where("new_members = ?", true).
		Count(&count).Error
	return count, err
}
