package services

import (
	"context"
	"errors"

	"clubhub-backend/internal/adapters/persistence/models"
	"clubhub-backend/internal/adapters/persistence/repositories"
	"clubhub-backend/internal/core/domain"

	"gorm.io/gorm"
)

// CatalogService serves the public club catalog
type CatalogService struct {
	clubRepo repositories.ClubRepository
	tagRepo  repositories.TagRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(clubRepo repositories.ClubRepository, tagRepo repositories.TagRepository) *CatalogService {
	return &CatalogService{
		clubRepo: clubRepo,
		tagRepo:  tagRepo,
	}
}

// ListClubs lists clubs with pagination
func (s *CatalogService) ListClubs(ctx context.Context, offset, limit int) ([]*models.ClubResponse, int64, error) {
	clubs, total, err := s.clubRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.ClubResponse, 0, len(clubs))
	for _, club := range clubs {
		responses = append(responses, club.ToResponse())
	}
	return responses, total, nil
}

// GetClub gets a single club by slug
func (s *CatalogService) GetClub(ctx context.Context, slug string) (*models.ClubResponse, error) {
	club, err := s.clubRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClubNotFound
		}
		return nil, err
	}
	return club.ToResponse(), nil
}

// GetClubBySlugRaw gets the underlying club model by slug
func (s *CatalogService) GetClubBySlugRaw(ctx context.Context, slug string) (*models.Club, error) {
	club, err := s.clubRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClubNotFound
		}
		return nil, err
	}
	return club, nil
}

// ListTags lists the tag master data
func (s *CatalogService) ListTags(ctx context.Context) ([]*models.Tag, error) {
	return s.tagRepo.List(ctx)
}
