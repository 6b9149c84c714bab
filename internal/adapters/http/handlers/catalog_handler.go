package handlers

import (
	"errors"

	"clubhub-backend/internal/core/domain"
	"clubhub-backend/internal/core/services"
	"clubhub-backend/internal/pkg/pagination"
	"clubhub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles the public club catalog endpoints
type CatalogHandler struct {
	catalogService *services.CatalogService
	recommender    *services.RecommenderService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService, recommender *services.RecommenderService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		recommender:    recommender,
	}
}

// ListClubs lists clubs with pagination
// @Summary List clubs
// @Tags Catalog
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /api/catalog/clubs [get]
func (h *CatalogHandler) ListClubs(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	clubs, total, err := h.catalogService.ListClubs(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list clubs")
	}

	return response.Success(c, fiber.Map{
		"clubs": clubs,
		"meta":  pagination.GetMeta(params, total),
	})
}

// GetClub gets a single club by slug
// @Summary Get club detail
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/catalog/clubs/{slug} [get]
func (h *CatalogHandler) GetClub(c *fiber.Ctx) error {
	slug := c.Params("slug")

	club, err := h.catalogService.GetClub(c.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrClubNotFound) {
			return response.NotFound(c, "No club found with that name!")
		}
		return response.InternalServerError(c, "Failed to fetch club")
	}

	return response.Success(c, fiber.Map{"club": club})
}

// GetRecommendations returns clubs similar to the given one
// @Summary Get similar clubs
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/catalog/clubs/{slug}/recommendations [get]
func (h *CatalogHandler) GetRecommendations(c *fiber.Ctx) error {
	slug := c.Params("slug")

	club, err := h.catalogService.GetClubBySlugRaw(c.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrClubNotFound) {
			return response.NotFound(c, "No club found with that name!")
		}
		return response.InternalServerError(c, "Failed to fetch club")
	}

	recs, err := h.recommender.Recommend(club.ID, 5)
	if err != nil {
		if errors.Is(err, services.ErrModelNotReady) {
			// Stale-model reads are acceptable; a missing model is not
			return response.Success(c, fiber.Map{"recommendations": []services.Recommendation{}})
		}
		return response.InternalServerError(c, "Failed to compute recommendations")
	}

	return response.Success(c, fiber.Map{"recommendations": recs})
}

// ListTags lists the tag master data
// @Summary List tags
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/catalog/tags [get]
func (h *CatalogHandler) ListTags(c *fiber.Ctx) error {
	tags, err := h.catalogService.ListTags(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list tags")
	}

	return response.Success(c, fiber.Map{"tags": tags})
}
