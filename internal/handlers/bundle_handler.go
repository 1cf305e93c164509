package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"backoffice/internal/cache"
	"backoffice/internal/models"
	"backoffice/internal/repository"
	"backoffice/internal/services"
)

const bundleCachePrefix = "bundles:list:"

// BundleHandler exposes the bundle CRUD plus the advisory validation
// endpoint. Reads go through the repository; writes go through the service so
// enrichment and pricing can never be skipped.
type BundleHandler struct {
	Service *services.BundleService
	Repo    *repository.BundleRepository
	Cache   cache.Store
}

// POST /v1/bundles
func (h *BundleHandler) Create(c *gin.Context) {
	var input services.BundleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	input.CreatedBy = c.GetHeader("X-User-ID")

	bundle, err := h.Service.Create(c.Request.Context(), input)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.invalidateListings(c)
	c.JSON(http.StatusCreated, bundle)
}

// POST /v1/bundles/validate
//
// Runs structural validation only and always answers 200: the result is
// advisory and includes warnings the client may choose to ignore.
func (h *BundleHandler) Validate(c *gin.Context) {
	var input services.BundleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, services.ValidateBundle(input))
}

// GET /v1/bundles
func (h *BundleHandler) List(c *gin.Context) {
	filter := repository.BundleFilter{
		StoreID:  c.Query("store_id"),
		Status:   models.BundleStatus(c.Query("status")),
		Featured: boolQuery(c, "featured"),
		InStock:  boolQuery(c, "in_stock"),
		Search:   c.Query("q"),
	}
	page, pageSize := paginationParams(c)

	cacheKey := fmt.Sprintf("%s%s:%s:%s:%d:%d", bundleCachePrefix, filter.StoreID, filter.Status, filter.Search, page, pageSize)
	if filter.Featured == nil && filter.InStock == nil {
		var cached ListResponse
		if hit, err := h.Cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && hit {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	bundles, total, err := h.Repo.FindAll(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch bundles"})
		return
	}

	now := time.Now()
	for i := range bundles {
		bundles[i].Status = bundles[i].EffectiveStatus(now)
	}

	response := ListResponse{
		PageInfo: models.NewPageInfo(page, pageSize, total),
		Data:     bundles,
	}
	if filter.Featured == nil && filter.InStock == nil {
		if err := h.Cache.Set(c.Request.Context(), cacheKey, response, 0); err != nil {
			log.Warn().Err(err).Msg("bundle listing cache write failed")
		}
	}
	c.JSON(http.StatusOK, response)
}

// GET /v1/bundles/:id
func (h *BundleHandler) Get(c *gin.Context) {
	bundle, err := h.Repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	bundle.Status = bundle.EffectiveStatus(time.Now())
	c.JSON(http.StatusOK, bundle)
}

// PATCH /v1/bundles/:id
func (h *BundleHandler) Update(c *gin.Context) {
	var update services.BundleUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	update.UpdatedBy = c.GetHeader("X-User-ID")

	bundle, err := h.Service.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.invalidateListings(c)
	c.JSON(http.StatusOK, bundle)
}

// DELETE /v1/bundles/:id
func (h *BundleHandler) Delete(c *gin.Context) {
	if err := h.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.invalidateListings(c)
	c.JSON(http.StatusOK, SuccessResponse{Message: "bundle deleted"})
}

// POST /v1/bundles/:id/views
func (h *BundleHandler) TrackView(c *gin.Context) {
	if err := h.Repo.IncrementViews(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "view recorded"})
}

func (h *BundleHandler) invalidateListings(c *gin.Context) {
	if err := h.Cache.DeleteByPrefix(c.Request.Context(), bundleCachePrefix); err != nil {
		log.Warn().Err(err).Msg("bundle listing cache invalidation failed")
	}
}

func (h *BundleHandler) writeServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, validationErr.Result)
	case errors.Is(err, services.ErrInsufficientValidItems):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid bundle id"})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "bundle not found"})
	default:
		log.Error().Err(err).Msg("bundle operation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
