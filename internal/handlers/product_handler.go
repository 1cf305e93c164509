package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"backoffice/internal/cache"
	"backoffice/internal/models"
	"backoffice/internal/repository"
)

const productCachePrefix = "products:list:"

type ProductHandler struct {
	Repo  *repository.ProductRepository
	Cache cache.Store
}

// POST /v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if product.PriceCents < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "price cannot be negative"})
		return
	}
	if product.Stock < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "stock cannot be negative"})
		return
	}

	if err := h.Repo.Create(c.Request.Context(), &product); err != nil {
		log.Error().Err(err).Msg("product create failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not insert product"})
		return
	}

	h.invalidateListings(c)
	c.JSON(http.StatusCreated, product)
}

// GET /v1/products
func (h *ProductHandler) List(c *gin.Context) {
	filter := repository.ProductFilter{
		StoreID:  c.Query("store_id"),
		Category: c.Query("category"),
		Active:   boolQuery(c, "active"),
		Search:   c.Query("q"),
	}
	page, pageSize := paginationParams(c)

	cacheKey := fmt.Sprintf("%s%s:%s:%s:%d:%d", productCachePrefix, filter.StoreID, filter.Category, filter.Search, page, pageSize)
	if filter.Active == nil {
		var cached ListResponse
		if hit, err := h.Cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && hit {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	products, total, err := h.Repo.FindAll(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch products"})
		return
	}

	response := ListResponse{
		PageInfo: models.NewPageInfo(page, pageSize, total),
		Data:     products,
	}
	if filter.Active == nil {
		if err := h.Cache.Set(c.Request.Context(), cacheKey, response, 0); err != nil {
			log.Warn().Err(err).Msg("product listing cache write failed")
		}
	}
	c.JSON(http.StatusOK, response)
}

// GET /v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.Repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// PATCH /v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var update bson.M
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	sanitizeUpdate(update)

	if err := h.Repo.Update(c.Request.Context(), c.Param("id"), update); err != nil {
		h.writeRepoError(c, err)
		return
	}

	h.invalidateListings(c)
	c.JSON(http.StatusOK, SuccessResponse{Message: "product updated"})
}

// DELETE /v1/products/:id (soft delete)
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Repo.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeRepoError(c, err)
		return
	}

	h.invalidateListings(c)
	c.JSON(http.StatusOK, SuccessResponse{Message: "product deleted"})
}

func (h *ProductHandler) invalidateListings(c *gin.Context) {
	if err := h.Cache.DeleteByPrefix(c.Request.Context(), productCachePrefix); err != nil {
		log.Warn().Err(err).Msg("product listing cache invalidation failed")
	}
}

func (h *ProductHandler) writeRepoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
	default:
		log.Error().Err(err).Msg("product operation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// sanitizeUpdate strips system fields clients must not touch.
func sanitizeUpdate(update bson.M) {
	for _, field := range []string{"_id", "id", "created_at", "is_deleted"} {
		delete(update, field)
	}
}
