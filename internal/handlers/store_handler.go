package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"backoffice/internal/models"
	"backoffice/internal/repository"
)

type StoreHandler struct {
	Repo *repository.StoreRepository
}

// POST /v1/stores
func (h *StoreHandler) Create(c *gin.Context) {
	var store models.Store
	if err := c.ShouldBindJSON(&store); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.Repo.Create(c.Request.Context(), &store); err != nil {
		log.Error().Err(err).Msg("store create failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not insert store"})
		return
	}
	c.JSON(http.StatusCreated, store)
}

// GET /v1/stores
func (h *StoreHandler) List(c *gin.Context) {
	stores, err := h.Repo.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch stores"})
		return
	}
	c.JSON(http.StatusOK, stores)
}

// GET /v1/stores/:id
func (h *StoreHandler) Get(c *gin.Context) {
	store, err := h.Repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

// PATCH /v1/stores/:id
func (h *StoreHandler) Update(c *gin.Context) {
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
	c.JSON(http.StatusOK, SuccessResponse{Message: "store updated"})
}

func (h *StoreHandler) writeRepoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid store id"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "store not found"})
	default:
		log.Error().Err(err).Msg("store operation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
