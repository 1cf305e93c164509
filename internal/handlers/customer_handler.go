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

type CustomerHandler struct {
	Repo *repository.CustomerRepository
}

// POST /v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.Repo.Create(c.Request.Context(), &customer); err != nil {
		log.Error().Err(err).Msg("customer create failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not insert customer"})
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// GET /v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	page, pageSize := paginationParams(c)
	customers, total, err := h.Repo.FindAll(c.Request.Context(), c.Query("store_id"), c.Query("q"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch customers"})
		return
	}
	c.JSON(http.StatusOK, ListResponse{
		PageInfo: models.NewPageInfo(page, pageSize, total),
		Data:     customers,
	})
}

// GET /v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.Repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// PATCH /v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
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
	c.JSON(http.StatusOK, SuccessResponse{Message: "customer updated"})
}

// DELETE /v1/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.Repo.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "customer deleted"})
}

func (h *CustomerHandler) writeRepoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer id"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "customer not found"})
	default:
		log.Error().Err(err).Msg("customer operation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
