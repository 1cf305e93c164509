package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"backoffice/internal/models"
	"backoffice/internal/repository"
)

type InvoiceHandler struct {
	Repo *repository.InvoiceRepository
}

// GET /v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	page, pageSize := paginationParams(c)
	invoices, total, err := h.Repo.FindAll(c.Request.Context(), c.Query("store_id"), models.InvoiceStatus(c.Query("status")), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch invoices"})
		return
	}
	c.JSON(http.StatusOK, ListResponse{
		PageInfo: models.NewPageInfo(page, pageSize, total),
		Data:     invoices,
	})
}

// GET /v1/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.Repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// PATCH /v1/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	var body struct {
		Status models.InvoiceStatus `json:"status" binding:"required,oneof=draft issued paid void"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.Repo.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status); err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "invoice status updated"})
}

func (h *InvoiceHandler) writeRepoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice id"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "invoice not found"})
	default:
		log.Error().Err(err).Msg("invoice operation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
