package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"backoffice/internal/models"
	"backoffice/internal/repository"
	"backoffice/internal/services"
)

type POSHandler struct {
	Service *services.POSService
	Repo    *repository.POSRepository
}

// POST /v1/pos/sessions
func (h *POSHandler) Open(c *gin.Context) {
	var body struct {
		StoreID           string `json:"store_id" binding:"required"`
		OpeningFloatCents int64  `json:"opening_float_cents" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.Service.Open(c.Request.Context(), body.StoreID, body.OpeningFloatCents, c.GetHeader("X-User-ID"))
	if err != nil {
		if errors.Is(err, services.ErrSessionAlreadyOpen) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		log.Error().Err(err).Msg("pos session open failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not open session"})
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GET /v1/pos/sessions
func (h *POSHandler) List(c *gin.Context) {
	page, pageSize := paginationParams(c)
	sessions, total, err := h.Repo.FindAll(c.Request.Context(), c.Query("store_id"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch sessions"})
		return
	}
	c.JSON(http.StatusOK, ListResponse{
		PageInfo: models.NewPageInfo(page, pageSize, total),
		Data:     sessions,
	})
}

// GET /v1/pos/sessions/:id
func (h *POSHandler) Get(c *gin.Context) {
	session, err := h.Repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// POST /v1/pos/sessions/:id/transactions
func (h *POSHandler) RecordTransaction(c *gin.Context) {
	var body struct {
		Kind        models.POSTransactionKind `json:"kind" binding:"required,oneof=sale refund payout"`
		Method      models.PaymentMethod      `json:"method" binding:"required,oneof=cash card"`
		AmountCents int64                     `json:"amount_cents" binding:"required,min=1"`
		OrderID     string                    `json:"order_id,omitempty"`
		Reference   string                    `json:"reference,omitempty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	tx, err := h.Service.Record(c.Request.Context(), c.Param("id"), body.Kind, body.Method, body.AmountCents, body.OrderID, body.Reference, c.GetHeader("X-User-ID"))
	if err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// POST /v1/pos/sessions/:id/close
func (h *POSHandler) Close(c *gin.Context) {
	var body struct {
		CountedCashCents int64 `json:"counted_cash_cents" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.Service.Close(c.Request.Context(), c.Param("id"), body.CountedCashCents, c.GetHeader("X-User-ID"))
	if err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *POSHandler) writeRepoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found or not open"})
	default:
		log.Error().Err(err).Msg("pos operation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
