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

type OrderHandler struct {
	Service  *services.OrderService
	Repo     *repository.OrderRepository
	Invoices *services.InvoiceService
}

// POST /v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if len(order.Items) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order needs at least one item"})
		return
	}
	order.CreatedBy = c.GetHeader("X-User-ID")

	created, err := h.Service.Create(c.Request.Context(), &order)
	if err != nil {
		log.Error().Err(err).Msg("order create failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not insert order"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GET /v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	filter := repository.OrderFilter{
		StoreID:    c.Query("store_id"),
		CustomerID: c.Query("customer_id"),
		Status:     models.OrderStatus(c.Query("status")),
	}
	page, pageSize := paginationParams(c)

	orders, total, err := h.Repo.FindAll(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch orders"})
		return
	}
	c.JSON(http.StatusOK, ListResponse{
		PageInfo: models.NewPageInfo(page, pageSize, total),
		Data:     orders,
	})
}

// GET /v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.Repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// PATCH /v1/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var body struct {
		Status models.OrderStatus `json:"status" binding:"required,oneof=pending paid fulfilled cancelled"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.Repo.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status); err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "order status updated"})
}

// POST /v1/orders/:id/invoice
func (h *OrderHandler) GenerateInvoice(c *gin.Context) {
	invoice, err := h.Invoices.GenerateFromOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (h *OrderHandler) writeRepoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid order id"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "order not found"})
	default:
		log.Error().Err(err).Msg("order operation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
