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

type NotificationHandler struct {
	Service *services.NotificationService
	Repo    *repository.NotificationRepository
}

// POST /v1/notifications
func (h *NotificationHandler) Create(c *gin.Context) {
	var n models.Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.Service.Notify(c.Request.Context(), &n); err != nil {
		log.Error().Err(err).Msg("notification create failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not create notification"})
		return
	}
	c.JSON(http.StatusCreated, n)
}

// GET /v1/notifications?recipient=...
func (h *NotificationHandler) List(c *gin.Context) {
	recipient := c.Query("recipient")
	if recipient == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "recipient is required"})
		return
	}

	page, pageSize := paginationParams(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, total, err := h.Repo.FindByRecipient(c.Request.Context(), recipient, unreadOnly, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, ListResponse{
		PageInfo: models.NewPageInfo(page, pageSize, total),
		Data:     notifications,
	})
}

// POST /v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.Repo.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidID):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notification id"})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "notification not found"})
		default:
			log.Error().Err(err).Msg("notification mark read failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "notification marked read"})
}
