package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"backoffice/internal/models"
	"backoffice/internal/repository"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Back-office UIs are served from their own origin.
	CheckOrigin: func(*http.Request) bool { return true },
}

// BundleWatchHandler streams live bundle snapshots to admin UIs over a
// websocket. Every frame carries the complete current result set; clients
// replace their state wholesale instead of merging deltas.
type BundleWatchHandler struct {
	Repo *repository.BundleRepository
}

// GET /v1/bundles/watch (websocket)
func (h *BundleWatchHandler) WatchMany(c *gin.Context) {
	filter := repository.BundleFilter{
		StoreID: c.Query("store_id"),
		Status:  models.BundleStatus(c.Query("status")),
	}

	sub, err := h.Repo.SubscribeMany(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not subscribe"})
		return
	}

	h.stream(c, sub)
}

// GET /v1/bundles/:id/watch (websocket)
func (h *BundleWatchHandler) WatchOne(c *gin.Context) {
	sub, err := h.Repo.SubscribeOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if err == repository.ErrInvalidID {
			status = http.StatusBadRequest
		}
		c.JSON(status, ErrorResponse{Error: "could not subscribe"})
		return
	}

	h.stream(c, sub)
}

func (h *BundleWatchHandler) stream(c *gin.Context, sub *repository.BundleSubscription) {
	defer sub.Cancel()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Reader goroutine: we only care about the close frame.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case snapshot, ok := <-sub.Snapshots():
			if !ok {
				return
			}
			now := time.Now()
			for i := range snapshot {
				snapshot[i].Status = snapshot[i].EffectiveStatus(now)
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(snapshot); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
