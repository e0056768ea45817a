package notifications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the notifications repository.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches notification routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.listNotifications)
	rg.PUT("/notifications/:id/read", h.markRead)
}

func (h *Handler) listNotifications(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "userId is required", nil)
		return
	}

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	out, err := h.Repo.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list notifications", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success":       true,
		"notifications": out,
	})
}

func (h *Handler) markRead(c *gin.Context) {
	notificationID := c.Param("id")
	if notificationID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "notification id is required", nil)
		return
	}

	if err := h.Repo.MarkRead(c.Request.Context(), notificationID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "notification not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to mark notification read", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"success": true})
}
