package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/httpresp"
	"github.com/elitehands/elitehands-api/internal/models"
)

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

func (h *NotificationHandler) List(c *gin.Context) {
	actor := actorFrom(c)

	q := h.db.Where("user_id = ?", actor.ID)

	if c.Query("unread") == "true" {
		q = q.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := q.
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error; err != nil {
		httperr.Internal(c, "Could not load notifications")
		return
	}

	httpresp.List(c, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor := actorFrom(c)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	res := h.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, actor.ID).
		Update("is_read", true)
	if res.Error != nil {
		httperr.Internal(c, "Could not update notification")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "Notification not found")
		return
	}

	httpresp.OK(c, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor := actorFrom(c)

	if err := h.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", actor.ID, false).
		Update("is_read", true).Error; err != nil {
		httperr.Internal(c, "Could not update notifications")
		return
	}

	httpresp.OK(c, gin.H{"message": "All notifications marked as read"})
}
