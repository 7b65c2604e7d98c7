package handlers

import (
	"net/http"

	"stackit/internal/services"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := currentUser(c)
	page := pageQuery(c, 20)

	notifications, total, unread, err := h.notifications.List(c.Request.Context(), user.ID, page, c.Query("unreadOnly") == "true")
	if err != nil {
		RenderError(c, err)
		return
	}

	OK(c, http.StatusOK, gin.H{
		"notifications": notifications,
		"unreadCount":   unread,
		"pagination":    pagination(page, total),
	})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notifications.UnreadCount(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		RenderError(c, err)
		return
	}
	OK(c, http.StatusOK, gin.H{"unreadCount": count})
}

func (h *NotificationHandler) Read(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.notifications.MarkRead(c.Request.Context(), id, currentUser(c).ID); err != nil {
		RenderError(c, err)
		return
	}
	OK(c, http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	if err := h.notifications.MarkAllRead(c.Request.Context(), currentUser(c).ID); err != nil {
		RenderError(c, err)
		return
	}
	OK(c, http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.notifications.Delete(c.Request.Context(), id, currentUser(c).ID); err != nil {
		RenderError(c, err)
		return
	}
	OK(c, http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}
