package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/meetup-booking/internal/notify"
)

type NotificationHandler struct {
	disp notify.Dispatcher
}

func NewNotificationHandler(disp notify.Dispatcher) *NotificationHandler {
	return &NotificationHandler{disp: disp}
}

// POST /v1/notifications (ADMIN)
//
// Unlike the fan-out the services do, a direct send reports dispatch
// failure to the caller: the notification is the whole operation here.
func (h *NotificationHandler) Send(c *gin.Context) {
	var in struct {
		UserID string            `json:"user_id" binding:"required"`
		Type   string            `json:"type" binding:"required"`
		Title  string            `json:"title" binding:"required"`
		Body   string            `json:"body" binding:"required"`
		Data   map[string]string `json:"data"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.disp.Notify(c, in.UserID, in.Type, in.Title, in.Body, in.Data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dispatch failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"notification_id": id})
}
