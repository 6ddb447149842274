package handlers

import (
	"net/http"

	"rentalprima/internal/repositories"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	Notifications repositories.NotificationRepository
}

// GET /api/notifications
func (h NotificationHandler) List(c *gin.Context) {
	notifications, err := h.Notifications.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, notifications, len(notifications))
}

// GET /api/notifications/:id
func (h NotificationHandler) Get(c *gin.Context) {
	notification, err := h.Notifications.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, notification)
}

// PUT /api/notifications/:id
func (h NotificationHandler) MarkRead(c *gin.Context) {
	notification, err := h.Notifications.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, notification)
}

// DELETE /api/notifications/:id
func (h NotificationHandler) Delete(c *gin.Context) {
	if err := h.Notifications.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, gin.H{})
}
