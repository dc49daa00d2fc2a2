// File: handlers/notification.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	notificationRepo "roomly/database/repository/notification"
	"roomly/middleware"
)

// ListNotificationsHandler returns the caller's inbox, newest first.
func ListNotificationsHandler(notifications notificationRepo.NotificationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserIDKey)
		unreadOnly := c.Query("unread") == "true"
		limit := 20
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}

		list, err := notifications.ListByUser(c.Request.Context(), userID, unreadOnly, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"notifications": list})
	}
}

// MarkNotificationHandler marks one notification as read.
func MarkNotificationHandler(notifications notificationRepo.NotificationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserIDKey)
		id := c.Param("id")

		err := notifications.MarkRead(c.Request.Context(), id, userID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notification"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
