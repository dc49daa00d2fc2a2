// File: handlers/chat.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"roomly/middleware"
	"roomly/models"
	"roomly/services/assistant"
)

// ChatHandler runs one dialog turn through the assistant.
func ChatHandler(svc assistant.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		if strings.TrimSpace(req.Message) == "" && req.SessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}

		userID := c.GetString(middleware.ContextUserIDKey)
		resp := svc.ProcessMessage(c.Request.Context(), userID, req)
		c.JSON(http.StatusOK, resp)
	}
}
