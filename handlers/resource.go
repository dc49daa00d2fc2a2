// File: handlers/resource.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resourceRepo "roomly/database/repository/resource"
	"roomly/models"
)

// ListResourcesHandler returns the available rooms of a given type.
func ListResourcesHandler(resources resourceRepo.ResourceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		resourceType := c.DefaultQuery("type", models.ResourceMeetingRoom)

		list, err := resources.ListAvailable(c.Request.Context(), resourceType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list resources"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"resources": list})
	}
}
