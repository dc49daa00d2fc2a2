// File: roomly/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"

	userRepoPkg "roomly/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Auth endpoints
	RegisterUserHandler     gin.HandlerFunc
	AuthenticateUserHandler gin.HandlerFunc

	// Chat endpoint
	ChatHandler gin.HandlerFunc

	// Reservation endpoints
	ListReservationsHandler  gin.HandlerFunc
	CancelReservationHandler gin.HandlerFunc

	// Resource endpoints
	ListResourcesHandler gin.HandlerFunc

	// Notification endpoints
	ListNotificationsHandler gin.HandlerFunc
	MarkNotificationHandler  gin.HandlerFunc
}
