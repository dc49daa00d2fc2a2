// File: handlers/reservation.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	reservationRepo "roomly/database/repository/reservation"
	"roomly/middleware"
	"roomly/models"
	"roomly/services/booking"
	"roomly/utils"
)

// ListReservationsHandler returns the caller's reservations, newest first.
func ListReservationsHandler(reservations reservationRepo.ReservationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserIDKey)
		limit := 10
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}

		list, err := reservations.ListByUser(c.Request.Context(), userID, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reservations"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reservations": list})
	}
}

// CancelReservationHandler cancels one of the caller's reservations by id or
// reservation number.
func CancelReservationHandler(reservations reservationRepo.ReservationRepository, notifier booking.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserIDKey)
		ref := c.Param("id")

		res, err := reservations.UpdateStatus(c.Request.Context(), ref, userID, models.StatusCancelled)
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no cancellable reservation found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel reservation"})
			return
		}

		if notifier != nil {
			go func(res models.Reservation) {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := notifier.NotifyStatusChange(ctx, &res, models.StatusApproved, models.StatusCancelled); err != nil {
					utils.GetLogger().Sugar().Warnf("cancel notification failed for %s: %v", res.ReservationNumber, err)
				}
			}(*res)
		}

		c.JSON(http.StatusOK, res)
	}
}
