package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"train_station/internal/booking"
	"train_station/internal/config"
)

// CreateOrder sells a batch of seats to the authenticated customer.
// The whole batch commits atomically or not at all; the booking
// service decides.
func CreateOrder(c *gin.Context) {
	customerID := uint(c.MustGet("user_id").(float64))

	var input struct {
		Tickets []booking.TicketRequest `json:"tickets"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateOrder: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	service := booking.NewService(config.DB)
	order, err := service.CreateOrder(customerID, input.Tickets)
	if err != nil {
		status := orderErrorStatus(err)
		if status == http.StatusInternalServerError {
			logrus.WithError(err).Error("CreateOrder: order transaction failed")
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ListOrders returns the authenticated customer's orders, oldest
// first, each with its tickets.
func ListOrders(c *gin.Context) {
	customerID := uint(c.MustGet("user_id").(float64))

	service := booking.NewService(config.DB)
	orders, err := service.ListOrders(customerID)
	if err != nil {
		logrus.WithError(err).Error("ListOrders: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// orderErrorStatus maps booking errors onto HTTP status codes:
// malformed input 400, unknown trip 404, seat conflicts 409,
// anything else is a store failure.
func orderErrorStatus(err error) int {
	var capacityErr *booking.CapacityError
	var notFoundErr *booking.TripNotFoundError
	var seatTakenErr *booking.SeatTakenError
	switch {
	case errors.Is(err, booking.ErrEmptyOrder):
		return http.StatusBadRequest
	case errors.As(err, &capacityErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &seatTakenErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
