package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"train_station/internal/booking"
	"train_station/internal/config"
	"train_station/internal/models"
)

// TripListResponse is the list projection: route, train and crew
// collapsed to display names.
type TripListResponse struct {
	ID            uint      `json:"ID"`
	Route         string    `json:"route"`
	Train         string    `json:"train"`
	Crew          []string  `json:"crew"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

// TripDetailResponse nests the full route, train and crew records.
type TripDetailResponse struct {
	ID            uint                `json:"ID"`
	CreatedAt     time.Time           `json:"CreatedAt"`
	UpdatedAt     time.Time           `json:"UpdatedAt"`
	Route         RouteListResponse   `json:"route"`
	Train         TrainDetailResponse `json:"train"`
	Crew          []CrewResponse      `json:"crew"`
	DepartureTime time.Time           `json:"departure_time"`
	ArrivalTime   time.Time           `json:"arrival_time"`
}

func toTripListResponse(trip models.Trip) TripListResponse {
	crewNames := make([]string, 0, len(trip.Crew))
	for _, member := range trip.Crew {
		crewNames = append(crewNames, member.FullName())
	}
	return TripListResponse{
		ID:            trip.ID,
		Route:         routeName(trip.Route),
		Train:         trip.Train.Name,
		Crew:          crewNames,
		DepartureTime: trip.DepartureTime,
		ArrivalTime:   trip.ArrivalTime,
	}
}

func toTripDetailResponse(trip models.Trip) TripDetailResponse {
	crew := make([]CrewResponse, 0, len(trip.Crew))
	for _, member := range trip.Crew {
		crew = append(crew, toCrewResponse(member))
	}
	return TripDetailResponse{
		ID:            trip.ID,
		CreatedAt:     trip.CreatedAt,
		UpdatedAt:     trip.UpdatedAt,
		Route:         toRouteListResponse(trip.Route),
		Train:         toTrainDetailResponse(trip.Train),
		Crew:          crew,
		DepartureTime: trip.DepartureTime,
		ArrivalTime:   trip.ArrivalTime,
	}
}

func tripDetailQuery(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Route.SourceStation").
		Preload("Route.DestinationStation").
		Preload("Train.TrainType").
		Preload("Crew")
}

// CreateTrip schedules a train on a route and assigns crew.
func CreateTrip(c *gin.Context) {
	var input struct {
		RouteID       uint      `json:"route_id" binding:"required"`
		TrainID       uint      `json:"train_id" binding:"required"`
		DepartureTime time.Time `json:"departure_time" binding:"required"`
		ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
		CrewIDs       []uint    `json:"crew_ids"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateTrip: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var route models.Route
	if err := config.DB.First(&route, input.RouteID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	}
	var train models.Train
	if err := config.DB.First(&train, input.TrainID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Train not found"})
		return
	}

	var crew []models.Crew
	if len(input.CrewIDs) > 0 {
		if err := config.DB.Find(&crew, input.CrewIDs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if len(crew) != len(input.CrewIDs) {
			c.JSON(http.StatusNotFound, gin.H{"error": "One or more crew members not found"})
			return
		}
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	trip := models.Trip{
		RouteID:       input.RouteID,
		TrainID:       input.TrainID,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
	}
	if err := tx.Create(&trip).Error; err != nil {
		tx.Rollback()
		if booking.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "trip for this route and train already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create trip failed: " + err.Error()})
		return
	}

	if len(crew) > 0 {
		if err := tx.Model(&trip).Association("Crew").Append(crew); err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Assign crew failed: " + err.Error()})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	tripDetailQuery(config.DB).First(&trip, trip.ID)
	c.JSON(http.StatusCreated, gin.H{"trip": toTripDetailResponse(trip)})
}

// ListTrips returns all trips ordered by departure time.
func ListTrips(c *gin.Context) {
	var trips []models.Trip
	err := tripDetailQuery(config.DB).Order("departure_time").Find(&trips).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing trips: " + err.Error()})
		return
	}

	var tripResponses []TripListResponse
	for _, t := range trips {
		tripResponses = append(tripResponses, toTripListResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{"trips": tripResponses})
}

// GetTrip returns a single trip with nested route, train and crew.
func GetTrip(c *gin.Context) {
	tID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID"})
		return
	}

	var trip models.Trip
	if err := tripDetailQuery(config.DB).First(&trip, tID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"trip": toTripDetailResponse(trip)})
}

// UpdateTrip handles partial updates; supplying crew_ids replaces the
// assigned crew.
func UpdateTrip(c *gin.Context) {
	tID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID"})
		return
	}

	var trip models.Trip
	if err := config.DB.First(&trip, tID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		RouteID       *uint      `json:"route_id"`
		TrainID       *uint      `json:"train_id"`
		DepartureTime *time.Time `json:"departure_time"`
		ArrivalTime   *time.Time `json:"arrival_time"`
		CrewIDs       *[]uint    `json:"crew_ids"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.RouteID != nil {
		var route models.Route
		if err := config.DB.First(&route, *input.RouteID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
			return
		}
		trip.RouteID = *input.RouteID
	}
	if input.TrainID != nil {
		var train models.Train
		if err := config.DB.First(&train, *input.TrainID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Train not found"})
			return
		}
		trip.TrainID = *input.TrainID
	}
	if input.DepartureTime != nil {
		trip.DepartureTime = *input.DepartureTime
	}
	if input.ArrivalTime != nil {
		trip.ArrivalTime = *input.ArrivalTime
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	if err := tx.Save(&trip).Error; err != nil {
		tx.Rollback()
		if booking.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "trip for this route and train already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	if input.CrewIDs != nil {
		var crew []models.Crew
		if len(*input.CrewIDs) > 0 {
			if err := tx.Find(&crew, *input.CrewIDs).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if len(crew) != len(*input.CrewIDs) {
				tx.Rollback()
				c.JSON(http.StatusNotFound, gin.H{"error": "One or more crew members not found"})
				return
			}
		}
		if err := tx.Model(&trip).Association("Crew").Replace(crew); err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Replace crew failed: " + err.Error()})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	tripDetailQuery(config.DB).First(&trip, trip.ID)
	c.JSON(http.StatusOK, gin.H{"trip": toTripDetailResponse(trip)})
}

// DeleteTrip removes a trip.
func DeleteTrip(c *gin.Context) {
	tID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID"})
		return
	}

	var trip models.Trip
	if err := config.DB.First(&trip, tID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if err := config.DB.Select("Crew").Delete(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted successfully"})
}
