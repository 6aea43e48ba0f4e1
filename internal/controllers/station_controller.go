package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"train_station/internal/booking"
	"train_station/internal/config"
	"train_station/internal/models"
)

// CreateStation registers a new station with a unique name and
// coordinate pair.
func CreateStation(c *gin.Context) {
	var input struct {
		Name      string  `json:"name" binding:"required"`
		Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
		Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateStation: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	station := models.Station{
		Name:      input.Name,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}
	if err := config.DB.Create(&station).Error; err != nil {
		if booking.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "station name or position already in use"})
			return
		}
		logrus.WithError(err).Error("CreateStation: create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create station failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"station": station})
}

// ListStations returns all stations ordered by name.
func ListStations(c *gin.Context) {
	var stations []models.Station
	if err := config.DB.Order("name").Find(&stations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing stations: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stations": stations})
}

// GetStation returns a single station.
func GetStation(c *gin.Context) {
	sID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID"})
		return
	}

	var station models.Station
	if err := config.DB.First(&station, sID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"station": station})
}

// UpdateStation handles partial updates to an existing station.
func UpdateStation(c *gin.Context) {
	sID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID"})
		return
	}

	var station models.Station
	if err := config.DB.First(&station, sID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Name      *string  `json:"name"`
		Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
		Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateStation: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		station.Name = *input.Name
	}
	if input.Latitude != nil {
		station.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		station.Longitude = *input.Longitude
	}

	if err := config.DB.Save(&station).Error; err != nil {
		if booking.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "station name or position already in use"})
			return
		}
		logrus.WithError(err).Error("UpdateStation: save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"station": station})
}

// DeleteStation removes a station.
func DeleteStation(c *gin.Context) {
	sID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid station ID"})
		return
	}

	var station models.Station
	if err := config.DB.First(&station, sID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if err := config.DB.Delete(&station).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete station: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Station deleted successfully"})
}
