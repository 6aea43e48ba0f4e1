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

// TrainListResponse is the list projection: the train type collapsed
// to its name.
type TrainListResponse struct {
	ID            uint   `json:"ID"`
	Name          string `json:"name"`
	CargoNum      int    `json:"cargo_num"`
	PlacesInCargo int    `json:"places_in_cargo"`
	TrainType     string `json:"train_type"`
}

// TrainDetailResponse nests the full train type.
type TrainDetailResponse struct {
	ID            uint             `json:"ID"`
	CreatedAt     time.Time        `json:"CreatedAt"`
	UpdatedAt     time.Time        `json:"UpdatedAt"`
	Name          string           `json:"name"`
	CargoNum      int              `json:"cargo_num"`
	PlacesInCargo int              `json:"places_in_cargo"`
	TrainType     models.TrainType `json:"train_type"`
}

func toTrainListResponse(train models.Train) TrainListResponse {
	return TrainListResponse{
		ID:            train.ID,
		Name:          train.Name,
		CargoNum:      train.CargoNum,
		PlacesInCargo: train.PlacesInCargo,
		TrainType:     train.TrainType.Name,
	}
}

func toTrainDetailResponse(train models.Train) TrainDetailResponse {
	return TrainDetailResponse{
		ID:            train.ID,
		CreatedAt:     train.CreatedAt,
		UpdatedAt:     train.UpdatedAt,
		Name:          train.Name,
		CargoNum:      train.CargoNum,
		PlacesInCargo: train.PlacesInCargo,
		TrainType:     train.TrainType,
	}
}

// CreateTrainType registers a train type (admin only).
func CreateTrainType(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	trainType := models.TrainType{Name: input.Name}
	if err := config.DB.Create(&trainType).Error; err != nil {
		if booking.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "train type name already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create train type failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"train_type": trainType})
}

// ListTrainTypes returns all train types.
func ListTrainTypes(c *gin.Context) {
	var trainTypes []models.TrainType
	if err := config.DB.Find(&trainTypes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing train types: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"train_types": trainTypes})
}

// UpdateTrainType renames a train type (admin only).
func UpdateTrainType(c *gin.Context) {
	tID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid train type ID"})
		return
	}

	var trainType models.TrainType
	if err := config.DB.First(&trainType, tID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Train type not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trainType.Name = input.Name
	if err := config.DB.Save(&trainType).Error; err != nil {
		if booking.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "train type name already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"train_type": trainType})
}

// DeleteTrainType removes a train type (admin only).
func DeleteTrainType(c *gin.Context) {
	tID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid train type ID"})
		return
	}

	var trainType models.TrainType
	if err := config.DB.First(&trainType, tID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Train type not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if err := config.DB.Delete(&trainType).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete train type: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Train type deleted successfully"})
}

// CreateTrain registers a train and its seat envelope.
func CreateTrain(c *gin.Context) {
	var input struct {
		Name          string `json:"name" binding:"required"`
		CargoNum      int    `json:"cargo_num" binding:"required,gt=0"`
		PlacesInCargo int    `json:"places_in_cargo" binding:"omitempty,gt=0"`
		TrainTypeID   uint   `json:"train_type_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateTrain: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var trainType models.TrainType
	if err := config.DB.First(&trainType, input.TrainTypeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Train type not found"})
		return
	}

	if input.PlacesInCargo == 0 {
		input.PlacesInCargo = 50
	}

	train := models.Train{
		Name:          input.Name,
		CargoNum:      input.CargoNum,
		PlacesInCargo: input.PlacesInCargo,
		TrainTypeID:   input.TrainTypeID,
	}
	if err := config.DB.Create(&train).Error; err != nil {
		if booking.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "train name already in use"})
			return
		}
		logrus.WithError(err).Error("CreateTrain: create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create train failed: " + err.Error()})
		return
	}

	config.DB.Preload("TrainType").First(&train, train.ID)
	c.JSON(http.StatusCreated, gin.H{"train": toTrainDetailResponse(train)})
}

// ListTrains returns all trains ordered by cargo count, with the
// train type name.
func ListTrains(c *gin.Context) {
	var trains []models.Train
	if err := config.DB.Preload("TrainType").Order("cargo_num").Find(&trains).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing trains: " + err.Error()})
		return
	}

	var trainResponses []TrainListResponse
	for _, t := range trains {
		trainResponses = append(trainResponses, toTrainListResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{"trains": trainResponses})
}

// GetTrain returns a single train with its nested train type.
func GetTrain(c *gin.Context) {
	tID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid train ID"})
		return
	}

	var train models.Train
	if err := config.DB.Preload("TrainType").First(&train, tID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Train not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"train": toTrainDetailResponse(train)})
}

// UpdateTrain handles partial updates to a train.
func UpdateTrain(c *gin.Context) {
	tID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid train ID"})
		return
	}

	var train models.Train
	if err := config.DB.First(&train, tID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Train not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Name          *string `json:"name"`
		CargoNum      *int    `json:"cargo_num" binding:"omitempty,gt=0"`
		PlacesInCargo *int    `json:"places_in_cargo" binding:"omitempty,gt=0"`
		TrainTypeID   *uint   `json:"train_type_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		train.Name = *input.Name
	}
	if input.CargoNum != nil {
		train.CargoNum = *input.CargoNum
	}
	if input.PlacesInCargo != nil {
		train.PlacesInCargo = *input.PlacesInCargo
	}
	if input.TrainTypeID != nil {
		var trainType models.TrainType
		if err := config.DB.First(&trainType, *input.TrainTypeID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Train type not found"})
			return
		}
		train.TrainTypeID = *input.TrainTypeID
	}

	if err := config.DB.Save(&train).Error; err != nil {
		if booking.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "train name already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	config.DB.Preload("TrainType").First(&train, train.ID)
	c.JSON(http.StatusOK, gin.H{"train": toTrainDetailResponse(train)})
}

// DeleteTrain removes a train.
func DeleteTrain(c *gin.Context) {
	tID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid train ID"})
		return
	}

	var train models.Train
	if err := config.DB.First(&train, tID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Train not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if err := config.DB.Delete(&train).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete train: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Train deleted successfully"})
}
