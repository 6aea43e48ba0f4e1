package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"train_station/internal/config"
	"train_station/internal/models"
)

// CrewResponse exposes the computed full name alongside the parts.
type CrewResponse struct {
	ID        uint   `json:"ID"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func toCrewResponse(crew models.Crew) CrewResponse {
	return CrewResponse{
		ID:        crew.ID,
		FirstName: crew.FirstName,
		LastName:  crew.LastName,
		FullName:  crew.FullName(),
	}
}

// CreateCrew registers a crew member (admin only).
func CreateCrew(c *gin.Context) {
	var input struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	crew := models.Crew{FirstName: input.FirstName, LastName: input.LastName}
	if err := config.DB.Create(&crew).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create crew failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"crew": toCrewResponse(crew)})
}

// ListCrews returns all crew members ordered by last name.
func ListCrews(c *gin.Context) {
	var crews []models.Crew
	if err := config.DB.Order("last_name").Find(&crews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing crews: " + err.Error()})
		return
	}

	var crewResponses []CrewResponse
	for _, crew := range crews {
		crewResponses = append(crewResponses, toCrewResponse(crew))
	}
	c.JSON(http.StatusOK, gin.H{"crews": crewResponses})
}

// UpdateCrew handles partial updates to a crew member (admin only).
func UpdateCrew(c *gin.Context) {
	cID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid crew ID"})
		return
	}

	var crew models.Crew
	if err := config.DB.First(&crew, cID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Crew not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.FirstName != nil {
		crew.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		crew.LastName = *input.LastName
	}

	if err := config.DB.Save(&crew).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"crew": toCrewResponse(crew)})
}

// DeleteCrew removes a crew member (admin only).
func DeleteCrew(c *gin.Context) {
	cID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid crew ID"})
		return
	}

	var crew models.Crew
	if err := config.DB.First(&crew, cID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Crew not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if err := config.DB.Delete(&crew).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete crew: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Crew deleted successfully"})
}
