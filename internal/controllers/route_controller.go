package controllers

import (
	"encoding/binary"
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

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// RouteListResponse is the list projection: station references
// collapsed to their names.
type RouteListResponse struct {
	ID                 uint   `json:"ID"`
	SourceStation      string `json:"source_station"`
	DestinationStation string `json:"destination_station"`
	Distance           uint   `json:"distance"`
	RouteName          string `json:"route_name"`
}

// RouteDetailResponse is the detail projection: nested stations plus
// the route geometry as a GeoJSON string.
type RouteDetailResponse struct {
	ID                 uint           `json:"ID"`
	CreatedAt          time.Time      `json:"CreatedAt"`
	UpdatedAt          time.Time      `json:"UpdatedAt"`
	DeletedAt          gorm.DeletedAt `json:"DeletedAt,omitempty"`
	SourceStation      models.Station `json:"source_station"`
	DestinationStation models.Station `json:"destination_station"`
	Distance           uint           `json:"distance"`
	RouteName          string         `json:"route_name"`
	Geometry           string         `json:"geometry"`
}

func routeName(route models.Route) string {
	return route.SourceStation.Name + " - " + route.DestinationStation.Name
}

func toRouteListResponse(route models.Route) RouteListResponse {
	return RouteListResponse{
		ID:                 route.ID,
		SourceStation:      route.SourceStation.Name,
		DestinationStation: route.DestinationStation.Name,
		Distance:           route.Distance,
		RouteName:          routeName(route),
	}
}

func toRouteDetailResponse(route models.Route) RouteDetailResponse {
	jsonGeom, err := convertWKBToGeoJSON(route.Geometry)
	if err != nil {
		logrus.WithError(err).WithField("route_id", route.ID).Warn("toRouteDetailResponse: could not decode route geometry")
	}
	return RouteDetailResponse{
		ID:                 route.ID,
		CreatedAt:          route.CreatedAt,
		UpdatedAt:          route.UpdatedAt,
		DeletedAt:          route.DeletedAt,
		SourceStation:      route.SourceStation,
		DestinationStation: route.DestinationStation,
		Distance:           route.Distance,
		RouteName:          routeName(route),
		Geometry:           jsonGeom,
	}
}

// buildRouteGeometry returns WKB for the straight LINESTRING between
// the two stations (SRID-less, lng/lat order).
func buildRouteGeometry(source, destination models.Station) ([]byte, error) {
	line := geom.NewLineString(geom.XY)
	if _, err := line.SetCoords([]geom.Coord{
		{source.Longitude, source.Latitude},
		{destination.Longitude, destination.Latitude},
	}); err != nil {
		return nil, err
	}
	return wkb.Marshal(line, binary.LittleEndian)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func findStation(db *gorm.DB, id uint) (models.Station, error) {
	var station models.Station
	err := db.First(&station, id).Error
	return station, err
}

// CreateRoute connects two distinct stations. The route geometry is
// derived from the stations' coordinates, never supplied by the client.
func CreateRoute(c *gin.Context) {
	var input struct {
		SourceStationID      uint `json:"source_station_id" binding:"required"`
		DestinationStationID uint `json:"destination_station_id" binding:"required"`
		Distance             uint `json:"distance" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if err := booking.ValidateRoute(input.SourceStationID, input.DestinationStationID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	source, err := findStation(config.DB, input.SourceStationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Source station not found"})
		return
	}
	destination, err := findStation(config.DB, input.DestinationStationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Destination station not found"})
		return
	}

	wkbGeom, err := buildRouteGeometry(source, destination)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build geometry: " + err.Error()})
		return
	}

	route := models.Route{
		SourceStationID:      input.SourceStationID,
		DestinationStationID: input.DestinationStationID,
		Distance:             input.Distance,
		Geometry:             wkbGeom,
	}
	if err := config.DB.Create(&route).Error; err != nil {
		if booking.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "route between these stations already exists"})
			return
		}
		logrus.WithError(err).Error("CreateRoute: create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create route failed: " + err.Error()})
		return
	}

	config.DB.Preload("SourceStation").Preload("DestinationStation").First(&route, route.ID)
	c.JSON(http.StatusCreated, gin.H{"route": toRouteDetailResponse(route)})
}

// ListRoutes returns all routes with station names, ordered by the
// source station's name.
func ListRoutes(c *gin.Context) {
	var routes []models.Route
	err := config.DB.Preload("SourceStation").Preload("DestinationStation").
		Joins("JOIN stations ON stations.id = routes.source_station_id").
		Order("stations.name").
		Find(&routes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing routes: " + err.Error()})
		return
	}

	var routeResponses []RouteListResponse
	for _, r := range routes {
		routeResponses = append(routeResponses, toRouteListResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"routes": routeResponses})
}

// GetRoute returns a single route with nested stations and geometry.
func GetRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.Preload("SourceStation").Preload("DestinationStation").First(&route, rID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"route": toRouteDetailResponse(route)})
}

// UpdateRoute handles partial updates to an existing route. Changing
// either endpoint re-validates the pair and rebuilds the geometry.
func UpdateRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logrus.WithError(err).Warn("UpdateRoute: invalid route ID in parameter")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var existingRoute models.Route
	if err := config.DB.First(&existingRoute, rID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			logrus.WithError(err).Error("UpdateRoute: database error fetching route")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		SourceStationID      *uint `json:"source_station_id"`
		DestinationStationID *uint `json:"destination_station_id"`
		Distance             *uint `json:"distance" binding:"omitempty,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.SourceStationID != nil {
		existingRoute.SourceStationID = *input.SourceStationID
	}
	if input.DestinationStationID != nil {
		existingRoute.DestinationStationID = *input.DestinationStationID
	}
	if input.Distance != nil {
		existingRoute.Distance = *input.Distance
	}

	if err := booking.ValidateRoute(existingRoute.SourceStationID, existingRoute.DestinationStationID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	source, err := findStation(config.DB, existingRoute.SourceStationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Source station not found"})
		return
	}
	destination, err := findStation(config.DB, existingRoute.DestinationStationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Destination station not found"})
		return
	}
	wkbGeom, err := buildRouteGeometry(source, destination)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build geometry: " + err.Error()})
		return
	}
	existingRoute.Geometry = wkbGeom

	if err := config.DB.Save(&existingRoute).Error; err != nil {
		if booking.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "route between these stations already exists"})
			return
		}
		logrus.WithError(err).Error("UpdateRoute: failed to save updated route")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	config.DB.Preload("SourceStation").Preload("DestinationStation").First(&existingRoute, existingRoute.ID)
	c.JSON(http.StatusOK, gin.H{"route": toRouteDetailResponse(existingRoute)})
}

// DeleteRoute removes a route.
func DeleteRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.First(&route, rID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if err := config.DB.Delete(&route).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete route: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}
