package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"train_station/internal/config"
	"train_station/internal/middleware"
	"train_station/internal/models"
	"train_station/internal/routes"
)

// setupAPI points the global DB handle at a fresh in-memory store and
// returns a fully wired router.
func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Station{},
		&models.Route{},
		&models.TrainType{},
		&models.Train{},
		&models.Crew{},
		&models.Trip{},
		&models.Order{},
		&models.Ticket{},
	))

	config.DB = db
	return routes.SetupRouter()
}

func createUser(t *testing.T, role, email string) (models.User, string) {
	t.Helper()
	user := models.User{Name: "Test " + role, Email: email, Password: "hashed", Role: role}
	require.NoError(t, config.DB.Create(&user).Error)

	token, err := middleware.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	return user, token
}

func createStation(t *testing.T, name string, lat, lng float64) models.Station {
	t.Helper()
	station := models.Station{Name: name, Latitude: lat, Longitude: lng}
	require.NoError(t, config.DB.Create(&station).Error)
	return station
}

// createTrip seeds a bookable trip on a 10-cargo, 50-seat train.
func createTrip(t *testing.T) models.Trip {
	t.Helper()

	source := createStation(t, "North Terminal", 51.5, -0.12)
	destination := createStation(t, "South Terminal", 48.85, 2.35)

	route := models.Route{SourceStationID: source.ID, DestinationStationID: destination.ID, Distance: 340}
	require.NoError(t, config.DB.Create(&route).Error)

	trainType := models.TrainType{Name: "Express"}
	require.NoError(t, config.DB.Create(&trainType).Error)

	train := models.Train{Name: "EX-7", CargoNum: 10, PlacesInCargo: 50, TrainTypeID: trainType.ID}
	require.NoError(t, config.DB.Create(&train).Error)

	trip := models.Trip{
		RouteID:       route.ID,
		TrainID:       train.ID,
		DepartureTime: time.Date(2026, 10, 5, 9, 30, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2026, 10, 5, 14, 0, 0, 0, time.UTC),
	}
	require.NoError(t, config.DB.Create(&trip).Error)
	return trip
}

func doRequest(t *testing.T, router http.Handler, method, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
