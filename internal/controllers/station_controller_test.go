package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"train_station/internal/config"
	"train_station/internal/models"
)

func TestCreateStationRequiresAdmin(t *testing.T) {
	router := setupAPI(t)
	_, customerToken := createUser(t, "customer", "customer@test.com")

	payload := map[string]any{
		"name":      "Central",
		"latitude":  50.45,
		"longitude": 30.52,
	}
	w := doRequest(t, router, http.MethodPost, "/admin/stations", payload, customerToken)

	// The handler must never run for a non-admin: a single 403
	// response and no station row.
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "Central")

	var count int64
	require.NoError(t, config.DB.Model(&models.Station{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateStationAsAdmin(t *testing.T) {
	router := setupAPI(t)
	_, adminToken := createUser(t, "admin", "admin@test.com")

	w := doRequest(t, router, http.MethodPost, "/admin/stations", map[string]any{
		"name":      "Central",
		"latitude":  50.45,
		"longitude": 30.52,
	}, adminToken)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var station models.Station
	require.NoError(t, config.DB.Where("name = ?", "Central").First(&station).Error)
	assert.Equal(t, 50.45, station.Latitude)
	assert.Equal(t, 30.52, station.Longitude)
}

func TestAdminRoutesRejectMissingToken(t *testing.T) {
	router := setupAPI(t)

	w := doRequest(t, router, http.MethodPost, "/admin/stations", map[string]any{
		"name":      "Central",
		"latitude":  50.45,
		"longitude": 30.52,
	}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var count int64
	require.NoError(t, config.DB.Model(&models.Station{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
