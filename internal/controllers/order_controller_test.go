package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"train_station/internal/config"
	"train_station/internal/models"
)

func TestOrdersRequireAuth(t *testing.T) {
	router := setupAPI(t)

	w := doRequest(t, router, http.MethodGet, "/orders", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, http.MethodPost, "/orders", map[string]any{}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateOrderWithoutTickets(t *testing.T) {
	router := setupAPI(t)
	_, token := createUser(t, "customer", "customer@test.com")

	w := doRequest(t, router, http.MethodPost, "/orders", map[string]any{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least one ticket")
}

func TestCreateOrderWithTickets(t *testing.T) {
	router := setupAPI(t)
	user, token := createUser(t, "customer", "customer@test.com")
	trip := createTrip(t)

	w := doRequest(t, router, http.MethodPost, "/orders", map[string]any{
		"tickets": []map[string]any{
			{"cargo": 3, "seat": 30, "trip_id": trip.ID},
		},
	}, token)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var tickets []models.Ticket
	require.NoError(t, config.DB.Find(&tickets).Error)
	require.Len(t, tickets, 1)
	assert.Equal(t, 3, tickets[0].Cargo)
	assert.Equal(t, 30, tickets[0].Seat)

	var order models.Order
	require.NoError(t, config.DB.First(&order, tickets[0].OrderID).Error)
	assert.Equal(t, user.ID, order.CustomerID)
}

func TestCreateOrderSeatConflict(t *testing.T) {
	router := setupAPI(t)
	_, token := createUser(t, "customer", "customer@test.com")
	trip := createTrip(t)

	payload := map[string]any{
		"tickets": []map[string]any{
			{"cargo": 3, "seat": 30, "trip_id": trip.ID},
		},
	}
	w := doRequest(t, router, http.MethodPost, "/orders", payload, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, router, http.MethodPost, "/orders", payload, token)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "seat already taken")
}

func TestCreateOrderCapacityExceeded(t *testing.T) {
	router := setupAPI(t)
	_, token := createUser(t, "customer", "customer@test.com")
	trip := createTrip(t)

	w := doRequest(t, router, http.MethodPost, "/orders", map[string]any{
		"tickets": []map[string]any{
			{"cargo": 11, "seat": 1, "trip_id": trip.ID},
		},
	}, token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cargo")

	var count int64
	require.NoError(t, config.DB.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateOrderUnknownTrip(t *testing.T) {
	router := setupAPI(t)
	_, token := createUser(t, "customer", "customer@test.com")

	w := doRequest(t, router, http.MethodPost, "/orders", map[string]any{
		"tickets": []map[string]any{
			{"cargo": 1, "seat": 1, "trip_id": 42},
		},
	}, token)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrdersScopedToCustomer(t *testing.T) {
	router := setupAPI(t)
	_, token := createUser(t, "customer", "customer@test.com")
	_, otherToken := createUser(t, "customer", "other@test.com")
	trip := createTrip(t)

	w := doRequest(t, router, http.MethodPost, "/orders", map[string]any{
		"tickets": []map[string]any{
			{"cargo": 1, "seat": 1, "trip_id": trip.ID},
		},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, router, http.MethodPost, "/orders", map[string]any{
		"tickets": []map[string]any{
			{"cargo": 1, "seat": 2, "trip_id": trip.ID},
		},
	}, otherToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, router, http.MethodGet, "/orders", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	orders, ok := body["orders"].([]any)
	require.True(t, ok)
	require.Len(t, orders, 1, "only the requesting customer's orders")

	order, ok := orders[0].(map[string]any)
	require.True(t, ok)
	tickets, ok := order["tickets"].([]any)
	require.True(t, ok)
	assert.Len(t, tickets, 1)
}
