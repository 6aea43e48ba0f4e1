package booking

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"train_station/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and
	// serializes concurrent transactions.
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
	return db
}

type fixture struct {
	customer models.User
	trip     models.Trip
}

// seedTrip builds the minimal catalog for booking: two stations, a
// route between them, a 10x50 train and one scheduled trip.
func seedTrip(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	customer := models.User{Name: "Test Customer", Email: "customer@test.com", Role: "customer"}
	require.NoError(t, db.Create(&customer).Error)

	source := models.Station{Name: "Central", Latitude: 50.45, Longitude: 30.52}
	destination := models.Station{Name: "Harbour", Latitude: 46.48, Longitude: 30.74}
	require.NoError(t, db.Create(&source).Error)
	require.NoError(t, db.Create(&destination).Error)

	route := models.Route{SourceStationID: source.ID, DestinationStationID: destination.ID, Distance: 480}
	require.NoError(t, db.Create(&route).Error)

	trainType := models.TrainType{Name: "Intercity"}
	require.NoError(t, db.Create(&trainType).Error)

	train := models.Train{Name: "IC-101", CargoNum: 10, PlacesInCargo: 50, TrainTypeID: trainType.ID}
	require.NoError(t, db.Create(&train).Error)

	trip := models.Trip{
		RouteID:       route.ID,
		TrainID:       train.ID,
		DepartureTime: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&trip).Error)

	return fixture{customer: customer, trip: trip}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCreateOrderSingleSeat(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTrip(t, db)
	svc := NewService(db)

	order, err := svc.CreateOrder(fx.customer.ID, []TicketRequest{
		{Cargo: 3, Seat: 30, TripID: fx.trip.ID},
	})
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, fx.customer.ID, order.CustomerID)
	require.Len(t, order.Tickets, 1)
	assert.Equal(t, 3, order.Tickets[0].Cargo)
	assert.Equal(t, 30, order.Tickets[0].Seat)
	assert.Equal(t, fx.trip.ID, order.Tickets[0].TripID)
}

func TestCreateOrderSeatAlreadySold(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTrip(t, db)
	svc := NewService(db)

	_, err := svc.CreateOrder(fx.customer.ID, []TicketRequest{
		{Cargo: 3, Seat: 30, TripID: fx.trip.ID},
	})
	require.NoError(t, err)

	_, err = svc.CreateOrder(fx.customer.ID, []TicketRequest{
		{Cargo: 3, Seat: 30, TripID: fx.trip.ID},
	})
	var taken *SeatTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, fx.trip.ID, taken.TripID)
	assert.Equal(t, 3, taken.Cargo)
	assert.Equal(t, 30, taken.Seat)

	assert.EqualValues(t, 1, countRows(t, db, &models.Order{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Ticket{}))
}

func TestCreateOrderCapacityRejected(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTrip(t, db)
	svc := NewService(db)

	_, err := svc.CreateOrder(fx.customer.ID, []TicketRequest{
		{Cargo: 11, Seat: 1, TripID: fx.trip.ID},
	})
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "cargo", capErr.Field)
	assert.Equal(t, 11, capErr.Requested)
	assert.Equal(t, 10, capErr.Max)

	// Nothing persisted, not even the order row.
	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.Ticket{}))
}

func TestCreateOrderAllOrNothing(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTrip(t, db)
	svc := NewService(db)

	_, err := svc.CreateOrder(fx.customer.ID, []TicketRequest{
		{Cargo: 1, Seat: 1, TripID: fx.trip.ID},
	})
	require.NoError(t, err)

	// One valid seat plus one already-sold seat: the valid one must
	// not survive the rollback.
	_, err = svc.CreateOrder(fx.customer.ID, []TicketRequest{
		{Cargo: 2, Seat: 2, TripID: fx.trip.ID},
		{Cargo: 1, Seat: 1, TripID: fx.trip.ID},
	})
	var taken *SeatTakenError
	require.ErrorAs(t, err, &taken)

	assert.EqualValues(t, 1, countRows(t, db, &models.Order{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Ticket{}))
}

func TestCreateOrderSelfConflict(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTrip(t, db)
	svc := NewService(db)

	_, err := svc.CreateOrder(fx.customer.ID, []TicketRequest{
		{Cargo: 1, Seat: 1, TripID: fx.trip.ID},
		{Cargo: 1, Seat: 1, TripID: fx.trip.ID},
	})
	var taken *SeatTakenError
	require.ErrorAs(t, err, &taken)

	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.Ticket{}))
}

func TestCreateOrderEmpty(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTrip(t, db)
	svc := NewService(db)

	_, err := svc.CreateOrder(fx.customer.ID, nil)
	require.ErrorIs(t, err, ErrEmptyOrder)

	_, err = svc.CreateOrder(fx.customer.ID, []TicketRequest{})
	require.ErrorIs(t, err, ErrEmptyOrder)

	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}))
}

func TestCreateOrderTripNotFound(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTrip(t, db)
	svc := NewService(db)

	_, err := svc.CreateOrder(fx.customer.ID, []TicketRequest{
		{Cargo: 1, Seat: 1, TripID: fx.trip.ID + 999},
	})
	var notFound *TripNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, fx.trip.ID+999, notFound.TripID)

	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}))
}

func TestListOrders(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTrip(t, db)
	svc := NewService(db)

	other := models.User{Name: "Other", Email: "other@test.com", Role: "customer"}
	require.NoError(t, db.Create(&other).Error)

	first, err := svc.CreateOrder(fx.customer.ID, []TicketRequest{
		{Cargo: 1, Seat: 1, TripID: fx.trip.ID},
	})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	second, err := svc.CreateOrder(fx.customer.ID, []TicketRequest{
		{Cargo: 2, Seat: 2, TripID: fx.trip.ID},
		{Cargo: 1, Seat: 2, TripID: fx.trip.ID},
	})
	require.NoError(t, err)

	_, err = svc.CreateOrder(other.ID, []TicketRequest{
		{Cargo: 5, Seat: 5, TripID: fx.trip.ID},
	})
	require.NoError(t, err)

	orders, err := svc.ListOrders(fx.customer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2, "only the customer's own orders")
	assert.Equal(t, first.ID, orders[0].ID, "oldest first")
	assert.Equal(t, second.ID, orders[1].ID)

	// Tickets come back ordered by cargo then seat.
	require.Len(t, orders[1].Tickets, 2)
	assert.Equal(t, 1, orders[1].Tickets[0].Cargo)
	assert.Equal(t, 2, orders[1].Tickets[1].Cargo)
}

func TestCommitConflictNamesLosingSeat(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTrip(t, db)
	svc := NewService(db)

	// A competitor's committed ticket is what a commit-time unique
	// violation leaves behind after rollback.
	_, err := svc.CreateOrder(fx.customer.ID, []TicketRequest{
		{Cargo: 4, Seat: 12, TripID: fx.trip.ID},
	})
	require.NoError(t, err)

	conflictErr := svc.commitConflict([]TicketRequest{
		{Cargo: 2, Seat: 2, TripID: fx.trip.ID},
		{Cargo: 4, Seat: 12, TripID: fx.trip.ID},
	})
	var taken *SeatTakenError
	require.ErrorAs(t, conflictErr, &taken)
	assert.Equal(t, fx.trip.ID, taken.TripID)
	assert.Equal(t, 4, taken.Cargo)
	assert.Equal(t, 12, taken.Seat)

	// With no visible winner the conflict stays unlocated but is
	// still reported as a seat conflict.
	conflictErr = svc.commitConflict([]TicketRequest{
		{Cargo: 9, Seat: 9, TripID: fx.trip.ID},
	})
	require.ErrorAs(t, conflictErr, &taken)
	assert.Zero(t, taken.TripID)
}

func TestConcurrentClaimsOneWinner(t *testing.T) {
	db := setupTestDB(t)
	fx := seedTrip(t, db)
	svc := NewService(db)

	const claimants = 8
	results := make(chan error, claimants)

	var wg sync.WaitGroup
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			customer := models.User{
				Name:  fmt.Sprintf("Customer %d", i),
				Email: fmt.Sprintf("customer%d@test.com", i),
				Role:  "customer",
			}
			if err := db.Create(&customer).Error; err != nil {
				results <- err
				return
			}
			_, err := svc.CreateOrder(customer.ID, []TicketRequest{
				{Cargo: 4, Seat: 12, TripID: fx.trip.ID},
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		var taken *SeatTakenError
		require.ErrorAs(t, err, &taken)
		losses++
	}
	assert.Equal(t, 1, wins, "exactly one claim succeeds")
	assert.Equal(t, claimants-1, losses)

	assert.EqualValues(t, 1, countRows(t, db, &models.Ticket{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Order{}))
}
