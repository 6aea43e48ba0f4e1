package routes

import (
	"train_station/internal/controllers"
	"train_station/internal/middleware"

	"github.com/gin-gonic/gin"
)

// CatalogRoutes exposes read-only catalog lookups to any
// authenticated user.
func CatalogRoutes(r *gin.Engine) {
	catalog := r.Group("/")
	catalog.Use(middleware.RequireAuth())
	{
		catalog.GET("/stations", controllers.ListStations)
		catalog.GET("/stations/:id", controllers.GetStation)
		catalog.GET("/routes", controllers.ListRoutes)
		catalog.GET("/routes/:id", controllers.GetRoute)
		catalog.GET("/train-types", controllers.ListTrainTypes)
		catalog.GET("/trains", controllers.ListTrains)
		catalog.GET("/trains/:id", controllers.GetTrain)
		catalog.GET("/crews", controllers.ListCrews)
		catalog.GET("/trips", controllers.ListTrips)
		catalog.GET("/trips/:id", controllers.GetTrip)
	}
}
