package routes

import (
	"train_station/internal/controllers"
	"train_station/internal/middleware"

	"github.com/gin-gonic/gin"
)

// AdminRoutes gathers all catalog mutations behind the admin role.
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/stations", controllers.CreateStation)
		admin.PATCH("/stations/:id", controllers.UpdateStation)
		admin.DELETE("/stations/:id", controllers.DeleteStation)

		admin.POST("/routes", controllers.CreateRoute)
		admin.PATCH("/routes/:id", controllers.UpdateRoute)
		admin.DELETE("/routes/:id", controllers.DeleteRoute)

		admin.POST("/train-types", controllers.CreateTrainType)
		admin.PATCH("/train-types/:id", controllers.UpdateTrainType)
		admin.DELETE("/train-types/:id", controllers.DeleteTrainType)

		admin.POST("/trains", controllers.CreateTrain)
		admin.PATCH("/trains/:id", controllers.UpdateTrain)
		admin.DELETE("/trains/:id", controllers.DeleteTrain)

		admin.POST("/crews", controllers.CreateCrew)
		admin.PATCH("/crews/:id", controllers.UpdateCrew)
		admin.DELETE("/crews/:id", controllers.DeleteCrew)

		admin.POST("/trips", controllers.CreateTrip)
		admin.PATCH("/trips/:id", controllers.UpdateTrip)
		admin.DELETE("/trips/:id", controllers.DeleteTrip)
	}
}
