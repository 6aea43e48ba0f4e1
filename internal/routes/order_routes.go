package routes

import (
	"train_station/internal/controllers"
	"train_station/internal/middleware"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(r *gin.Engine) {
	orders := r.Group("/orders")
	orders.Use(middleware.RequireAuth())
	{
		orders.POST("", controllers.CreateOrder)
		orders.GET("", controllers.ListOrders)
	}
}
