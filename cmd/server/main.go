package main

import (
	"log"
	"net/http"
	"os"

	"train_station/internal/config"
	"train_station/internal/logger"
	"train_station/internal/middleware"
	"train_station/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + getPort()
	log.Printf("🚆 Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func getPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8080"
}
