package main

import (
	"context"
	"log"
	"net/http"
	"ride-assignment-service/internal/api"
	"ride-assignment-service/internal/app"
	"ride-assignment-service/internal/config"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	router := api.NewRouter(a.Assigner, a.Fleet)

	// Write timeout covers a cold run where every nearby pair hits the routing service.
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
