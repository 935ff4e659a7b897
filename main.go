package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apexlog "github.com/apex/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"report-generator-service/config"
	"report-generator-service/engine"
	"report-generator-service/handlers"
	"report-generator-service/metrics"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if lvl, err := apexlog.ParseLevel(cfg.LogLevel); err == nil {
		apexlog.SetLevel(lvl)
	}

	// Register prometheus collectors
	metrics.Register()

	// Initialize the generation engine
	generator := engine.New(cfg)

	// Initialize handlers
	h := handlers.NewHandlers(generator)

	// Setup HTTP server
	router := gin.Default()
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API routes
	api := router.Group("/api/v3")
	{
		api.GET("/health", h.HealthCheck)
		api.POST("/reports/generate", h.GenerateReport)
		api.POST("/reports/generate/comparison", h.GenerateComparisonReport)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
