package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/akarpovich/weather-lookup/internal/api/http"
	"github.com/akarpovich/weather-lookup/internal/cache"
	"github.com/akarpovich/weather-lookup/internal/config"
	"github.com/akarpovich/weather-lookup/internal/geocode"
	"github.com/akarpovich/weather-lookup/internal/weather"
)

func main() {
	// Missing credentials are fatal here, before any request is served.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory cache; expired entries are swept every minute.
	store := cache.New(time.Minute)
	defer store.Stop()

	// Geocoder selection: Google when a key is configured, OpenWeatherMap
	// otherwise (same credential as the weather calls).
	var geocoder geocode.Geocoder
	if cfg.GoogleGeocoderKey != "" {
		geocoder = geocode.NewGoogleGeocoder(cfg.GoogleGeocoderKey)
	} else {
		geocoder = geocode.NewOpenWeatherGeocoder(httpClient, cfg.OpenWeatherAPIKey)
	}

	gateway := weather.NewGateway(httpClient, cfg.OpenWeatherAPIKey, store, geocoder, weather.GatewayOptions{
		CacheTTL:   cfg.CacheTTL,
		MaxRetries: cfg.MaxRetries,
		Debug:      cfg.DetailedLogging,
	})

	orch := weather.NewOrchestrator(gateway, geocoder, cfg.DetailedLogging)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-lookup",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint with cache statistics.
	app.Get("/health", func(c *fiber.Ctx) error {
		hits, misses := store.Stats()
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-lookup",
			"cache": fiber.Map{
				"hits":   hits,
				"misses": misses,
			},
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, orch)

	// Start server with graceful shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
