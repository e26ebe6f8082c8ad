package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/scripture-text-api/internal/cache"
	"github.com/scripture-text-api/internal/config"
	"github.com/scripture-text-api/internal/handlers"
	"github.com/scripture-text-api/internal/middleware"
	"github.com/scripture-text-api/internal/repository/postgres"
	"github.com/scripture-text-api/internal/services"
	"github.com/scripture-text-api/pkg/db"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	// Get configuration
	cfg := config.GetConfig()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSMiddleware())

	// Initialize PostgreSQL
	ctx := context.Background()
	if err := db.InitPostgres(ctx); err != nil {
		log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	log.Println("Database initialization complete")

	// Create repositories
	pgDB := db.GetPostgres()
	filesetRepo := postgres.NewFilesetRepository(pgDB)
	verseRepo := postgres.NewVerseRepository(pgDB)
	numeralRepo := postgres.NewNumeralRepository(pgDB)
	accessRepo := postgres.NewAccessRepository(pgDB)

	// Create grant-set cache based on configuration
	var grantCache cache.Cache
	switch cfg.CacheBackend {
	case "redis":
		log.Println("Using Redis cache backend")
		grantCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		log.Println("Using in-memory cache backend")
		grantCache = cache.NewMemory()
	}

	// Create services
	accessSvc := services.NewAccessService(accessRepo, grantCache, cfg.AccessCacheTTL)
	numeralSvc := services.NewNumeralService(numeralRepo)
	textSvc := services.NewTextService(filesetRepo, verseRepo, numeralRepo, accessSvc, cfg.DefaultAssetID)

	// Create API group with prefix
	api := e.Group(cfg.APIPrefix)

	// Health checks are open; everything else requires an API key
	healthHandler := handlers.NewHealthHandler()
	healthHandler.RegisterRoutes(api)

	keyed := api.Group("", middleware.APIKey())

	textHandler := handlers.NewTextHandler(textSvc)
	textHandler.RegisterRoutes(keyed)

	searchHandler := handlers.NewSearchHandler(textSvc)
	searchHandler.RegisterRoutes(keyed)

	numbersHandler := handlers.NewNumbersHandler(numeralSvc)
	numbersHandler.RegisterRoutes(keyed)

	// Root health check
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"name":    cfg.APITitle,
			"version": cfg.APIVersion,
			"status":  "running",
		})
	})

	// Start server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Starting %s v%s on %s", cfg.APITitle, cfg.APIVersion, addr)
		if err := e.Start(addr); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	if err := db.ClosePostgres(); err != nil {
		log.Printf("Error closing PostgreSQL: %v", err)
	}

	// Close the cache backend if it holds a connection
	if closer, ok := grantCache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Printf("Error closing cache: %v", err)
		}
	}

	log.Println("Server stopped")
}
