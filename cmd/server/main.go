package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"safetour/internal/config"
	"safetour/internal/handlers"
	"safetour/internal/middleware"
	"safetour/internal/models"
	"safetour/internal/repositories/mongodb"
	"safetour/internal/services"
	"safetour/internal/utils"
	"safetour/pkg/cache"
	"safetour/pkg/database"
	"safetour/pkg/logger"
	"safetour/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Connect MongoDB and build indexes
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(indexCtx); err != nil {
		cancelIndex()
		appLogger.WithError(err).Fatal("Failed to create indexes")
	}
	cancelIndex()

	// Connect Redis
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()

	tokenService, err := utils.NewTokenService(
		cfg.Security.JWTSecret,
		cfg.Security.JWTAlgorithm,
		cfg.Security.JWTAccessTokenTTL,
		cfg.Security.JWTRefreshTokenTTL,
	)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize token service")
	}

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database)
	touristRepo := mongodb.NewTouristRepository(db.Database)
	alertRepo := mongodb.NewAlertRepository(db.Database, redisCache)
	zoneRepo := mongodb.NewZoneRepository(db.Database)
	logRepo := mongodb.NewAccessLogRepository(db.Database)

	// Services. The alert service is built before the geofence engine so
	// the engine's sink can raise alerts through it.
	auditService := services.NewAuditService(logRepo, appLogger)
	authService := services.NewAuthService(
		userRepo,
		auditService,
		redisCache,
		tokenService,
		cfg.Security.MaxLoginAttempts,
		cfg.Security.LoginLockoutTime,
		appLogger,
	)
	alertService := services.NewAlertService(alertRepo, touristRepo, appLogger)
	geofenceService := services.NewGeofenceService(
		zoneRepo,
		redisCache,
		services.NewAlertSink(alertService),
		appLogger,
	)
	touristService := services.NewTouristService(touristRepo, geofenceService, appLogger)
	zoneService := services.NewZoneService(zoneRepo, redisCache, appLogger)

	if cfg.App.ZoneSeedFile != "" {
		if err := seedZones(zoneService, cfg.App.ZoneSeedFile, appLogger); err != nil {
			appLogger.WithError(err).Fatal("Failed to seed safe zones")
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	touristHandler := handlers.NewTouristHandler(touristService)
	alertHandler := handlers.NewAlertHandler(alertService)
	logHandler := handlers.NewLogHandler(auditService)
	zoneHandler := handlers.NewZoneHandler(zoneService)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.AccessLogMiddleware(auditService))

	// API routes
	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler, authService)
		routes.SetupTouristRoutes(v1, touristHandler, authService)
		routes.SetupAlertRoutes(v1, alertHandler, authService)
		routes.SetupLogRoutes(v1, logHandler, authService)
		routes.SetupZoneRoutes(v1, zoneHandler, authService)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": cfg.App.Version,
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithField("port", cfg.App.Port).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
}

// seedZones loads safe zones from a JSON file and creates the ones that do
// not exist yet.
func seedZones(zones services.ZoneService, path string, appLogger *logger.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read zone seed file: %w", err)
	}

	var seed []*models.SafeZone
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse zone seed file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := zones.Seed(ctx, seed)
	if err != nil {
		return err
	}

	appLogger.WithFields(map[string]interface{}{
		"file":    path,
		"created": created,
		"total":   len(seed),
	}).Info("Safe zones seeded")
	return nil
}
