package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rajendranagar-portal/internal/cleanup"
	"rajendranagar-portal/internal/config"
	"rajendranagar-portal/internal/database"
	"rajendranagar-portal/internal/handlers"
	"rajendranagar-portal/internal/listings"
	"rajendranagar-portal/internal/ratelimit"
	"rajendranagar-portal/internal/scheduler"
)

func main() {
	// Local development convenience; absence is fine in production
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	configPath := getEnv("CONFIG_PATH", "config/portal.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	// Initialize database based on configuration
	dbType := appConfig.Database.Type
	if dbType == "" {
		dbType = getEnv("DB_TYPE", "mysql")
	}

	var store database.Store
	var cleanupService *cleanup.Service

	if dbType == "mysql" {
		log.Println("Using MySQL with GORM")
		mysqlCfg := appConfig.Database.MySQL

		portStr := ""
		if mysqlCfg.Port > 0 {
			portStr = fmt.Sprintf("%d", mysqlCfg.Port)
		}

		gormDB, err := database.NewGormDB(
			getEnvOrConfig(mysqlCfg.Host, "DB_HOST", "mysql"),
			getEnvOrConfig(portStr, "DB_PORT", "3306"),
			getEnvOrConfig(mysqlCfg.User, "DB_USER", "portal_user"),
			getEnvOrConfig(mysqlCfg.Password, "DB_PASSWORD", "portal_pass"),
			getEnvOrConfig(mysqlCfg.Database, "DB_NAME", "portal_db"),
		)
		if err != nil {
			log.Fatalf("Failed to connect to MySQL: %v", err)
		}
		store = gormDB
		cleanupService = cleanup.NewService(gormDB.DB())
	} else {
		log.Println("Using PostgreSQL")
		pgCfg := appConfig.Database.Postgres

		portStr := ""
		if pgCfg.Port > 0 {
			portStr = fmt.Sprintf("%d", pgCfg.Port)
		}

		pgDB, err := database.NewDB(
			getEnvOrConfig(pgCfg.Host, "DB_HOST", "db"),
			getEnvOrConfig(portStr, "DB_PORT", "5432"),
			getEnvOrConfig(pgCfg.User, "DB_USER", "portal_user"),
			getEnvOrConfig(pgCfg.Password, "DB_PASSWORD", "portal_pass"),
			getEnvOrConfig(pgCfg.Database, "DB_NAME", "portal_db"),
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		store = pgDB
	}
	defer store.Close()

	if err := store.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	adminKey := getEnvOrConfig(appConfig.Admin.Key, "ADMIN_KEY", "ADMIN")

	service := listings.NewService(store, listings.Options{
		RetentionDays: appConfig.Listings.RetentionDays,
		CacheTTL:      appConfig.Listings.GetCacheTTL(),
		AdminKey:      adminKey,
	})
	log.Printf("Listing service initialized: %d day retention, %s cache TTL",
		appConfig.Listings.RetentionDays, appConfig.Listings.GetCacheTTL())

	limiter := ratelimit.NewPostLimiter(
		appConfig.RateLimit.PostsPerMinute,
		appConfig.RateLimit.PostsPerHour,
		appConfig.RateLimit.Enabled,
	)
	log.Printf("Post limiter initialized: %d/min, %d/hour (enabled: %v)",
		appConfig.RateLimit.PostsPerMinute,
		appConfig.RateLimit.PostsPerHour,
		appConfig.RateLimit.Enabled,
	)

	appScheduler := scheduler.NewScheduler(service, appConfig)
	if err := appScheduler.Start(); err != nil {
		log.Printf("Warning: Failed to start scheduler: %v", err)
	}
	defer appScheduler.Stop()

	// Setup Gin router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Admin-Key"},
		AllowCredentials: true,
	}))

	public := handlers.NewPublicHandler(service, limiter, appConfig.Contact)
	admin := handlers.NewAdminHandler(service, cleanupService, limiter, adminKey)

	// Routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now()})
	})

	r.GET("/api/properties", public.GetProperties)
	r.GET("/api/properties/:id", public.GetProperty)
	r.GET("/api/areas/:area/properties", public.GetPropertiesByArea)
	r.GET("/api/my-properties", public.GetMyProperties)
	r.POST("/api/properties", public.RateLimitMiddleware(), public.CreateProperty)
	r.DELETE("/api/properties/:id", public.DeleteProperty)

	r.GET("/api/meta/areas", public.GetAreas)
	r.GET("/api/meta/amenities", public.GetAmenities)
	r.GET("/api/meta/tiers", public.GetTiers)
	r.GET("/api/meta/contact", public.GetSiteContact)

	adminGroup := r.Group("/api/admin", admin.KeyMiddleware())
	{
		adminGroup.GET("/stats", admin.GetStats)
		adminGroup.GET("/user-limits/:mobile", admin.GetUserLimit)
		adminGroup.PUT("/user-limits/:mobile", admin.PutUserLimit)
		adminGroup.POST("/properties", admin.CreateProperty)
		adminGroup.DELETE("/properties/:id", admin.DeleteProperty)
		adminGroup.POST("/purge", admin.RunPurge)
		adminGroup.GET("/purge/logs", admin.GetDeleteLogs)
		adminGroup.GET("/ratelimit/stats", admin.GetRateLimitStats)
	}
	log.Println("Admin API routes registered at /api/admin/*")

	port := getEnvOrConfig(appConfig.Server.Port, "PORT", "8085")
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvOrConfig prefers the config value, then the environment, then the
// fallback.
func getEnvOrConfig(configValue, envKey, fallback string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, fallback)
}
