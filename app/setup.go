package app

import (
	"fmt"
	"log"
	"os"

	"github.com/campushire/placement-api/api"
	"github.com/campushire/placement-api/config"
	"github.com/campushire/placement-api/database"
	"github.com/campushire/placement-api/router"
	"github.com/campushire/placement-api/services/cron"
	"github.com/campushire/placement-api/utils/cache"
	"gorm.io/gorm"
)

// SetupAndRunServer loads configuration, connects the backing services,
// and runs the HTTP server until it exits.
func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		log.Println("Check whether Postgres is running or not")
		return err
	}

	if err := store.Init(); err != nil {
		log.Println("Failed to run database migrations")
		return err
	}

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return fmt.Errorf("failed to get GORM DB instance")
	}

	if err := database.RunSeeds(db); err != nil {
		log.Printf("Warning: seeding failed: %v", err)
	}

	// Redis is optional; features backed by it degrade gracefully
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Caching and brute force protection disabled.", err)
			redisCache = nil
		}
	}

	svc := router.BuildServices(db, getEnv, redisCache)

	// Scheduled jobs (enabled unless CRON_ENABLED=false)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" {
		cronManager = cron.NewCronManager(db, svc.Jobs, svc.Reports)
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: Failed to start cron jobs: %v", err)
		}
	}

	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if redisCache != nil {
			redisCache.Close()
		}
		store.Close()
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes (security middleware is applied inside)
	router.SetupRoutes(app, store, getEnv, svc, redisCache)

	return server.Run()
}
