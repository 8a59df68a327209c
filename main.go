package main

import (
	"log"
	"os"

	"Kiadisa/config"
	_ "Kiadisa/config/swagger"
	"Kiadisa/middleware"
	"Kiadisa/routes"
	"Kiadisa/services/redis"
	"Kiadisa/services/socket_io"
	socketio_types "Kiadisa/services/socket_io/types"
	"Kiadisa/sync"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// @title Kiadisa API
// @version 1.0
// @description Gin-Gonic server for the "Kiadisa" party game API
// @host localhost:8080
// @BasePath /
// @paths
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := config.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	log.Println("GORM Connected")

	// Only migrate in development or during deployment
	if os.Getenv("MIGRATE_POSTGRES") == "true" {
		log.Println("Migrating PostgreSQL database...")
		if err := config.MigrateDatabase(gormDB); err != nil {
			log.Printf("Warning: Database migration failed: %v", err)
			// Continue execution even if migration fails
		} else {
			log.Println("Database migrated successfully")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	redisClient, err := config.ConnectRedis()
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	log.Println("Connection to Redis successful")
	defer redis.CloseRedis(redisClient)

	// Rebuild snapshots of games that were live before the last restart
	syncManager := sync.NewSyncManager(redisClient, sqlDB)
	if err := syncManager.SyncAllActiveGames(); err != nil {
		log.Printf("Warning: could not resync active games: %v", err)
	}

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	sio := socketio_types.NewSocketServer()
	(*socket_io.MySocketServer)(sio).Start(r, gormDB, redisClient)

	routes.SetupRoutes(r, gormDB, sqlDB, redisClient, sio)

	// Configure port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
	log.Printf("Server started on port %s", port)
}
