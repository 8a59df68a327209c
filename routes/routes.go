package routes

import (
	"database/sql"

	"Kiadisa/controllers"
	"Kiadisa/middleware"
	"Kiadisa/services/redis"
	socketio_types "Kiadisa/services/socket_io/types"
	"Kiadisa/sync"
	utils "Kiadisa/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, sqlDB *sql.DB,
	redisClient *redis.RedisClient, sio *socketio_types.SocketServer) {

	syncManager := sync.NewSyncManager(redisClient, sqlDB)
	gameInfoController := &controllers.GameInfoController{
		DB:          sqlDB,
		RedisClient: redisClient,
		SyncManager: syncManager,
	}

	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/signup", controllers.SignUp(db))

	api.POST("/login", controllers.Login(db))

	// Public lobby browser: peek at a waiting game before joining
	api.GET("/games/:code", gameInfoController.GetGameInfo)

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.POST("/logout", controllers.Logout())

		authentication.GET("/me", controllers.Me(db))

		authentication.GET("/stats", controllers.GetUserStats(db))

		authentication.GET("/socket-token", controllers.SocketToken())

		authentication.POST("/games", controllers.CreateGame(db, redisClient))

		authentication.POST("/games/:code/join", controllers.JoinGame(db, redisClient))

		authentication.POST("/games/:code/start", controllers.StartGame(db, redisClient))

		authentication.POST("/games/:code/advance", controllers.AdvancePhase(db, redisClient, sio))

		authentication.POST("/games/:code/answers", controllers.SubmitAnswer(db))

		authentication.POST("/games/:code/votes", controllers.SubmitVote(db))

		authentication.GET("/games/:code/scores", controllers.GetScores(db))
	}
}
