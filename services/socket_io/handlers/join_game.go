package handlers

import (
	"log"
	"time"

	redis_models "Kiadisa/models/redis"
	game "Kiadisa/services/game"
	"Kiadisa/services/redis"
	socketio_types "Kiadisa/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleJoinGame registers the player in the session behind the code and
// joins the socket to the game's room. Joining twice is harmless: the
// player row is created at most once.
func HandleJoinGame(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[JOIN] HandleJoinGame started - user: %s, args: %v, socket: %s",
			username, args, client.Id())

		if len(args) < 1 {
			log.Printf("[JOIN-ERROR] Missing game code for user %s", username)
			client.Emit("error", gin.H{"error": "Missing game code"})
			return
		}

		code, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Game code must be a string"})
			return
		}

		session, err := game.JoinGame(db, redisClient, username, code)
		if err != nil {
			log.Printf("[JOIN-ERROR] %s could not join %s: %v", username, code, err)
			client.Emit("error", gin.H{"error": err.Error()})
			return
		}

		client.Join(socket.Room(session.Code))

		presence := &redis_models.PlayerPresence{
			Username: username,
			Status:   redis_models.StatusOnline,
			LastPing: time.Now().Unix(),
			SocketID: string(client.Id()),
		}
		if err := redisClient.SavePlayerPresence(presence); err != nil {
			log.Printf("[JOIN-ERROR] Error saving presence for %s: %v", username, err)
		}

		log.Printf("[JOIN-SUCCESS] User %s joined game %s", username, session.Code)
		client.Emit("game_joined", gin.H{
			"code":         session.Code,
			"host":         session.HostUsername,
			"status":       session.Status,
			"total_rounds": session.TotalRounds,
		})
		sio.BroadcastToGame(session.Code, "player_joined", gin.H{
			"username": username,
		})
	}
}
