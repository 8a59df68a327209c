package handlers

import (
	"log"
	"time"

	redis_models "Kiadisa/models/redis"
	"Kiadisa/services/redis"
	socketio_types "Kiadisa/services/socket_io/types"
	socketio_utils "Kiadisa/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleLeaveGame takes the socket out of the game's room. The player row
// stays so scores survive a reconnect.
func HandleLeaveGame(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing game code"})
			return
		}
		code, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Game code must be a string"})
			return
		}

		if _, err := socketio_utils.ValidateGameAndPlayer(redisClient, client, db, username, code); err != nil {
			return
		}

		client.Leave(socket.Room(code))
		log.Printf("[LEAVE] User %s left game %s", username, code)

		sio.BroadcastToGame(code, "player_left", gin.H{"username": username})
		client.Emit("game_left", gin.H{"code": code})
	}
}

// HandleDisconnecting drops the connection from the map and flips the
// player's presence to offline.
func HandleDisconnecting(redisClient *redis.RedisClient, username string,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] User %s disconnecting", username)

		sio.RemoveConnection(username)

		presence := &redis_models.PlayerPresence{
			Username: username,
			Status:   redis_models.StatusOffline,
			LastPing: time.Now().Unix(),
		}
		if err := redisClient.SavePlayerPresence(presence); err != nil {
			log.Printf("[DISCONNECT-ERROR] Error saving presence for %s: %v", username, err)
		}
	}
}
