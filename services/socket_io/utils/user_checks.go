package socketio_utils

import (
	"log"
	"strings"

	"Kiadisa/middleware"
	redis_models "Kiadisa/models/redis"
	"Kiadisa/services/redis"
	"Kiadisa/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// VerifyUserConnection authenticates a socket.io client from the JWT in
// its handshake auth payload. Returns the username the token was issued
// for after checking the account still exists.
func VerifyUserConnection(client *socket.Socket, db *gorm.DB) (success bool, username string) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		log.Printf("[SOCKET-AUTH] No auth data provided in handshake (socket %s)", client.Id())
		client.Emit("error", gin.H{"error": "Authentication failed: missing auth data"})
		return false, ""
	}

	token, exists := authData["authorization"].(string)
	if !exists {
		log.Printf("[SOCKET-AUTH] No authorization token in handshake (socket %s)", client.Id())
		client.Emit("error", gin.H{"error": "Authentication failed: missing authorization token"})
		return false, ""
	}
	token = strings.TrimPrefix(token, "Bearer ")

	username, err := middleware.VerifySocketToken(token)
	if err != nil {
		log.Printf("[SOCKET-AUTH] Invalid socket token: %v", err)
		client.Emit("error", gin.H{"error": "Authentication failed: invalid token"})
		return false, ""
	}

	if err := utils.UserExists(db, username); err != nil {
		log.Printf("[SOCKET-AUTH] Token user %s not found: %v", username, err)
		client.Emit("error", gin.H{"error": "Authentication failed: could not find user"})
		return false, ""
	}

	return true, username
}

// ValidateGameAndPlayer checks the game snapshot exists in Redis and the
// user has a player row in the session, emitting the error to the client
// on failure.
func ValidateGameAndPlayer(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, code string) (*redis_models.GameSnapshot, error) {

	snapshot, err := redisClient.GetGameSnapshot(code)
	if err != nil {
		log.Printf("[SOCKET-ERROR] Error obtaining game snapshot %s: %v", code, err)
		client.Emit("error", gin.H{"error": "Error obtaining game information"})
		return nil, err
	}
	if snapshot == nil {
		client.Emit("error", gin.H{"error": "Game not found"})
		return nil, gorm.ErrRecordNotFound
	}

	inGame, err := utils.IsPlayerInSession(db, snapshot.SessionID, username)
	if err != nil {
		log.Printf("[SOCKET-ERROR] Database error checking membership: %v", err)
		client.Emit("error", gin.H{"error": "Database error"})
		return nil, err
	}
	if !inGame {
		log.Printf("[SOCKET-ERROR] User %s is NOT in game %s", username, code)
		client.Emit("error", gin.H{"error": "You must join the game first"})
		return nil, gorm.ErrRecordNotFound
	}

	return snapshot, nil
}
