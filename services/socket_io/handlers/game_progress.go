package handlers

import (
	"log"

	game "Kiadisa/services/game"
	"Kiadisa/services/redis"
	socketio_types "Kiadisa/services/socket_io/types"
	socketio_utils "Kiadisa/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleStartGame lets the host take the session out of the lobby.
// Everyone in the room learns the first round's phase.
func HandleStartGame(redisClient *redis.RedisClient, client *socket.Socket,
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

		session, err := game.StartGame(db, redisClient, code, username)
		if err != nil {
			log.Printf("[START-ERROR] %s could not start %s: %v", username, code, err)
			client.Emit("error", gin.H{"error": err.Error()})
			return
		}

		log.Printf("[START] Game %s started by host %s", session.Code, username)
		sio.BroadcastToGame(session.Code, "game_started", gin.H{
			"phase":         session.Phase,
			"current_round": session.CurrentRound,
			"total_rounds":  session.TotalRounds,
		})
	}
}

// HandleAdvancePhase is the socket path for the host moving the game
// forward. The room is told the new phase, plus the round's score deltas
// when leaving results closed a round.
func HandleAdvancePhase(redisClient *redis.RedisClient, client *socket.Socket,
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

		snapshot, err := socketio_utils.ValidateGameAndPlayer(redisClient, client, db, username, code)
		if err != nil {
			return
		}

		adv, err := game.AdvancePhase(db, redisClient, snapshot.SessionID, username)
		if err != nil {
			log.Printf("[PHASE-ERROR] %s could not advance %s: %v", username, code, err)
			client.Emit("error", gin.H{"error": err.Error()})
			return
		}

		sio.BroadcastToGame(code, "phase_changed", gin.H{
			"phase": adv.Phase,
			"round": adv.Round,
		})
		if adv.RoundScored {
			sio.BroadcastToGame(code, "round_scored", gin.H{"deltas": adv.Deltas})
		}
		if adv.GameEnded {
			sio.BroadcastToGame(code, "game_ended", gin.H{"code": code})
		}
	}
}

// HandleGetGameState replies with the Redis snapshot of the game, so a
// reconnecting client can resync without a REST round-trip.
func HandleGetGameState(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string) func(args ...interface{}) {
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

		snapshot, err := socketio_utils.ValidateGameAndPlayer(redisClient, client, db, username, code)
		if err != nil {
			return
		}

		client.Emit("game_state", gin.H{
			"code":          snapshot.Code,
			"host":          snapshot.HostUsername,
			"status":        snapshot.Status,
			"phase":         snapshot.Phase,
			"current_round": snapshot.CurrentRound,
			"total_rounds":  snapshot.TotalRounds,
			"mini_game":     snapshot.MiniGame,
			"player_count":  snapshot.PlayerCount,
		})
	}
}
