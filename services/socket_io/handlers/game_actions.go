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

// HandleSubmitAnswer records the player's answer for the current round.
// Payload: { code, content, is_bluff }. The room is told someone
// answered, without revealing the content.
func HandleSubmitAnswer(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing answer payload"})
			return
		}
		payload, ok := args[0].(map[string]interface{})
		if !ok {
			client.Emit("error", gin.H{"error": "Answer payload must be an object"})
			return
		}

		code, _ := payload["code"].(string)
		content, _ := payload["content"].(string)
		isBluff, _ := payload["is_bluff"].(bool)

		snapshot, err := socketio_utils.ValidateGameAndPlayer(redisClient, client, db, username, code)
		if err != nil {
			return
		}
		if !socketio_utils.ValidateAnswerPhase(snapshot, client) {
			return
		}
		if snapshot.RoundID == 0 {
			client.Emit("error", gin.H{"error": "The game has no active round"})
			return
		}

		answer, err := game.SubmitAnswer(db, snapshot.RoundID, username, content, isBluff)
		if err != nil {
			log.Printf("[ANSWER-ERROR] %s in game %s: %v", username, code, err)
			client.Emit("error", gin.H{"error": err.Error()})
			return
		}

		client.Emit("answer_accepted", gin.H{"answer_id": answer.ID})
		sio.BroadcastToGame(code, "answer_submitted", gin.H{"username": username})
	}
}

// HandleSubmitVote upserts the player's vote for the current round.
// Payload: { code, target_username, answer_id, vote_type }.
func HandleSubmitVote(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing vote payload"})
			return
		}
		payload, ok := args[0].(map[string]interface{})
		if !ok {
			client.Emit("error", gin.H{"error": "Vote payload must be an object"})
			return
		}

		code, _ := payload["code"].(string)
		targetUsername, _ := payload["target_username"].(string)
		voteType, _ := payload["vote_type"].(string)
		// JSON numbers arrive as float64
		var answerID uint
		if raw, exists := payload["answer_id"].(float64); exists {
			answerID = uint(raw)
		}

		snapshot, err := socketio_utils.ValidateGameAndPlayer(redisClient, client, db, username, code)
		if err != nil {
			return
		}
		if !socketio_utils.ValidateVotePhase(snapshot, client) {
			return
		}
		if snapshot.RoundID == 0 {
			client.Emit("error", gin.H{"error": "The game has no active round"})
			return
		}

		vote, err := game.SubmitVote(db, snapshot.RoundID, username, targetUsername, answerID, voteType)
		if err != nil {
			log.Printf("[VOTE-ERROR] %s in game %s: %v", username, code, err)
			client.Emit("error", gin.H{"error": err.Error()})
			return
		}

		client.Emit("vote_accepted", gin.H{"vote_id": vote.ID})
		sio.BroadcastToGame(code, "vote_submitted", gin.H{"username": username})
	}
}
