package socketio_utils

import (
	"fmt"
	"log"

	redis_models "Kiadisa/models/redis"
	game "Kiadisa/services/game"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// ValidateGamePhase checks if the snapshot's current phase matches the
// expected phase for the attempted action.
func ValidateGamePhase(snapshot *redis_models.GameSnapshot, client *socket.Socket, expectedPhase string) bool {
	if snapshot.Phase != expectedPhase {
		log.Printf("[PHASE-ERROR] Action attempted during wrong phase: %s (required: %s)",
			snapshot.Phase, expectedPhase)
		if client != nil {
			client.Emit("error", gin.H{
				"error": fmt.Sprintf("This action is only allowed during the %s phase (current phase: %s)",
					expectedPhase, snapshot.Phase),
			})
		}
		return false
	}
	return true
}

// ValidateAnswerPhase specifically validates that the game is in the answer phase
func ValidateAnswerPhase(snapshot *redis_models.GameSnapshot, client *socket.Socket) bool {
	return ValidateGamePhase(snapshot, client, game.PhaseAnswer)
}

// ValidateVotePhase specifically validates that the game is in the vote phase
func ValidateVotePhase(snapshot *redis_models.GameSnapshot, client *socket.Socket) bool {
	return ValidateGamePhase(snapshot, client, game.PhaseVote)
}
