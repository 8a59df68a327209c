package socketio_utils

import (
	"testing"

	redis_models "Kiadisa/models/redis"
	game "Kiadisa/services/game"

	"github.com/stretchr/testify/assert"
)

func TestValidateGamePhase(t *testing.T) {
	snapshot := &redis_models.GameSnapshot{Phase: game.PhaseAnswer}

	assert.True(t, ValidateGamePhase(snapshot, nil, game.PhaseAnswer))
	assert.False(t, ValidateGamePhase(snapshot, nil, game.PhaseVote))
	assert.False(t, ValidateGamePhase(snapshot, nil, game.PhaseReveal))
}

func TestValidateAnswerPhase(t *testing.T) {
	assert.True(t, ValidateAnswerPhase(&redis_models.GameSnapshot{Phase: game.PhaseAnswer}, nil))

	// An answer that arrives after voting opened must be rejected
	assert.False(t, ValidateAnswerPhase(&redis_models.GameSnapshot{Phase: game.PhaseVote}, nil))
	assert.False(t, ValidateAnswerPhase(&redis_models.GameSnapshot{Phase: game.PhaseIntro}, nil))
}

func TestValidateVotePhase(t *testing.T) {
	assert.True(t, ValidateVotePhase(&redis_models.GameSnapshot{Phase: game.PhaseVote}, nil))

	// Votes cast before or after the voting window are rejected
	assert.False(t, ValidateVotePhase(&redis_models.GameSnapshot{Phase: game.PhaseAnswer}, nil))
	assert.False(t, ValidateVotePhase(&redis_models.GameSnapshot{Phase: game.PhaseReveal}, nil))
}
