package game

import (
	"testing"

	game_constants "Kiadisa/constants/game"
	models "Kiadisa/models/postgres"

	"github.com/stretchr/testify/assert"
)

func TestScoreKikadi(t *testing.T) {
	// Alice wrote answer 1, Bob wrote answer 2, Carol wrote answer 3
	answers := []models.Answer{
		{ID: 1, Username: "alice"},
		{ID: 2, Username: "bob"},
		{ID: 3, Username: "carol"},
	}
	// Bob guesses answer 1 was written by alice (correct), Carol guesses
	// answer 1 was written by bob (wrong), Alice guesses answer 2 was
	// written by bob (correct)
	votes := []models.Vote{
		{Username: "bob", AnswerID: 1, TargetUsername: "alice", VoteType: game_constants.VoteGuess},
		{Username: "carol", AnswerID: 1, TargetUsername: "bob", VoteType: game_constants.VoteGuess},
		{Username: "alice", AnswerID: 2, TargetUsername: "bob", VoteType: game_constants.VoteGuess},
	}

	deltas, err := ComputeRoundScores(game_constants.MiniGameKikadi, answers, votes)
	assert.NoError(t, err)

	assert.Equal(t, map[string]int{"bob": 1, "alice": 1}, deltas)
}

func TestScoreKidivraiUndetectedBluff(t *testing.T) {
	// Alice bluffs and nobody calls it: +2 for alice, nothing for voters
	answers := []models.Answer{
		{ID: 1, Username: "alice", IsBluff: true},
	}
	votes := []models.Vote{
		{Username: "bob", AnswerID: 1, TargetUsername: "alice", VoteType: game_constants.VoteTruth},
		{Username: "carol", AnswerID: 1, TargetUsername: "alice", VoteType: game_constants.VoteTruth},
	}

	deltas, err := ComputeRoundScores(game_constants.MiniGameKidivrai, answers, votes)
	assert.NoError(t, err)

	assert.Equal(t, map[string]int{"alice": 2}, deltas)
}

func TestScoreKidivraiDetectedBluff(t *testing.T) {
	// Alice bluffs and Bob calls it: nothing for alice, +1 for bob
	answers := []models.Answer{
		{ID: 1, Username: "alice", IsBluff: true},
	}
	votes := []models.Vote{
		{Username: "bob", AnswerID: 1, TargetUsername: "alice", VoteType: game_constants.VoteBluff},
		{Username: "carol", AnswerID: 1, TargetUsername: "alice", VoteType: game_constants.VoteTruth},
	}

	deltas, err := ComputeRoundScores(game_constants.MiniGameKidivrai, answers, votes)
	assert.NoError(t, err)

	assert.Equal(t, map[string]int{"bob": 1}, deltas)
}

func TestScoreKidivraiRecognizedTruth(t *testing.T) {
	// Alice tells the truth, two of three voters believe her: alice +1,
	// correct voters +1 each
	answers := []models.Answer{
		{ID: 1, Username: "alice", IsBluff: false},
	}
	votes := []models.Vote{
		{Username: "bob", AnswerID: 1, TargetUsername: "alice", VoteType: game_constants.VoteTruth},
		{Username: "carol", AnswerID: 1, TargetUsername: "alice", VoteType: game_constants.VoteTruth},
		{Username: "dave", AnswerID: 1, TargetUsername: "alice", VoteType: game_constants.VoteBluff},
	}

	deltas, err := ComputeRoundScores(game_constants.MiniGameKidivrai, answers, votes)
	assert.NoError(t, err)

	assert.Equal(t, map[string]int{"alice": 1, "bob": 1, "carol": 1}, deltas)
}

func TestScoreKideja(t *testing.T) {
	// Every targeted guess earns the voter a point, no correctness check
	votes := []models.Vote{
		{Username: "alice", AnswerID: 1, TargetUsername: "bob", VoteType: game_constants.VoteGuess},
		{Username: "bob", AnswerID: 1, TargetUsername: "carol", VoteType: game_constants.VoteGuess},
		{Username: "carol", AnswerID: 1, TargetUsername: "alice", VoteType: game_constants.VoteBluff},
	}

	deltas, err := ComputeRoundScores(game_constants.MiniGameKideja, nil, votes)
	assert.NoError(t, err)

	assert.Equal(t, map[string]int{"alice": 1, "bob": 1}, deltas)
}

func TestScoreKidenous(t *testing.T) {
	// Bob gets two votes, carol one: bob wins +1, his voters get +1 each
	votes := []models.Vote{
		{Username: "alice", AnswerID: 1, TargetUsername: "bob", VoteType: game_constants.VoteGuess},
		{Username: "carol", AnswerID: 1, TargetUsername: "bob", VoteType: game_constants.VoteGuess},
		{Username: "bob", AnswerID: 1, TargetUsername: "carol", VoteType: game_constants.VoteGuess},
	}

	deltas, err := ComputeRoundScores(game_constants.MiniGameKidenous, nil, votes)
	assert.NoError(t, err)

	assert.Equal(t, map[string]int{"bob": 1, "alice": 1, "carol": 1}, deltas)
}

func TestScoreKidenousTieBreaksToFirstTarget(t *testing.T) {
	// One vote each: the target of the earliest vote wins
	votes := []models.Vote{
		{Username: "alice", AnswerID: 1, TargetUsername: "bob", VoteType: game_constants.VoteGuess},
		{Username: "bob", AnswerID: 1, TargetUsername: "alice", VoteType: game_constants.VoteGuess},
	}

	deltas, err := ComputeRoundScores(game_constants.MiniGameKidenous, nil, votes)
	assert.NoError(t, err)

	assert.Equal(t, map[string]int{"bob": 1, "alice": 1}, deltas)
}

func TestScoreKidenousNoVotes(t *testing.T) {
	deltas, err := ComputeRoundScores(game_constants.MiniGameKidenous, nil, nil)
	assert.NoError(t, err)
	assert.Empty(t, deltas)
}

func TestComputeRoundScoresUnknownMiniGame(t *testing.T) {
	_, err := ComputeRoundScores("kipoker", nil, nil)
	assert.ErrorIs(t, err, ErrUnknownMiniGame)
}
