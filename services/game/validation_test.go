package game

import (
	"strings"
	"testing"

	game_constants "Kiadisa/constants/game"

	"github.com/stretchr/testify/assert"
)

func validSettings() GameSettings {
	return GameSettings{
		Mode:        game_constants.ModeClassique,
		Ambiance:    game_constants.AmbianceSafe,
		MiniGames:   []string{game_constants.MiniGameKikadi, game_constants.MiniGameKidivrai},
		TotalRounds: 5,
	}
}

func TestValidateGameSettings(t *testing.T) {
	assert.NoError(t, ValidateGameSettings(validSettings()))

	cases := []struct {
		name   string
		mutate func(*GameSettings)
	}{
		{"unknown mode", func(s *GameSettings) { s.Mode = "battle" }},
		{"unknown ambiance", func(s *GameSettings) { s.Ambiance = "spicy" }},
		{"no mini-games", func(s *GameSettings) { s.MiniGames = nil }},
		{"unknown mini-game", func(s *GameSettings) { s.MiniGames = []string{"kipoker"} }},
		{"rounds below minimum", func(s *GameSettings) { s.TotalRounds = 2 }},
		{"rounds above maximum", func(s *GameSettings) { s.TotalRounds = 16 }},
		{"two players in classique", func(s *GameSettings) { s.TwoPlayersOnly = true }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			settings := validSettings()
			tc.mutate(&settings)
			assert.ErrorIs(t, ValidateGameSettings(settings), ErrInvalidSettings)
		})
	}
}

func TestValidateGameSettingsTwoPlayersModes(t *testing.T) {
	// Two-player flag is only coherent with duel and couple modes
	for _, mode := range []string{game_constants.ModeDuel, game_constants.ModeCouple} {
		settings := validSettings()
		settings.Mode = mode
		settings.TwoPlayersOnly = true
		assert.NoError(t, ValidateGameSettings(settings), "mode %s", mode)
	}
}

func TestValidateGameCode(t *testing.T) {
	assert.NoError(t, ValidateGameCode("AB12CD"))
	assert.NoError(t, ValidateGameCode("ZZZZZZ"))

	for _, code := range []string{"", "AB12C", "AB12CDE", "ab12cd", "AB-2CD", "AB12C "} {
		assert.ErrorIs(t, ValidateGameCode(code), ErrInvalidCode, "code %q", code)
	}
}

func TestValidateAnswerContent(t *testing.T) {
	trimmed, err := ValidateAnswerContent("  my answer  ")
	assert.NoError(t, err)
	assert.Equal(t, "my answer", trimmed)

	_, err = ValidateAnswerContent("   ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	// Exactly at the cap is fine, one over is not
	atCap := strings.Repeat("a", game_constants.MaxAnswerLength)
	_, err = ValidateAnswerContent(atCap)
	assert.NoError(t, err)

	_, err = ValidateAnswerContent(atCap + "a")
	assert.ErrorIs(t, err, ErrAnswerTooLong)

	// The cap counts characters, not bytes: a full answer of two-byte
	// runes is still within bounds
	accented := strings.Repeat("é", game_constants.MaxAnswerLength)
	trimmed, err = ValidateAnswerContent(accented)
	assert.NoError(t, err)
	assert.Equal(t, accented, trimmed)

	_, err = ValidateAnswerContent(accented + "é")
	assert.ErrorIs(t, err, ErrAnswerTooLong)
}

func TestValidateVote(t *testing.T) {
	assert.NoError(t, ValidateVote("alice", 3, game_constants.VoteGuess))

	assert.ErrorIs(t, ValidateVote("", 3, game_constants.VoteGuess), ErrIncompleteVote)
	assert.ErrorIs(t, ValidateVote("alice", 0, game_constants.VoteGuess), ErrIncompleteVote)
	assert.ErrorIs(t, ValidateVote("alice", 3, ""), ErrIncompleteVote)
	assert.ErrorIs(t, ValidateVote("alice", 3, "downvote"), ErrInvalidVoteType)
}

func TestMiniGameForRoundRotation(t *testing.T) {
	settings := validSettings()
	// Two mini-games rotate over five rounds
	assert.Equal(t, game_constants.MiniGameKikadi, settings.MiniGameForRound(1))
	assert.Equal(t, game_constants.MiniGameKidivrai, settings.MiniGameForRound(2))
	assert.Equal(t, game_constants.MiniGameKikadi, settings.MiniGameForRound(3))
	assert.Equal(t, game_constants.MiniGameKidivrai, settings.MiniGameForRound(4))
	assert.Equal(t, game_constants.MiniGameKikadi, settings.MiniGameForRound(5))

	empty := GameSettings{}
	assert.Equal(t, "", empty.MiniGameForRound(1))
}
