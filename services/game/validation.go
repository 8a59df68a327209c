package game

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	game_constants "Kiadisa/constants/game"
)

var validModes = []string{
	game_constants.ModeClassique,
	game_constants.ModeBluff,
	game_constants.ModeDuel,
	game_constants.ModeCouple,
}

var validAmbiances = []string{
	game_constants.AmbianceSafe,
	game_constants.AmbianceIntime,
	game_constants.AmbianceNoFilter,
}

var validMiniGames = []string{
	game_constants.MiniGameKikadi,
	game_constants.MiniGameKidivrai,
	game_constants.MiniGameKideja,
	game_constants.MiniGameKidenous,
}

var validVoteTypes = []string{
	game_constants.VoteGuess,
	game_constants.VoteBluff,
	game_constants.VoteTruth,
}

var gameCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// ValidateGameSettings checks shape and range of game-creation settings
// before any state change. Each violated rule yields its own reason so the
// caller can surface a precise message.
func ValidateGameSettings(settings GameSettings) error {
	if !contains(validModes, settings.Mode) {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSettings, settings.Mode)
	}
	if !contains(validAmbiances, settings.Ambiance) {
		return fmt.Errorf("%w: unknown ambiance %q", ErrInvalidSettings, settings.Ambiance)
	}
	if len(settings.MiniGames) == 0 {
		return fmt.Errorf("%w: at least one mini-game must be selected", ErrInvalidSettings)
	}
	for _, mg := range settings.MiniGames {
		if !contains(validMiniGames, mg) {
			return fmt.Errorf("%w: unknown mini-game %q", ErrInvalidSettings, mg)
		}
	}
	if settings.TotalRounds < game_constants.MinTotalRounds ||
		settings.TotalRounds > game_constants.MaxTotalRounds {
		return fmt.Errorf("%w: total rounds must be between %d and %d",
			ErrInvalidSettings, game_constants.MinTotalRounds, game_constants.MaxTotalRounds)
	}
	if settings.TwoPlayersOnly &&
		settings.Mode != game_constants.ModeDuel && settings.Mode != game_constants.ModeCouple {
		return fmt.Errorf("%w: two-player flag requires duel or couple mode", ErrInvalidSettings)
	}
	return nil
}

// ValidateGameCode accepts only 6-character uppercase alphanumeric codes.
func ValidateGameCode(code string) error {
	if !gameCodePattern.MatchString(code) {
		return ErrInvalidCode
	}
	return nil
}

// ValidateAnswerContent trims the submission and enforces the length
// bounds locally, before any storage call. Returns the trimmed content.
func ValidateAnswerContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrEmptyAnswer
	}
	if utf8.RuneCountInString(trimmed) > game_constants.MaxAnswerLength {
		return "", ErrAnswerTooLong
	}
	return trimmed, nil
}

// ValidateVote checks that all vote fields are present and the type tag is
// one of the recognized values.
func ValidateVote(targetUsername string, answerID uint, voteType string) error {
	if targetUsername == "" || answerID == 0 || voteType == "" {
		return ErrIncompleteVote
	}
	if !contains(validVoteTypes, voteType) {
		return ErrInvalidVoteType
	}
	return nil
}
