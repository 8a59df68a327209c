package game

import (
	"errors"

	models "Kiadisa/models/postgres"
)

// Domain errors. Every public operation of this package resolves to one of
// these (or a storage error bubbled up from GORM); nothing panics across
// the service boundary.
var (
	ErrInvalidSettings    = errors.New("invalid game settings")
	ErrInvalidCode        = errors.New("invalid game code")
	ErrNotAuthenticated   = errors.New("no authenticated user")
	ErrNotHost            = errors.New("only the host can perform this action")
	ErrGameNotFound       = errors.New("game not found")
	ErrRoundNotFound      = errors.New("round not found")
	ErrNoQuestions        = errors.New("no questions available for this mini-game")
	ErrGameEnded          = errors.New("game already ended")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrNotEnoughPlayers   = errors.New("not enough players to start")
	ErrEmptyAnswer        = errors.New("answer cannot be empty")
	ErrAnswerTooLong      = errors.New("answer exceeds the maximum length")
	ErrAlreadyAnswered    = errors.New("player already answered this round")
	ErrIncompleteVote     = errors.New("vote is missing required fields")
	ErrInvalidVoteType    = errors.New("vote type is not recognized")
	ErrWrongPhase         = errors.New("action not allowed during the current phase")
	ErrPhaseConflict      = errors.New("phase changed concurrently, reload and retry")
	ErrUnknownMiniGame    = errors.New("unknown mini-game type")
	ErrScoring            = errors.New("could not compute or apply round scores")

	// Bubbled up from the join code generator in models/postgres
	ErrCodeGeneration = models.ErrCodeGenerationExhausted
)

// permanentErrors lists failures that must not be retried blindly: bad
// input, gating violations, terminal states, and the phase conflict.
// ErrPhaseConflict is permanent because a retry would re-read the
// winner's new phase and advance it a second time; the caller has to
// reload state and decide again. Storage errors are absent on purpose so
// the retry wrapper keeps retrying them.
var permanentErrors = []error{
	ErrInvalidSettings,
	ErrInvalidCode,
	ErrNotAuthenticated,
	ErrNotHost,
	ErrGameNotFound,
	ErrRoundNotFound,
	ErrNoQuestions,
	ErrGameEnded,
	ErrGameAlreadyStarted,
	ErrNotEnoughPlayers,
	ErrEmptyAnswer,
	ErrAnswerTooLong,
	ErrAlreadyAnswered,
	ErrIncompleteVote,
	ErrInvalidVoteType,
	ErrWrongPhase,
	ErrPhaseConflict,
	ErrUnknownMiniGame,
	ErrCodeGeneration,
}

// IsPermanent reports whether retrying the failed operation is pointless.
func IsPermanent(err error) bool {
	for _, perm := range permanentErrors {
		if errors.Is(err, perm) {
			return true
		}
	}
	return false
}
