package game

import (
	"log"

	game_constants "Kiadisa/constants/game"
	models "Kiadisa/models/postgres"
	redis_service "Kiadisa/services/redis"
	"Kiadisa/sync"

	"gorm.io/gorm"
)

// Phases of a round, in the fixed order they are visited. After
// PhaseResults the session wraps to PhaseIntro of the next round, or
// reaches the terminal PhaseEnded after the last round.
const (
	PhaseIntro   = "intro"
	PhaseAnswer  = "answer"
	PhaseVote    = "vote"
	PhaseReveal  = "reveal"
	PhaseResults = "results"
	PhaseEnded   = "ended"
)

var phaseOrder = []string{PhaseIntro, PhaseAnswer, PhaseVote, PhaseReveal, PhaseResults}

// NextPhase computes the phase and round that follow the given state.
// Pure; persistence and gating live in AdvancePhase.
func NextPhase(phase string, round int, totalRounds int) (string, int) {
	index := -1
	for i, p := range phaseOrder {
		if p == phase {
			index = i
			break
		}
	}
	// Unknown phase values restart the round, same as the source treating
	// a missing phase as 'intro'
	if index == -1 {
		return phaseOrder[0], round
	}

	if index == len(phaseOrder)-1 {
		if round < totalRounds {
			return PhaseIntro, round + 1
		}
		return PhaseEnded, round
	}
	return phaseOrder[index+1], round
}

// AdvanceResult is what a successful phase advance reports back: the new
// state plus the score deltas when leaving 'results' closed a round.
type AdvanceResult struct {
	Phase       string
	Round       int
	RoundScored bool
	Deltas      map[string]int
	GameEnded   bool
}

// AdvancePhase moves a session to its next phase. Host-gated: any caller
// other than the session host fails with ErrNotHost and nothing is
// mutated. The phase write carries an expected-phase guard so two
// concurrent advances cannot skip a phase; the loser gets
// ErrPhaseConflict and should reload.
func AdvancePhase(db *gorm.DB, redisClient *redis_service.RedisClient, sessionID uint, username string) (*AdvanceResult, error) {
	var session models.GameSession
	if err := db.Where("id = ?", sessionID).First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if session.Phase == PhaseEnded || session.Status == game_constants.StatusEnded {
		return nil, ErrGameEnded
	}
	if session.HostUsername != username {
		return nil, ErrNotHost
	}

	nextPhase, nextRound := NextPhase(session.Phase, session.CurrentRound, session.TotalRounds)

	result := &AdvanceResult{Phase: nextPhase, Round: nextRound}

	// Leaving 'results' closes the current round: score it first, and do
	// not advance if scoring fails
	if session.Phase == PhaseResults {
		deltas, err := CompleteCurrentRound(db, &session)
		if err != nil {
			return nil, err
		}
		result.RoundScored = true
		result.Deltas = deltas
	}

	updates := map[string]interface{}{"phase": nextPhase}
	if nextRound != session.CurrentRound {
		updates["current_round"] = nextRound
	}
	if nextPhase == PhaseEnded {
		updates["status"] = game_constants.StatusEnded
	}

	// Guard on the phase we read: first writer wins, the other advance
	// observes zero rows and backs off
	update := db.Model(&models.GameSession{}).
		Where("id = ? AND phase = ?", session.ID, session.Phase).
		Updates(updates)
	if update.Error != nil {
		return nil, update.Error
	}
	if update.RowsAffected == 0 {
		return nil, ErrPhaseConflict
	}

	log.Printf("[PHASE] Session %d: %s -> %s (round %d/%d)",
		session.ID, session.Phase, nextPhase, nextRound, session.TotalRounds)

	session.Phase = nextPhase
	session.CurrentRound = nextRound

	switch nextPhase {
	case PhaseIntro:
		// A fresh round begins: assign its question now
		if _, err := CreateRound(db, &session, nextRound); err != nil {
			return nil, err
		}
	case PhaseEnded:
		result.GameEnded = true
		session.Status = game_constants.StatusEnded
		if err := FinalizeSessionStats(db, &session); err != nil {
			log.Printf("[PHASE-ERROR] Error finalizing stats for session %d: %v", session.ID, err)
		}
	}

	if redisClient != nil {
		if nextPhase == PhaseEnded {
			// The game is over: drop its snapshot and every player's
			// presence key, not just the snapshot
			if sqlDB, err := db.DB(); err != nil {
				log.Printf("[PHASE-ERROR] Error getting sql.DB for cleanup of %s: %v", session.Code, err)
			} else if err := sync.NewSyncManager(redisClient, sqlDB).CleanupGameData(session.Code); err != nil {
				log.Printf("[PHASE-ERROR] Error cleaning Redis data for %s: %v", session.Code, err)
			}
		} else if err := RefreshGameSnapshot(db, redisClient, &session); err != nil {
			log.Printf("[PHASE-ERROR] Error refreshing snapshot for %s: %v", session.Code, err)
		}
	}

	return result, nil
}
