package game

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	game_constants "Kiadisa/constants/game"
	models "Kiadisa/models/postgres"

	"gorm.io/gorm"
)

// CreateRound assigns a question and opens round 'number' for the
// session. The mini-game is taken from the settings rotation. Calling it
// again for the same round number returns the existing row, which keeps a
// retried phase advance from failing on the unique index.
func CreateRound(db *gorm.DB, session *models.GameSession, number int) (*models.Round, error) {
	var existing models.Round
	err := db.Where("session_id = ? AND number = ?", session.ID, number).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	settings, err := ParseSettings(session.Settings)
	if err != nil {
		return nil, err
	}
	miniGame := settings.MiniGameForRound(number)
	if miniGame == "" {
		return nil, fmt.Errorf("%w: session %d has no mini-games configured", ErrInvalidSettings, session.ID)
	}

	question, err := pickQuestion(db, miniGame, settings.Ambiance)
	if err != nil {
		return nil, err
	}

	round := models.Round{
		SessionID:  session.ID,
		Number:     number,
		MiniGame:   miniGame,
		QuestionID: question.ID,
		Status:     game_constants.RoundPlaying,
		StartedAt:  time.Now(),
	}
	if err := db.Create(&round).Error; err != nil {
		return nil, err
	}

	log.Printf("[ROUND] Session %d: round %d opened (%s, question %d)",
		session.ID, number, miniGame, question.ID)
	return &round, nil
}

// pickQuestion draws a random question tagged with the mini-game type,
// preferring the session's ambiance when the pool has matching entries.
func pickQuestion(db *gorm.DB, miniGame string, ambiance string) (*models.Question, error) {
	var questions []models.Question
	if ambiance != "" {
		if err := db.Where("game_type = ? AND ambiance = ?", miniGame, ambiance).
			Find(&questions).Error; err != nil {
			return nil, err
		}
	}
	if len(questions) == 0 {
		if err := db.Where("game_type = ?", miniGame).Find(&questions).Error; err != nil {
			return nil, err
		}
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	question := questions[rand.Intn(len(questions))]
	return &question, nil
}

// CurrentRound loads the round row the session is currently playing.
func CurrentRound(db *gorm.DB, session *models.GameSession) (*models.Round, error) {
	var round models.Round
	err := db.Where("session_id = ? AND number = ?", session.ID, session.CurrentRound).
		First(&round).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	return &round, nil
}

// CompleteCurrentRound closes the session's current round: computes the
// score deltas, applies them and marks the round completed. If scoring
// fails the round stays 'playing' so completion can be retried.
func CompleteCurrentRound(db *gorm.DB, session *models.GameSession) (map[string]int, error) {
	round, err := CurrentRound(db, session)
	if err != nil {
		return nil, err
	}
	return CompleteRound(db, round)
}

// CompleteRound scores one round and marks it completed. Already-completed
// rounds are a no-op with empty deltas, so a conflicting second advance
// cannot double-apply points.
func CompleteRound(db *gorm.DB, round *models.Round) (map[string]int, error) {
	if round.Status == game_constants.RoundCompleted {
		return map[string]int{}, nil
	}

	var answers []models.Answer
	if err := db.Where("round_id = ?", round.ID).Find(&answers).Error; err != nil {
		return nil, fmt.Errorf("%w: loading answers: %v", ErrScoring, err)
	}
	var votes []models.Vote
	if err := db.Where("round_id = ?", round.ID).Order("submitted_at").Find(&votes).Error; err != nil {
		return nil, fmt.Errorf("%w: loading votes: %v", ErrScoring, err)
	}

	deltas, err := ComputeRoundScores(round.MiniGame, answers, votes)
	if err != nil {
		return nil, err
	}

	if err := ApplyScoreDeltas(db, round.SessionID, deltas); err != nil {
		return nil, err
	}

	now := time.Now()
	err = db.Model(&models.Round{}).Where("id = ?", round.ID).
		Updates(map[string]interface{}{
			"status":       game_constants.RoundCompleted,
			"completed_at": now,
		}).Error
	if err != nil {
		return nil, err
	}

	log.Printf("[ROUND] Round %d (%s) completed, %d players scored",
		round.ID, round.MiniGame, len(deltas))
	return deltas, nil
}
