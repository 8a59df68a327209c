package game

import (
	"log"
	"strings"
	"time"

	game_constants "Kiadisa/constants/game"
	models "Kiadisa/models/postgres"
	redis_service "Kiadisa/services/redis"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateGame validates the settings, creates the session (waiting, intro,
// round 1) and registers the creator as host player with zero stats. The
// join code is generated on insert; ErrCodeGeneration surfaces if every
// attempt collided.
func CreateGame(db *gorm.DB, redisClient *redis_service.RedisClient, username string, settings GameSettings) (*models.GameSession, error) {
	if username == "" {
		return nil, ErrNotAuthenticated
	}
	if err := ValidateGameSettings(settings); err != nil {
		return nil, err
	}

	settingsJSON, err := settings.ToJSON()
	if err != nil {
		return nil, err
	}

	session := models.GameSession{
		HostUsername: username,
		Status:       game_constants.StatusWaiting,
		Phase:        PhaseIntro,
		CurrentRound: 1,
		TotalRounds:  settings.TotalRounds,
		Settings:     settingsJSON,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		host := models.GamePlayer{
			SessionID: session.ID,
			Username:  username,
			IsHost:    true,
			JoinedAt:  time.Now(),
		}
		return tx.Create(&host).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[GAME] Session %d created by %s (code %s)", session.ID, username, session.Code)

	if redisClient != nil {
		if err := RefreshGameSnapshot(db, redisClient, &session); err != nil {
			log.Printf("[GAME-ERROR] Error writing snapshot for %s: %v", session.Code, err)
		}
	}
	return &session, nil
}

// FindSessionByCode loads a session by its join code regardless of status.
func FindSessionByCode(db *gorm.DB, code string) (*models.GameSession, error) {
	var session models.GameSession
	err := db.Where("code = ?", strings.ToUpper(code)).First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &session, nil
}

// JoinGame adds the user to the session behind the code. Only sessions
// still in the lobby can be joined. Joining twice is a no-op success:
// there is at most one player row per (session, user).
func JoinGame(db *gorm.DB, redisClient *redis_service.RedisClient, username string, code string) (*models.GameSession, error) {
	if username == "" {
		return nil, ErrNotAuthenticated
	}
	if err := ValidateGameCode(strings.ToUpper(code)); err != nil {
		return nil, err
	}

	var session models.GameSession
	err := db.Where("code = ? AND status = ?", strings.ToUpper(code), game_constants.StatusWaiting).
		First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	var count int64
	err = db.Model(&models.GamePlayer{}).
		Where("session_id = ? AND username = ?", session.ID, username).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		// Idempotent join
		return &session, nil
	}

	player := models.GamePlayer{
		SessionID: session.ID,
		Username:  username,
		JoinedAt:  time.Now(),
	}
	if err := db.Create(&player).Error; err != nil {
		return nil, err
	}

	log.Printf("[GAME] %s joined session %d (code %s)", username, session.ID, session.Code)

	if redisClient != nil {
		if err := RefreshGameSnapshot(db, redisClient, &session); err != nil {
			log.Printf("[GAME-ERROR] Error refreshing snapshot for %s: %v", session.Code, err)
		}
	}
	return &session, nil
}

// StartGame takes a session from the lobby into play: host-only, needs
// enough players, moves status to active and opens round 1.
func StartGame(db *gorm.DB, redisClient *redis_service.RedisClient, code string, username string) (*models.GameSession, error) {
	session, err := FindSessionByCode(db, code)
	if err != nil {
		return nil, err
	}
	if session.HostUsername != username {
		return nil, ErrNotHost
	}
	if session.Status != game_constants.StatusWaiting {
		return nil, ErrGameAlreadyStarted
	}

	settings, err := ParseSettings(session.Settings)
	if err != nil {
		return nil, err
	}

	var playerCount int64
	err = db.Model(&models.GamePlayer{}).
		Where("session_id = ?", session.ID).Count(&playerCount).Error
	if err != nil {
		return nil, err
	}
	if playerCount < 2 || (settings.TwoPlayersOnly && playerCount != 2) {
		return nil, ErrNotEnoughPlayers
	}

	if _, err := CreateRound(db, session, 1); err != nil {
		return nil, err
	}

	err = db.Model(&models.GameSession{}).Where("id = ?", session.ID).
		Update("status", game_constants.StatusActive).Error
	if err != nil {
		return nil, err
	}
	session.Status = game_constants.StatusActive

	log.Printf("[GAME] Session %d started by host %s", session.ID, username)

	if redisClient != nil {
		if err := RefreshGameSnapshot(db, redisClient, session); err != nil {
			log.Printf("[GAME-ERROR] Error refreshing snapshot for %s: %v", session.Code, err)
		}
	}
	return session, nil
}

// SubmitAnswer validates locally (trim, length cap) before any storage
// call, then inserts the answer. A second submission by the same player in
// the same round is denied rather than overwritten.
func SubmitAnswer(db *gorm.DB, roundID uint, username string, content string, isBluff bool) (*models.Answer, error) {
	if username == "" {
		return nil, ErrNotAuthenticated
	}
	trimmed, err := ValidateAnswerContent(content)
	if err != nil {
		return nil, err
	}

	var round models.Round
	if err := db.Where("id = ?", roundID).First(&round).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	if round.Status != game_constants.RoundPlaying {
		return nil, ErrWrongPhase
	}

	var count int64
	err = db.Model(&models.Answer{}).
		Where("round_id = ? AND username = ?", roundID, username).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyAnswered
	}

	answer := models.Answer{
		RoundID:     roundID,
		Username:    username,
		Content:     trimmed,
		IsBluff:     isBluff,
		SubmittedAt: time.Now(),
	}
	if err := db.Create(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

// SubmitVote validates the vote fields locally, then upserts keyed on
// (round, voter): a second vote from the same player in the same round
// replaces the first.
func SubmitVote(db *gorm.DB, roundID uint, username string, targetUsername string, answerID uint, voteType string) (*models.Vote, error) {
	if username == "" {
		return nil, ErrNotAuthenticated
	}
	if err := ValidateVote(targetUsername, answerID, voteType); err != nil {
		return nil, err
	}

	var round models.Round
	if err := db.Where("id = ?", roundID).First(&round).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	if round.Status != game_constants.RoundPlaying {
		return nil, ErrWrongPhase
	}

	vote := models.Vote{
		RoundID:        roundID,
		Username:       username,
		TargetUsername: targetUsername,
		AnswerID:       answerID,
		VoteType:       voteType,
		SubmittedAt:    time.Now(),
	}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "round_id"}, {Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"target_username", "answer_id", "vote_type", "submitted_at",
		}),
	}).Create(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}
