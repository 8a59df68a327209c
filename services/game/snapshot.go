package game

import (
	models "Kiadisa/models/postgres"
	redis_models "Kiadisa/models/redis"
	redis_service "Kiadisa/services/redis"

	"gorm.io/gorm"
)

// RefreshGameSnapshot rebuilds the Redis mirror of a session from
// PostgreSQL. Called after every mutation that changes what the socket
// handlers validate against (phase, round, player count).
func RefreshGameSnapshot(db *gorm.DB, redisClient *redis_service.RedisClient, session *models.GameSession) error {
	var playerCount int64
	if err := db.Model(&models.GamePlayer{}).
		Where("session_id = ?", session.ID).Count(&playerCount).Error; err != nil {
		return err
	}

	snapshot := &redis_models.GameSnapshot{
		SessionID:    session.ID,
		Code:         session.Code,
		HostUsername: session.HostUsername,
		Status:       session.Status,
		Phase:        session.Phase,
		CurrentRound: session.CurrentRound,
		TotalRounds:  session.TotalRounds,
		PlayerCount:  int(playerCount),
	}

	var round models.Round
	err := db.Where("session_id = ? AND number = ?", session.ID, session.CurrentRound).
		First(&round).Error
	if err == nil {
		snapshot.RoundID = round.ID
		snapshot.MiniGame = round.MiniGame
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	return redisClient.SaveGameSnapshot(snapshot)
}
