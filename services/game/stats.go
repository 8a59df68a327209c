package game

import (
	"fmt"
	"log"

	game_constants "Kiadisa/constants/game"
	models "Kiadisa/models/postgres"

	"gorm.io/gorm"
)

// FinalizeSessionStats folds a finished session into the players'
// cross-session progression: everyone gets a game played and their
// session xp/coins; the top scorer(s) get a game won. Stats rows are
// created with defaults for players who never had one.
func FinalizeSessionStats(db *gorm.DB, session *models.GameSession) error {
	var players []models.GamePlayer
	if err := db.Where("session_id = ?", session.ID).Find(&players).Error; err != nil {
		return fmt.Errorf("error loading players for session %d: %v", session.ID, err)
	}
	if len(players) == 0 {
		return nil
	}

	topScore := players[0].Score
	for _, p := range players {
		if p.Score > topScore {
			topScore = p.Score
		}
	}

	for _, p := range players {
		stats, err := GetOrCreateUserStats(db, p.Username)
		if err != nil {
			return err
		}

		stats.GamesPlayed++
		if p.Score == topScore {
			stats.GamesWon++
		}
		stats.TotalXP += p.XP
		stats.Coins += p.Coins
		stats.Level = 1 + stats.TotalXP/game_constants.XPPerLevel

		if err := db.Save(stats).Error; err != nil {
			return fmt.Errorf("error saving stats for %s: %v", p.Username, err)
		}
	}

	log.Printf("[STATS] Session %d finalized, %d players updated (top score %d)",
		session.ID, len(players), topScore)
	return nil
}

// GetOrCreateUserStats returns the user's stats row, creating it with
// defaults (level 1, 100 coins) on first access.
func GetOrCreateUserStats(db *gorm.DB, username string) (*models.UserStats, error) {
	var stats models.UserStats
	err := db.Where("username = ?", username).First(&stats).Error
	if err == nil {
		return &stats, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	stats = models.UserStats{
		Username: username,
		Level:    1,
		Coins:    100,
	}
	if err := db.Create(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
