package postgres

/*
 * 'UserStats' holds the cross-session progression of a player. Rows are
 * created lazily with defaults the first time the stats are read, and
 * updated when a game session ends.
 */
type UserStats struct {
	Username         string `gorm:"primaryKey;size:50;not null"`
	Level            int    `gorm:"default:1"`
	TotalXP          int    `gorm:"default:0"`
	Coins            int    `gorm:"default:100"`
	GamesPlayed      int    `gorm:"default:0"`
	GamesWon         int    `gorm:"default:0"`
	BestStreak       int    `gorm:"default:0"`
	BluffsSuccessful int    `gorm:"default:0"`
	BluffsDetected   int    `gorm:"default:0"`
}
