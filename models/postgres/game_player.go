package postgres

import "time"

/*
 * 'GamePlayer' represents a participant in a game session. It references
 * GameSession and User. Exactly one row per session carries IsHost.
 */
type GamePlayer struct {
	// NOTE: composite primary key definition
	SessionID uint      `gorm:"primaryKey;not null"`
	Username  string    `gorm:"primaryKey;size:50;not null;index"`
	IsHost    bool      `gorm:"default:false"`
	Score     int       `gorm:"default:0"`
	XP        int       `gorm:"default:0"`
	Coins     int       `gorm:"default:0"`
	JoinedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	GameSession GameSession `gorm:"foreignKey:SessionID"`
	User        User        `gorm:"foreignKey:Username;references:Username"`
}
