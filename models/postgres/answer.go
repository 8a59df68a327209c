package postgres

import "time"

/*
 * 'Answer' is a player's free-text submission for a round. One answer per
 * (round, player); the unique index backs the gating layer's duplicate
 * check. IsBluff is only meaningful for the kidivrai mini-game.
 */
type Answer struct {
	ID          uint      `gorm:"primaryKey"`
	RoundID     uint      `gorm:"not null;index;uniqueIndex:idx_answers_round_player"`
	Username    string    `gorm:"size:50;not null;uniqueIndex:idx_answers_round_player"`
	Content     string    `gorm:"size:500;not null"`
	IsBluff     bool      `gorm:"default:false"`
	SubmittedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Round Round `gorm:"foreignKey:RoundID"`
	User  User  `gorm:"foreignKey:Username;references:Username"`
}
