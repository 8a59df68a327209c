package postgres

import "time"

/*
 * 'Vote' is a player's vote within a round: about a target player, on a
 * specific answer, with a mini-game-dependent type tag. One vote per
 * (round, voter); a later vote replaces the earlier one (upsert keyed on
 * the unique index).
 */
type Vote struct {
	ID             uint      `gorm:"primaryKey"`
	RoundID        uint      `gorm:"not null;index;uniqueIndex:idx_votes_round_player"`
	Username       string    `gorm:"size:50;not null;uniqueIndex:idx_votes_round_player"`
	TargetUsername string    `gorm:"size:50;not null"`
	AnswerID       uint      `gorm:"not null"`
	VoteType       string    `gorm:"size:16;not null"`
	SubmittedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Round  Round  `gorm:"foreignKey:RoundID"`
	Voter  User   `gorm:"foreignKey:Username;references:Username"`
	Answer Answer `gorm:"foreignKey:AnswerID"`
}
