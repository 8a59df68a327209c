package postgres

import (
	"time"
)

/*
 * 'User' contains the blueprint definition of a registered player account.
 * It references UserStats, GameSession and GamePlayer rows by username.
 */
type User struct {
	Username     string    `gorm:"primaryKey;size:50;not null"`
	Email        string    `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	MemberSince  time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Stats        *UserStats    `gorm:"foreignKey:Username;constraint:OnDelete:CASCADE"`
	HostedGames  []GameSession `gorm:"foreignKey:HostUsername"`
	GamePlayers  []GamePlayer  `gorm:"foreignKey:Username"`
}
