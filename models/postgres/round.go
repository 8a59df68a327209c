package postgres

import "time"

/*
 * 'Round' is one iteration of a mini-game within a session. Created when a
 * session enters the answering part of a new round, completed once scoring
 * has run.
 */
type Round struct {
	ID          uint       `gorm:"primaryKey"`
	SessionID   uint       `gorm:"not null;index;uniqueIndex:idx_rounds_session_number"`
	Number      int        `gorm:"not null;uniqueIndex:idx_rounds_session_number"`
	MiniGame    string     `gorm:"size:16;not null"`
	QuestionID  uint       `gorm:"not null"`
	Status      string     `gorm:"size:16;not null;default:'playing'"`
	StartedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP"`
	CompletedAt *time.Time

	// Relationships
	GameSession GameSession `gorm:"foreignKey:SessionID"`
	Question    Question    `gorm:"foreignKey:QuestionID"`
	Answers     []*Answer   `gorm:"foreignKey:RoundID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Votes       []*Vote     `gorm:"foreignKey:RoundID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
