package postgres

import (
	"errors"
	"math/rand"
	"time"

	game_constants "Kiadisa/constants/game"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrCodeGenerationExhausted is returned when every generated join code
// collided with an existing session.
var ErrCodeGenerationExhausted = errors.New("could not generate a unique game code")

/*
 * 'GameSession' defines the structure of a KIADISA game session: one
 * play-through from lobby to end, joined via a 6-character code. The phase
 * and round fields are only ever mutated by the phase state machine.
 */
type GameSession struct {
	ID           uint           `gorm:"primaryKey"`
	Code         string         `gorm:"size:6;uniqueIndex;not null"`
	HostUsername string         `gorm:"size:50;not null;index:idx_game_sessions_host"`
	Status       string         `gorm:"size:16;not null;default:'waiting';index:idx_game_sessions_status"`
	Phase        string         `gorm:"size:16;not null;default:'intro'"`
	CurrentRound int            `gorm:"not null;default:1"`
	TotalRounds  int            `gorm:"not null;default:5"`
	Settings     datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Host    User          `gorm:"foreignKey:HostUsername;references:Username"`
	Players []*GamePlayer `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Rounds  []*Round      `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Random join code generation, 6 chars from [A-Z0-9]
func generateGameCode() string {
	b := make([]byte, game_constants.CodeLength)
	for i := range b {
		b[i] = game_constants.CodeCharset[rand.Intn(len(game_constants.CodeCharset))]
	}
	return string(b)
}

// BeforeCreate assigns a join code that is not already in use. Collisions
// are rare with a 36^6 space, so the attempt budget is generous; hitting
// it means something is wrong and the create fails.
func (s *GameSession) BeforeCreate(tx *gorm.DB) (err error) {
	if s.Code != "" {
		return nil
	}
	for attempt := 0; attempt < game_constants.MaxCodeAttempts; attempt++ {
		newCode := generateGameCode()
		var existing GameSession
		if err := tx.Where("code = ?", newCode).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				s.Code = newCode
				return nil
			}
			// Return any unexpected error
			return err
		}
		// Otherwise, loop again to generate a new code
	}
	return ErrCodeGenerationExhausted
}
