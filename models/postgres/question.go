package postgres

/*
 * 'Question' is an entry of the question pool. Rounds pick one at random
 * among the questions tagged with their mini-game type.
 */
type Question struct {
	ID       uint   `gorm:"primaryKey"`
	Text     string `gorm:"size:500;not null"`
	GameType string `gorm:"size:16;not null;index:idx_questions_game_type"`
	Category string `gorm:"size:32;default:'general'"`
	Ambiance string `gorm:"size:16;default:'safe'"`
}
