package game

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// GameSettings is the free-form settings blob chosen at creation time,
// stored as JSONB on the session row.
type GameSettings struct {
	Mode           string   `json:"mode"`
	Ambiance       string   `json:"ambiance"`
	MiniGames      []string `json:"mini_games"`
	TotalRounds    int      `json:"total_rounds"`
	TwoPlayersOnly bool     `json:"two_players_only"`
}

// ToJSON serializes the settings for the session's JSONB column.
func (s GameSettings) ToJSON() (datatypes.JSON, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("error marshaling game settings: %v", err)
	}
	return datatypes.JSON(data), nil
}

// ParseSettings reads the settings blob back from a session row.
func ParseSettings(data datatypes.JSON) (GameSettings, error) {
	var settings GameSettings
	if len(data) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("error unmarshaling game settings: %v", err)
	}
	return settings, nil
}

// MiniGameForRound rotates through the selected mini-games so every round
// is tagged deterministically from the settings.
func (s GameSettings) MiniGameForRound(number int) string {
	if len(s.MiniGames) == 0 || number < 1 {
		return ""
	}
	return s.MiniGames[(number-1)%len(s.MiniGames)]
}
