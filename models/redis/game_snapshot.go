package redis

// GameSnapshot is the volatile mirror of a game session kept in Redis.
// Socket handlers read it to validate the current phase without hitting
// PostgreSQL on every event; PostgreSQL stays the source of truth.
type GameSnapshot struct {
	SessionID    uint   `json:"session_id"`   // Matches game_sessions.id
	Code         string `json:"code"`         // Matches game_sessions.code
	HostUsername string `json:"host"`         // Matches game_sessions.host_username
	Status       string `json:"status"`       // Matches game_sessions.status
	Phase        string `json:"phase"`        // Matches game_sessions.phase
	CurrentRound int    `json:"current_round"`
	TotalRounds  int    `json:"total_rounds"`
	RoundID      uint   `json:"round_id"`     // Current round row, 0 before the first round
	MiniGame     string `json:"mini_game"`    // Current round's mini-game tag
	PlayerCount  int    `json:"player_count"`
}
