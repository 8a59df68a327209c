package sync

import (
	"database/sql"
	"fmt"

	redis_models "Kiadisa/models/redis"
	"Kiadisa/services/redis"
	redis_utils "Kiadisa/services/redis/utils"
)

// SyncManager reconciles the Redis mirror with PostgreSQL. PostgreSQL is
// the source of truth, so reconciliation always flows PostgreSQL -> Redis:
// a stale or missing snapshot is rebuilt from the session row.
type SyncManager struct {
	redisClient *redis.RedisClient
	db          *sql.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(redisClient *redis.RedisClient, db *sql.DB) *SyncManager {
	return &SyncManager{
		redisClient: redisClient,
		db:          db,
	}
}

// SyncGameSnapshot rebuilds the Redis snapshot of the game behind the
// code from the PostgreSQL session row.
func (sm *SyncManager) SyncGameSnapshot(code string) error {
	snapshot := &redis_models.GameSnapshot{Code: code}

	err := sm.db.QueryRow(`
		SELECT id, host_username, status, phase, current_round, total_rounds
		FROM game_sessions
		WHERE code = $1
	`, code).Scan(
		&snapshot.SessionID,
		&snapshot.HostUsername,
		&snapshot.Status,
		&snapshot.Phase,
		&snapshot.CurrentRound,
		&snapshot.TotalRounds,
	)
	if err != nil {
		return fmt.Errorf("error loading session from PostgreSQL: %v", err)
	}

	err = sm.db.QueryRow(`
		SELECT COUNT(*)
		FROM game_players
		WHERE session_id = $1
	`, snapshot.SessionID).Scan(&snapshot.PlayerCount)
	if err != nil {
		return fmt.Errorf("error counting players: %v", err)
	}

	err = sm.db.QueryRow(`
		SELECT id, mini_game
		FROM rounds
		WHERE session_id = $1 AND number = $2
	`, snapshot.SessionID, snapshot.CurrentRound).Scan(&snapshot.RoundID, &snapshot.MiniGame)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("error loading current round: %v", err)
	}

	if err := sm.redisClient.SaveGameSnapshot(snapshot); err != nil {
		return fmt.Errorf("error writing snapshot to Redis: %v", err)
	}
	return nil
}

// SyncAllActiveGames rebuilds snapshots for every session still waiting
// or active, used once at startup to recover from a Redis restart.
func (sm *SyncManager) SyncAllActiveGames() error {
	rows, err := sm.db.Query(`
		SELECT code
		FROM game_sessions
		WHERE status IN ('waiting', 'active')
	`)
	if err != nil {
		return fmt.Errorf("error listing active sessions: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return fmt.Errorf("error scanning session code: %v", err)
		}
		if err := sm.SyncGameSnapshot(code); err != nil {
			return err
		}
	}
	return rows.Err()
}

// CleanupGameData removes the Redis keys of an ended game: its snapshot
// and the presence entries of every player that was in it.
func (sm *SyncManager) CleanupGameData(code string) error {
	keys, err := sm.gameRedisKeys(code)
	if err != nil {
		return err
	}
	return sm.redisClient.CleanupKeys(keys)
}

// gameRedisKeys lists every Redis key owned by the game behind the code:
// its snapshot key plus one presence key per player.
func (sm *SyncManager) gameRedisKeys(code string) ([]string, error) {
	rows, err := sm.db.Query(`
		SELECT gp.username
		FROM game_players gp
		JOIN game_sessions gs ON gs.id = gp.session_id
		WHERE gs.code = $1
	`, code)
	if err != nil {
		return nil, fmt.Errorf("error listing game players: %v", err)
	}
	defer rows.Close()

	keys := []string{redis_utils.FormatGameSnapshotKey(code)}
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("error scanning player username: %v", err)
		}
		keys = append(keys, redis_utils.FormatPlayerPresenceKey(username))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
