package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	redis_models "Kiadisa/models/redis"
	redis_utils "Kiadisa/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// Snapshots and presence entries expire on their own; sessions never live
// this long, the TTL only keeps abandoned games from leaking keys.
const snapshotTTL = 24 * time.Hour

// RedisClient handles Redis operations
type RedisClient struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(addr string, db int) *RedisClient {
	var client *redis.Client
	if addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}
	return &RedisClient{
		Client: client,
		Ctx:    context.Background(),
	}
}

// SaveGameSnapshot stores a session's volatile mirror in Redis.
// Key format: "game:{code}"
func (rc *RedisClient) SaveGameSnapshot(snapshot *redis_models.GameSnapshot) error {
	key := redis_utils.FormatGameSnapshotKey(snapshot.Code)
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("error marshaling game snapshot: %v", err)
	}
	return rc.Client.Set(rc.Ctx, key, data, snapshotTTL).Err()
}

// GetGameSnapshot retrieves a session's volatile mirror from Redis.
// Returns nil without error when the key does not exist.
func (rc *RedisClient) GetGameSnapshot(code string) (*redis_models.GameSnapshot, error) {
	key := redis_utils.FormatGameSnapshotKey(code)
	data, err := rc.Client.Get(rc.Ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting game snapshot: %v", err)
	}

	var snapshot redis_models.GameSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("error unmarshaling game snapshot: %v", err)
	}
	return &snapshot, nil
}

// SavePlayerPresence stores a player's connection state.
// Key format: "player:{username}:presence"
func (rc *RedisClient) SavePlayerPresence(presence *redis_models.PlayerPresence) error {
	key := redis_utils.FormatPlayerPresenceKey(presence.Username)
	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("error marshaling player presence: %v", err)
	}
	return rc.Client.Set(rc.Ctx, key, data, snapshotTTL).Err()
}

// GetPlayerPresence retrieves a player's connection state, nil when the
// player has no presence entry.
func (rc *RedisClient) GetPlayerPresence(username string) (*redis_models.PlayerPresence, error) {
	key := redis_utils.FormatPlayerPresenceKey(username)
	data, err := rc.Client.Get(rc.Ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting player presence: %v", err)
	}

	var presence redis_models.PlayerPresence
	if err := json.Unmarshal(data, &presence); err != nil {
		return nil, fmt.Errorf("error unmarshaling player presence: %v", err)
	}
	return &presence, nil
}

// DeletePlayerPresence removes a player's presence entry on disconnect.
func (rc *RedisClient) DeletePlayerPresence(username string) error {
	key := redis_utils.FormatPlayerPresenceKey(username)
	if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting player presence: %v", err)
	}
	return nil
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
