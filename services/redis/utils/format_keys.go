package utils

import "fmt"

// FormatGameSnapshotKey returns the Redis key for a game snapshot.
// Key format: "game:{code}"
func FormatGameSnapshotKey(code string) string {
	return fmt.Sprintf("game:%s", code)
}

// FormatPlayerPresenceKey returns the Redis key for a player's presence.
// Key format: "player:{username}:presence"
func FormatPlayerPresenceKey(username string) string {
	return fmt.Sprintf("player:%s:presence", username)
}
