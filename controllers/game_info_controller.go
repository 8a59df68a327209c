package controllers

import (
	"database/sql"
	"net/http"
	"strings"

	"Kiadisa/services/redis"
	"Kiadisa/sync"

	"github.com/gin-gonic/gin"
)

type GameInfoController struct {
	DB          *sql.DB
	RedisClient *redis.RedisClient
	SyncManager *sync.SyncManager
}

// GetGameInfo gets public information about a waiting game with the
// provided join code. Served off the raw connection so the lobby browser
// does not pay the ORM overhead.
func (gc *GameInfoController) GetGameInfo(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	var game_psql struct {
		Code         string `json:"code"`
		HostUsername string `json:"host_name"`
		Status       string `json:"status"`
		TotalRounds  int    `json:"total_rounds"`
	}

	err := gc.DB.QueryRow(`
		SELECT code, host_username, status, total_rounds
		FROM game_sessions
		WHERE code = $1 AND status = 'waiting'
	`, code).Scan(
		&game_psql.Code, &game_psql.HostUsername, &game_psql.Status, &game_psql.TotalRounds,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying database: " + err.Error()})
		}
		return
	}

	var playerCount int
	err = gc.DB.QueryRow(`
		SELECT COUNT(*)
		FROM game_players
		WHERE session_id = (SELECT id FROM game_sessions WHERE code = $1)
	`, code).Scan(&playerCount)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting players: " + err.Error()})
		return
	}

	response := gin.H{
		"code":         game_psql.Code,
		"host_name":    game_psql.HostUsername,
		"status":       game_psql.Status,
		"total_rounds": game_psql.TotalRounds,
		"player_count": playerCount,
	}

	c.JSON(http.StatusOK, response)
}
