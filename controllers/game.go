package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"Kiadisa/middleware"
	models "Kiadisa/models/postgres"
	game "Kiadisa/services/game"
	redisclient "Kiadisa/services/redis"
	"Kiadisa/services/retry"
	socketio_types "Kiadisa/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// statusForGameError maps domain sentinel errors to HTTP statuses. Anything
// unmapped is treated as an internal error.
func statusForGameError(err error) int {
	switch {
	case errors.Is(err, game.ErrInvalidSettings),
		errors.Is(err, game.ErrInvalidCode),
		errors.Is(err, game.ErrEmptyAnswer),
		errors.Is(err, game.ErrAnswerTooLong),
		errors.Is(err, game.ErrIncompleteVote),
		errors.Is(err, game.ErrInvalidVoteType),
		errors.Is(err, game.ErrNotEnoughPlayers):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, game.ErrNotHost):
		return http.StatusForbidden
	case errors.Is(err, game.ErrGameNotFound), errors.Is(err, game.ErrRoundNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrGameAlreadyStarted),
		errors.Is(err, game.ErrAlreadyAnswered),
		errors.Is(err, game.ErrWrongPhase),
		errors.Is(err, game.ErrPhaseConflict),
		errors.Is(err, game.ErrGameEnded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Transient storage failures get two more tries; domain errors are
// permanent and fail immediately.
func withGameRetry[T any](operation func() (T, error)) retry.Result[T] {
	return retry.ExecuteWithRetry(operation, retry.Options{
		MaxRetries:  2,
		RetryDelay:  200 * time.Millisecond,
		IsPermanent: game.IsPermanent,
	})
}

type createGameRequest struct {
	Mode           string   `json:"mode" binding:"required"`
	Ambiance       string   `json:"ambiance" binding:"required"`
	MiniGames      []string `json:"mini_games" binding:"required"`
	TotalRounds    int      `json:"total_rounds" binding:"required"`
	TwoPlayersOnly bool     `json:"two_players_only"`
}

// @Summary Create a game
// @Description Creates a game session with the caller as host and returns its join code.
// @Tags game
// @Accept json
// @Produce json
// @Param settings body createGameRequest true "Game settings"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/games [post]
func CreateGame(db *gorm.DB, redisClient *redisclient.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := middleware.SessionUsername(c)
		if username == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var req createGameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		settings := game.GameSettings{
			Mode:           req.Mode,
			Ambiance:       req.Ambiance,
			MiniGames:      req.MiniGames,
			TotalRounds:    req.TotalRounds,
			TwoPlayersOnly: req.TwoPlayersOnly,
		}

		result := withGameRetry(func() (*models.GameSession, error) {
			return game.CreateGame(db, redisClient, username, settings)
		})
		if !result.Success {
			log.Printf("[GAME-ERROR] Error creating game for %s: %v", username, result.Error)
			c.JSON(statusForGameError(result.Error), gin.H{"error": result.Error.Error()})
			return
		}

		session := result.Data
		log.Printf("[GAME-INFO] Game %s created by %s", session.Code, username)
		c.JSON(http.StatusCreated, gin.H{
			"code":         session.Code,
			"session_id":   session.ID,
			"host":         session.HostUsername,
			"status":       session.Status,
			"total_rounds": session.TotalRounds,
		})
	}
}

// @Summary Join a game
// @Description Adds the caller to the waiting game identified by its join code.
// @Tags game
// @Produce json
// @Param code path string true "Join code"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/games/{code}/join [post]
func JoinGame(db *gorm.DB, redisClient *redisclient.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := middleware.SessionUsername(c)
		if username == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		code := c.Param("code")

		result := withGameRetry(func() (*models.GameSession, error) {
			return game.JoinGame(db, redisClient, username, code)
		})
		if !result.Success {
			c.JSON(statusForGameError(result.Error), gin.H{"error": result.Error.Error()})
			return
		}

		session := result.Data
		log.Printf("[GAME-INFO] %s joined game %s", username, session.Code)
		c.JSON(http.StatusOK, gin.H{
			"code":       session.Code,
			"session_id": session.ID,
			"status":     session.Status,
		})
	}
}

// @Summary Start a game
// @Description Host starts the game, creating round 1 at the intro phase.
// @Tags game
// @Produce json
// @Param code path string true "Join code"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/games/{code}/start [post]
func StartGame(db *gorm.DB, redisClient *redisclient.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := middleware.SessionUsername(c)
		if username == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		code := c.Param("code")

		result := withGameRetry(func() (*models.GameSession, error) {
			return game.StartGame(db, redisClient, code, username)
		})
		if !result.Success {
			c.JSON(statusForGameError(result.Error), gin.H{"error": result.Error.Error()})
			return
		}

		session := result.Data
		log.Printf("[GAME-INFO] Game %s started by host %s", session.Code, username)
		c.JSON(http.StatusOK, gin.H{
			"code":          session.Code,
			"status":        session.Status,
			"phase":         session.Phase,
			"current_round": session.CurrentRound,
		})
	}
}

// @Summary Advance the phase
// @Description Host-only. Moves the game to the next phase, scoring the round when leaving results.
// @Tags game
// @Produce json
// @Param code path string true "Join code"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/games/{code}/advance [post]
func AdvancePhase(db *gorm.DB, redisClient *redisclient.RedisClient, sio *socketio_types.SocketServer) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := middleware.SessionUsername(c)
		if username == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		code := c.Param("code")

		session, err := game.FindSessionByCode(db, code)
		if err != nil {
			c.JSON(statusForGameError(err), gin.H{"error": err.Error()})
			return
		}

		result := withGameRetry(func() (*game.AdvanceResult, error) {
			return game.AdvancePhase(db, redisClient, session.ID, username)
		})
		if !result.Success {
			c.JSON(statusForGameError(result.Error), gin.H{"error": result.Error.Error()})
			return
		}

		adv := result.Data
		if sio != nil {
			sio.BroadcastToGame(code, "phase_changed", gin.H{
				"phase": adv.Phase,
				"round": adv.Round,
			})
			if adv.RoundScored {
				sio.BroadcastToGame(code, "round_scored", gin.H{"deltas": adv.Deltas})
			}
			if adv.GameEnded {
				sio.BroadcastToGame(code, "game_ended", gin.H{"code": code})
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"phase":        adv.Phase,
			"round":        adv.Round,
			"round_scored": adv.RoundScored,
			"deltas":       adv.Deltas,
			"game_ended":   adv.GameEnded,
		})
	}
}

type submitAnswerRequest struct {
	Content string `json:"content" binding:"required"`
	IsBluff bool   `json:"is_bluff"`
}

// @Summary Submit an answer
// @Description Records the caller's answer for the current round. One answer per player per round.
// @Tags game
// @Accept json
// @Produce json
// @Param code path string true "Join code"
// @Param answer body submitAnswerRequest true "Answer"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/games/{code}/answers [post]
func SubmitAnswer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := middleware.SessionUsername(c)
		if username == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		code := c.Param("code")

		var req submitAnswerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		session, err := game.FindSessionByCode(db, code)
		if err != nil {
			c.JSON(statusForGameError(err), gin.H{"error": err.Error()})
			return
		}
		round, err := game.CurrentRound(db, session)
		if err != nil {
			c.JSON(statusForGameError(err), gin.H{"error": err.Error()})
			return
		}

		result := withGameRetry(func() (*models.Answer, error) {
			return game.SubmitAnswer(db, round.ID, username, req.Content, req.IsBluff)
		})
		if !result.Success {
			c.JSON(statusForGameError(result.Error), gin.H{"error": result.Error.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"answer_id": result.Data.ID,
			"round_id":  result.Data.RoundID,
		})
	}
}

type submitVoteRequest struct {
	TargetUsername string `json:"target_username"`
	AnswerID       uint   `json:"answer_id"`
	VoteType       string `json:"vote_type" binding:"required"`
}

// @Summary Submit a vote
// @Description Records the caller's vote for the current round. Re-voting replaces the previous vote.
// @Tags game
// @Accept json
// @Produce json
// @Param code path string true "Join code"
// @Param vote body submitVoteRequest true "Vote"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/games/{code}/votes [post]
func SubmitVote(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := middleware.SessionUsername(c)
		if username == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		code := c.Param("code")

		var req submitVoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		session, err := game.FindSessionByCode(db, code)
		if err != nil {
			c.JSON(statusForGameError(err), gin.H{"error": err.Error()})
			return
		}
		round, err := game.CurrentRound(db, session)
		if err != nil {
			c.JSON(statusForGameError(err), gin.H{"error": err.Error()})
			return
		}

		result := withGameRetry(func() (*models.Vote, error) {
			return game.SubmitVote(db, round.ID, username, req.TargetUsername, req.AnswerID, req.VoteType)
		})
		if !result.Success {
			c.JSON(statusForGameError(result.Error), gin.H{"error": result.Error.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"vote_id":  result.Data.ID,
			"round_id": result.Data.RoundID,
		})
	}
}

// @Summary Game scoreboard
// @Description Returns per-player scores for the session, ordered best first.
// @Tags game
// @Produce json
// @Param code path string true "Join code"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /auth/games/{code}/scores [get]
func GetScores(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")

		session, err := game.FindSessionByCode(db, code)
		if err != nil {
			c.JSON(statusForGameError(err), gin.H{"error": err.Error()})
			return
		}

		var players []models.GamePlayer
		if err := db.Where("session_id = ?", session.ID).
			Order("score DESC, username ASC").
			Find(&players).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load scores"})
			return
		}

		scores := make([]gin.H, 0, len(players))
		for _, p := range players {
			scores = append(scores, gin.H{
				"username": p.Username,
				"score":    p.Score,
				"xp":       p.XP,
				"coins":    p.Coins,
				"is_host":  p.IsHost,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"code":   session.Code,
			"status": session.Status,
			"round":  strconv.Itoa(session.CurrentRound) + "/" + strconv.Itoa(session.TotalRounds),
			"scores": scores,
		})
	}
}
