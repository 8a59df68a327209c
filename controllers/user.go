package controllers

import (
	"log"
	"net/http"
	"time"

	"Kiadisa/middleware"
	models "Kiadisa/models/postgres"
	game "Kiadisa/services/game"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @Summary Create a new account
// @Description Registers a user with username, email and password.
// @Tags user
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /signup [post]
func SignUp(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username")
		email := c.PostForm("email")
		password := c.PostForm("password")

		if username == "" || email == "" || password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}

		var existing models.User
		if err := db.Where("username = ? OR email = ?", username, email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken"})
			return
		} else if err != gorm.ErrRecordNotFound {
			log.Printf("[AUTH-ERROR] Error checking existing user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[AUTH-ERROR] Error hashing password: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create account"})
			return
		}

		user := models.User{
			Username:     username,
			Email:        email,
			PasswordHash: string(hash),
			MemberSince:  time.Now(),
		}

		if err := db.Create(&user).Error; err != nil {
			log.Printf("[AUTH-ERROR] Error creating user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create account"})
			return
		}

		log.Printf("[AUTH-INFO] New account created: %s", username)
		c.JSON(http.StatusCreated, gin.H{"message": "Account created", "username": username})
	}
}

// @Summary Log in
// @Description Starts a cookie session for a registered user.
// @Tags user
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /login [post]
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		var user models.User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if err := middleware.SetSessionUsername(c, user.Username); err != nil {
			log.Printf("[AUTH-ERROR] Error saving session for %s: %v", username, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not start session"})
			return
		}

		log.Printf("[AUTH-INFO] User logged in: %s", username)
		c.JSON(http.StatusOK, gin.H{"message": "Logged in", "username": user.Username})
	}
}

// @Summary Log out
// @Description Clears the current cookie session.
// @Tags user
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := middleware.ClearSession(c); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not clear session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// @Summary Current user
// @Description Returns the profile of the logged-in user.
// @Tags user
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := middleware.SessionUsername(c)
		if username == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var user models.User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"username":     user.Username,
			"email":        user.Email,
			"member_since": user.MemberSince,
		})
	}
}

// @Summary Player statistics
// @Description Returns lifetime progression for the logged-in user.
// @Tags user
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /auth/stats [get]
func GetUserStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := middleware.SessionUsername(c)
		if username == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		stats, err := game.GetOrCreateUserStats(db, username)
		if err != nil {
			log.Printf("[STATS-ERROR] Error loading stats for %s: %v", username, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"username":          stats.Username,
			"level":             stats.Level,
			"total_xp":          stats.TotalXP,
			"coins":             stats.Coins,
			"games_played":      stats.GamesPlayed,
			"games_won":         stats.GamesWon,
			"best_streak":       stats.BestStreak,
			"bluffs_successful": stats.BluffsSuccessful,
			"bluffs_detected":   stats.BluffsDetected,
		})
	}
}

// @Summary Socket token
// @Description Issues a short-lived JWT used to authenticate the socket.io handshake.
// @Tags user
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/socket-token [get]
func SocketToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := middleware.SessionUsername(c)
		if username == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		token, err := middleware.IssueSocketToken(username)
		if err != nil {
			log.Printf("[AUTH-ERROR] Error issuing socket token for %s: %v", username, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
