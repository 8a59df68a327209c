package utils

import (
	models "Kiadisa/models/postgres"

	"gorm.io/gorm"
)

// IsPlayerInSession reports whether the user has a player row in the session.
func IsPlayerInSession(db *gorm.DB, sessionID uint, username string) (bool, error) {
	var count int64
	err := db.Model(&models.GamePlayer{}).
		Where("session_id = ? AND username = ?", sessionID, username).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// UserExists checks that a registered account backs the username.
func UserExists(db *gorm.DB, username string) error {
	var user models.User
	return db.Where("username = ?", username).First(&user).Error
}
