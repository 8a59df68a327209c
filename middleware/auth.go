package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session key under which the authenticated username is stored
const userkey = "Username"

// AuthRequired is a simple middleware to check the session.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	user := session.Get(userkey)
	if user == nil {
		// Abort the request with the appropriate error code
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	// Continue down the chain to handler etc
	c.Next()
}

// SessionUsername returns the username stored in the request's session,
// empty when the caller is not logged in.
func SessionUsername(c *gin.Context) string {
	session := sessions.Default(c)
	user := session.Get(userkey)
	if user == nil {
		return ""
	}
	username, ok := user.(string)
	if !ok {
		return ""
	}
	return username
}

// SetSessionUsername stores the username in the session after login.
func SetSessionUsername(c *gin.Context, username string) error {
	session := sessions.Default(c)
	session.Set(userkey, username)
	return session.Save()
}

// ClearSession deletes the stored username on logout.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Delete(userkey)
	return session.Save()
}
