package middleware

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Socket.io cannot carry the HTTP session cookie through every transport,
// so connections authenticate with a short-lived token issued to
// logged-in users and presented in the handshake auth payload.

const socketTokenTTL = 15 * time.Minute

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// IssueSocketToken signs a short-lived token for the given username.
func IssueSocketToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(socketTokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// VerifySocketToken validates a handshake token and returns the username
// it was issued for.
func VerifySocketToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid socket token")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("socket token has no subject")
	}
	return sub, nil
}
