// Package token issues and verifies the bearer credentials carried on every
// authenticated request: HS256-signed JWTs embedding the subject id and role.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultValidity matches the 1-hour expiry the web client expects.
const DefaultValidity = time.Hour

var ErrInvalidToken = errors.New("token: invalid or expired")

// Claims embeds the registered claims plus the subject's id and role.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Role   string `json:"role"`
}

// Generate signs a token for the given subject with the provided validity.
func Generate(userID, role string, secret []byte, validity time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		Role:   role,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify parses and validates a token string, returning its claims. Any
// signature, expiry, or signing-method problem yields ErrInvalidToken.
func Verify(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
