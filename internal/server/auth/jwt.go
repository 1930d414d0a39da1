// Package auth implements the server's credential primitives: HS256 access
// tokens and bcrypt password hashing.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/evercare/planhub/internal/common"
)

// Claims extends the registered JWT claims with the account identity the
// handlers authorize against.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	UserType string `json:"utype"`
}

// GenerateToken signs an HS256 access token for the user, expiring after
// validityDuration.
func GenerateToken(userID, userType string, secretKey []byte, validityDuration time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(validityDuration)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:   userID,
		UserType: userType,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseToken validates tokenString and returns its claims. Expired or
// malformed tokens map to common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
