// Package auth issues and verifies the HS256 access tokens that identify a
// loyalty profile.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/pchela/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard claims plus the profile id.
type Claims struct {
	jwt.RegisteredClaims
	ProfileID string `json:"pid"`
}

func GenerateToken(profileID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		ProfileID: profileID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ProfileIDFromToken validates tokenString and returns its profile id.
// Expired tokens yield common.ErrTokenExpired, anything else invalid
// common.ErrInvalidToken.
func ProfileIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.ProfileID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.ProfileID, nil
}
