package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte("snake-sim-secret-key-change-in-production") // TODO: Move to env variable

type Claims struct {
	ViewerID string `json:"viewer_id"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateToken issues a control token for a viewer. Commands that steer
// the simulation must present it.
func GenerateToken(viewerID, name string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &Claims{
		ViewerID: viewerID,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a control token and returns the claims.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// VerifyControl checks that the token is valid and was issued to the given
// viewer.
func VerifyControl(tokenString, viewerID string) error {
	if tokenString == "" {
		return errors.New("control token missing")
	}
	claims, err := ValidateToken(tokenString)
	if err != nil {
		return err
	}
	if claims.ViewerID != viewerID {
		return errors.New("control token viewer mismatch")
	}
	return nil
}
