// Package token is used to create and validate the bearer tokens handed out at login
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/notestack/auth/config"
	"github.com/notestack/auth/models"
)

// Access is a struct that is used to perform operations on access tokens
type Access struct {
	Env *config.Env
}

// Create is a function that is used to create the access token for the given user
func (a *Access) Create(user models.User) (token string, err error) {
	now := time.Now().UTC()

	claims := make(jwt.MapClaims)
	claims["email"] = user.Email
	claims["id"] = user.ID.String()
	claims["exp"] = now.Add(a.Env.TokenExpires).Unix()
	claims["iat"] = now.Unix()
	claims["nbf"] = now.Unix()

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.Env.JWTSecret))
	if err != nil {
		return "", err
	}

	return token, nil
}

// Validate is a function that is used to validate the access token
func (a *Access) Validate(token string) (claims jwt.MapClaims, err error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Header["alg"])
		}

		return []byte(a.Env.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("failed to parse the token claims")
	}

	return claims, nil
}
