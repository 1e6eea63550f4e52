// Package middleware contains the middlewares of the server
package middleware

import (
	"strings"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/notestack/auth/config"
	"github.com/notestack/auth/errors"
	"github.com/notestack/auth/token"
)

// Auth contains auth related middlewares
type Auth struct {
	Env *config.Env
}

// Check is a function that is used to check wether the user is authenticated
func (a *Auth) Check(c *fiber.Ctx) error {
	var accessToken string
	authorization := c.Get("Authorization")

	if strings.HasPrefix(authorization, "Bearer ") {
		accessToken = strings.TrimPrefix(authorization, "Bearer ")
	} else {
		return errors.Unauthorized(c)
	}

	accessTokenS := token.Access{
		Env: a.Env,
	}

	claims, err := accessTokenS.Validate(accessToken)
	if err != nil {
		if isExpired := (errors.CheckTokenError{}.Expired(err)); isExpired {
			return errors.TokenExpired(c)
		}

		logger.Error(err)
		return errors.Unauthorized(c)
	}

	c.Locals("id", claims["id"])
	c.Locals("email", claims["email"])

	return c.Next()
}
