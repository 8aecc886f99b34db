package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/octabyte/hostel-gommon/models"
)

// SetClaimsFromJWTToken decodes the token stored by SetTokenInContext and
// keeps its claims on the echo context. Signatures are not checked, so it must
// only be mounted where the claims are informational.
func SetClaimsFromJWTToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromContext(c)
			if token == "" {
				return next(c)
			}

			claims, err := models.Session{Token: token}.Claims()
			if err != nil {
				log.Debugf("token is not a JWT: %v", err)
				return next(c)
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

func ClaimsFromContext(c echo.Context) (*models.TokenClaims, bool) {
	claims, ok := c.Get(ClaimsKey).(*models.TokenClaims)
	return claims, ok
}
