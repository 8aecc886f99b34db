package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/octabyte/hostel-gommon/utils"
	ctxutil "github.com/octabyte/hostel-gommon/utils/context"
)

// SetTokenInContext reads the bearer token from the Authorization header,
// falling back to a cookie of the same name, and stores it without its scheme.
func SetTokenInContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(Authorization)

			if header == "" {
				cookie, err := c.Cookie(Authorization)
				if err == nil {
					header = cookie.Value
				}
			}

			token := utils.TokenFromBearer(header)
			if token == "" {
				return next(c)
			}

			c.Set(TokenKey, token)
			c.SetRequest(c.Request().WithContext(ctxutil.WithToken(c.Request().Context(), token)))
			return next(c)
		}
	}
}

// TokenFromContext returns the token stored by SetTokenInContext.
func TokenFromContext(c echo.Context) string {
	token, _ := c.Get(TokenKey).(string)
	return token
}
