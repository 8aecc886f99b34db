package middleware

import (
	"github.com/labstack/echo/v4"
	ctxutil "github.com/octabyte/hostel-gommon/utils/context"
)

// SetRequestIDInContext copies the X-Request-ID header into the request
// context so handlers and their logs can correlate with the caller.
func SetRequestIDInContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(RequestIDHeader)
			if id == "" {
				return next(c)
			}

			c.Set(RequestIDKey, id)
			c.SetRequest(c.Request().WithContext(ctxutil.WithRequestID(c.Request().Context(), id)))
			return next(c)
		}
	}
}
