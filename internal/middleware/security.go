package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders returns an Echo middleware that adds security headers to a
// response. It is applied per-route to the operational endpoints only:
// proxied upstream responses must stay verbatim, and inbound headers are left
// untouched because the outbound header filter owns the exclusion policy.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Set before the handler writes; headers added after the
			// response is committed never reach the wire.
			c.Response().Header().Set("X-Content-Type-Options", "nosniff")
			c.Response().Header().Set("X-Frame-Options", "DENY")

			return next(c)
		}
	}
}
