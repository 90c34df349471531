package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	// The form page ships its script and styles inline and may be embedded
	// by the Telegram web client.
	pageCSP = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; " +
		"frame-ancestors 'self' https://web.telegram.org"
	apiCSP = "default-src 'none'; frame-ancestors 'none'"
)

// SecurityHeaders sets hardening headers on every response. API routes get a
// deny-all CSP; everything else gets the page policy.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "no-referrer")
			h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			h.Set("Cache-Control", "no-store")

			if strings.HasPrefix(c.Request().URL.Path, "/api/") {
				h.Set("Content-Security-Policy", apiCSP)
			} else {
				h.Set("Content-Security-Policy", pageCSP)
			}

			return next(c)
		}
	}
}
