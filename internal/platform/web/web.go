// Package web serves the checklist form.
package web

import (
	"embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed static/index.html
var static embed.FS

// Page returns the embedded form page.
func Page() []byte {
	b, _ := static.ReadFile("static/index.html")
	return b
}

// RegisterRoutes serves the form at "/".
func RegisterRoutes(e *echo.Echo) {
	page := Page()
	e.GET("/", func(c echo.Context) error {
		return c.HTMLBlob(http.StatusOK, page)
	})
}
