package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ErrorBody is the envelope every failed request answers with.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func statusOf(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func messageOf(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil && he.Message == nil {
			return he.Internal.Error()
		}
		if s, ok := he.Message.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", he.Message)
	}
	return err.Error()
}

// ErrorHandler replaces echo's default handler so errors render as
// {"success": false, "error": "..."}.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := statusOf(err)
		body := ErrorBody{Success: false, Error: messageOf(err)}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error().Err(writeErr).Msg("write error response")
		}
	}
}
