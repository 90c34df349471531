package safety

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/viacotur/ast/internal/platform/upstream"
)

type Handler struct {
	submitter Submitter
	logger    zerolog.Logger
}

func NewHandler(submitter Submitter, logger zerolog.Logger) *Handler {
	return &Handler{submitter: submitter, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/guardar-seguridad", h.Submit)
}

// SubmitResponse is the success body. Data is set for ERP forwarding, ID for
// the database backend.
type SubmitResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	ID      string          `json:"id,omitempty"`
}

// bindError keeps 413 from the body limit and reports every other bind
// failure as 500 with the underlying parse error.
func bindError(err error) error {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if he.Code == http.StatusRequestEntityTooLarge {
		return he
	}
	msg := fmt.Sprintf("%v", he.Message)
	if he.Internal != nil {
		msg = he.Internal.Error()
	}
	return echo.NewHTTPError(http.StatusInternalServerError, msg).SetInternal(err)
}

func (h *Handler) Submit(c echo.Context) error {
	var sub Submission
	if c.Request().ContentLength == 0 {
		return echo.NewHTTPError(http.StatusInternalServerError, "empty request body")
	}
	if err := c.Bind(&sub); err != nil {
		return bindError(err)
	}

	res, err := h.submitter.Submit(c.Request().Context(), &sub)
	if err != nil {
		var se *upstream.StatusError
		if errors.As(err, &se) {
			h.logger.Warn().Int("status", se.StatusCode).Str("body", se.Body).Msg("ERP rejected submission")
			return echo.NewHTTPError(se.StatusCode, fmt.Sprintf("Error del servidor Odoo: %d - %s", se.StatusCode, se.Body))
		}
		h.logger.Error().Err(err).Int("employee_id", sub.EmployeeID).Msg("submit AST")
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, SubmitResponse{
		Success: true,
		Data:    res.Data,
		ID:      res.ID,
	})
}
