package employee

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/viacotur/ast/internal/platform/upstream"
)

type Handler struct {
	directory Directory
	logger    zerolog.Logger
}

func NewHandler(directory Directory, logger zerolog.Logger) *Handler {
	return &Handler{directory: directory, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/empleados", h.ListEmployees)
}

// ListEmployees proxies the directory and relays its status on failure.
func (h *Handler) ListEmployees(c echo.Context) error {
	page, err := h.directory.List(c.Request().Context())
	if err != nil {
		var se *upstream.StatusError
		if errors.As(err, &se) {
			return echo.NewHTTPError(se.StatusCode, fmt.Sprintf("Error del servidor externo: %d", se.StatusCode))
		}
		h.logger.Error().Err(err).Msg("list employees")
		return echo.NewHTTPError(http.StatusInternalServerError, "Error al conectar con el servidor de empleados").SetInternal(err)
	}

	return c.JSON(http.StatusOK, NewListing(page))
}
