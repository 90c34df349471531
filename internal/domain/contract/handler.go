package contract

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type Handler struct {
	snapshot Snapshot
	logger   zerolog.Logger
}

func NewHandler(snapshot Snapshot, logger zerolog.Logger) *Handler {
	return &Handler{snapshot: snapshot, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/seguridad/contratos", h.Lookup)
}

func (h *Handler) Lookup(c echo.Context) error {
	responsable := strings.TrimSpace(c.QueryParam("responsable"))
	persona := strings.TrimSpace(c.QueryParam("persona"))
	if responsable == "" && persona == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Se requiere 'responsable' o 'persona' en querystring")
	}

	records, err := h.snapshot.Records(c.Request().Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("read contract snapshot")
		return echo.NewHTTPError(http.StatusInternalServerError, "No se pudo leer el JSON").SetInternal(err)
	}

	return c.JSON(http.StatusOK, Resolve(records, responsable, persona))
}
