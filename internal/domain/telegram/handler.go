package telegram

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/viacotur/ast/internal/platform/upstream"
)

type Handler struct {
	bot    Bot
	logger zerolog.Logger
}

func NewHandler(bot Bot, logger zerolog.Logger) *Handler {
	return &Handler{bot: bot, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/telegram-usuario", h.ResolveUser)
	api.GET("/usuario", h.RawUser)
}

// UserResponse is the body of GET /api/telegram-usuario.
type UserResponse struct {
	Success    bool    `json:"success"`
	Nombre     *string `json:"nombre"`
	TelegramID string  `json:"telegram_id"`
}

// ResolveUser maps a Telegram id to the operator's display name.
func (h *Handler) ResolveUser(c echo.Context) error {
	telegramID := strings.TrimSpace(c.QueryParam("telegram_id"))
	if telegramID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Falta el parámetro telegram_id")
	}

	v, err := h.bot.Validate(c.Request().Context(), telegramID)
	if err != nil {
		var se *upstream.StatusError
		if errors.As(err, &se) {
			return echo.NewHTTPError(se.StatusCode, fmt.Sprintf("Error del bot de Telegram: %d", se.StatusCode))
		}
		h.logger.Error().Err(err).Str("telegram_id", telegramID).Msg("validate telegram user")
		return echo.NewHTTPError(http.StatusInternalServerError, "Error al conectar con el bot de Telegram").SetInternal(err)
	}

	return c.JSON(http.StatusOK, UserResponse{
		Success:    true,
		Nombre:     v.Nombre,
		TelegramID: telegramID,
	})
}

// RawUser relays the bot service's JSON reply unchanged.
func (h *Handler) RawUser(c echo.Context) error {
	telegramID := strings.TrimSpace(c.QueryParam("telegram_id"))
	if telegramID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "telegram_id requerido")
	}

	body, err := h.bot.Raw(c.Request().Context(), telegramID)
	if err != nil {
		h.logger.Error().Err(err).Str("telegram_id", telegramID).Msg("fetch telegram user")
		return echo.NewHTTPError(http.StatusInternalServerError, "Error comunicando con el servicio de usuarios").SetInternal(err)
	}

	return c.JSONBlob(http.StatusOK, body)
}
