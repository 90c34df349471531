package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/viacotur/ast/internal/platform/upstream"
)

// Validation is the bot service's answer for a Telegram user id.
type Validation struct {
	Nombre *string `json:"nombre"`
	Error  string  `json:"error,omitempty"`
}

// Bot resolves Telegram user ids through the bot service's
// GET /validar_usuario endpoint.
type Bot interface {
	// Validate fails with *upstream.StatusError on a non-2xx reply.
	Validate(ctx context.Context, telegramID string) (*Validation, error)
	// Raw returns the reply body whatever its status, as long as it is JSON.
	Raw(ctx context.Context, telegramID string) (json.RawMessage, error)
}

var ErrNotJSON = errors.New("bot service returned a non-JSON body")

type httpBot struct {
	client *upstream.Client
}

func NewBot(client *upstream.Client) Bot {
	return &httpBot{client: client}
}

func (b *httpBot) fetch(ctx context.Context, telegramID string) (*upstream.Response, error) {
	return b.client.Get(ctx, "/validar_usuario", url.Values{"telegram_id": {telegramID}})
}

func (b *httpBot) Validate(ctx context.Context, telegramID string) (*Validation, error) {
	resp, err := b.fetch(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if err := b.client.CheckStatus(resp); err != nil {
		return nil, err
	}

	var v Validation
	if err := resp.Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (b *httpBot) Raw(ctx context.Context, telegramID string) (json.RawMessage, error) {
	resp, err := b.fetch(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if !json.Valid(resp.Body) {
		return nil, ErrNotJSON
	}
	return json.RawMessage(resp.Body), nil
}
