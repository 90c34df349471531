// Package upstream is the outbound HTTP client shared by the proxies. Every
// call is a single attempt bounded by the client timeout and the caller's
// context; nothing is retried.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// defaultMaxBody caps how much of an upstream response is read into memory.
const defaultMaxBody = 10 << 20

type Client struct {
	name    string
	baseURL *url.URL
	http    *http.Client
	logger  zerolog.Logger
	maxBody int64
}

// New builds a client for the service rooted at baseURL. name only labels
// log lines and errors.
func New(name, baseURL string, timeout time.Duration, logger zerolog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse %s url: %w", name, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s url must be absolute, got %q", name, baseURL)
	}
	return &Client{
		name:    name,
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With().Str("upstream", name).Logger(),
		maxBody: defaultMaxBody,
	}, nil
}

// Response is a fully read upstream reply.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = u.Path + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// Get issues GET baseURL/path?query.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", c.name, err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

// PostJSON marshals body and POSTs it to baseURL/path. A non-empty
// bearerToken is sent as the Authorization header.
func (c *Client) PostJSON(ctx context.Context, path string, body interface{}, bearerToken string) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", c.name, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", c.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Dur("latency", time.Since(start)).
			Msg("upstream request failed")
		return nil, fmt.Errorf("%s request: %w", c.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", c.name, err)
	}
	if int64(len(body)) > c.maxBody {
		c.logger.Error().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", resp.StatusCode).
			Int64("limit", c.maxBody).
			Msg("upstream response too large")
		return nil, fmt.Errorf("%s response exceeds %d bytes", c.name, c.maxBody)
	}

	c.logger.Info().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("latency", time.Since(start)).
		Msg("upstream request")

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// StatusError is a non-2xx reply from an upstream service. Handlers relay
// its status code to the caller.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded %d: %s", e.Service, e.StatusCode, e.Body)
}

// CheckStatus returns a *StatusError when resp is not 2xx.
func (c *Client) CheckStatus(resp *Response) error {
	if resp.OK() {
		return nil
	}
	return &StatusError{Service: c.name, StatusCode: resp.StatusCode, Body: string(resp.Body)}
}

// MaskToken keeps the first and last four characters of a credential for
// logging.
func MaskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}
