// Package api provides an HTTP client for the emoji suggestion service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dohr-michael/emotai/internal/emoji"
)

// Operation names, used in errors and logs.
const (
	OpSuggest   = "suggest"
	OpHistory   = "history"
	OpAnalytics = "analytics"
	OpFeedback  = "feedback"
	OpDeleteAll = "delete_user_data"
)

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 512

// Client talks to the suggestion service over JSON/HTTP.
// The cookie jar keeps the service session alive across calls.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its Jar is kept as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithJar replaces the cookie jar of the default HTTP client.
func WithJar(jar http.CookieJar) Option {
	return func(c *Client) { c.http.Jar = jar }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Suggest asks the service for emojis matching message.
func (c *Client) Suggest(ctx context.Context, message string) (emoji.Suggestion, error) {
	var out emoji.Suggestion
	body := map[string]string{"message": message}
	if err := c.do(ctx, OpSuggest, http.MethodPost, "/suggest", body, &out); err != nil {
		return emoji.Suggestion{}, err
	}
	return out, nil
}

// History returns the session's past suggestions in service order.
// A missing or non-array "history" field yields an empty list.
func (c *Client) History(ctx context.Context) ([]emoji.HistoryEntry, error) {
	var raw struct {
		History json.RawMessage `json:"history"`
	}
	if err := c.do(ctx, OpHistory, http.MethodGet, "/history", nil, &raw); err != nil {
		return nil, err
	}
	list, err := decodeList[emoji.HistoryEntry](raw.History)
	if err != nil {
		return nil, &TransportError{Op: OpHistory, Err: fmt.Errorf("decode history: %w", err)}
	}
	return list, nil
}

// Analytics returns the aggregate glyph usage.
// A missing or non-array "emoji_usage" field yields an empty list.
func (c *Client) Analytics(ctx context.Context) (emoji.Analytics, error) {
	var raw struct {
		Usage json.RawMessage `json:"emoji_usage"`
		emoji.AnalyticsStats
	}
	if err := c.do(ctx, OpAnalytics, http.MethodGet, "/analytics", nil, &raw); err != nil {
		return emoji.Analytics{}, err
	}
	usage, err := decodeList[emoji.AnalyticsEntry](raw.Usage)
	if err != nil {
		return emoji.Analytics{}, &TransportError{Op: OpAnalytics, Err: fmt.Errorf("decode emoji_usage: %w", err)}
	}
	return emoji.Analytics{Usage: usage, Stats: raw.AnalyticsStats}, nil
}

// SubmitFeedback sends a feedback submission. The response body is ignored.
func (c *Client) SubmitFeedback(ctx context.Context, fb emoji.Feedback) error {
	return c.do(ctx, OpFeedback, http.MethodPost, "/feedback", fb, nil)
}

// DeleteUserData removes everything the service stored for this session.
func (c *Client) DeleteUserData(ctx context.Context) error {
	return c.do(ctx, OpDeleteAll, http.MethodPost, "/delete_user_data", struct{}{}, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	reqID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", "op", op, "request_id", reqID, "error", err)
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("request completed",
		"op", op,
		"request_id", reqID,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &ServiceError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// decodeList decodes raw as a JSON array. Anything that is not an array
// (absent, null, object, scalar) becomes an empty list.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return []T{}, nil
	}
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}
