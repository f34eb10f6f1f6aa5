package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kracgan/student-management-frontend/pkg/model"
)

// DefaultMessageFields is the default lookup order for human-readable
// messages in backend error payloads. Backends differ in which field they
// use, so the order is configurable rather than hard-coded.
var DefaultMessageFields = []string{"message", "error", "detail"}

// ClientConfig holds backend API configuration.
type ClientConfig struct {
	BaseURL       string
	MessageFields []string // Error-message lookup order; DefaultMessageFields when empty
}

// APIError is a structured error returned by the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("backend error: HTTP %d: %s", e.StatusCode, e.Message)
}

// envelope is the backend response wrapper.
type envelope struct {
	Data       json.RawMessage   `json:"data"`
	Pagination *model.Pagination `json:"pagination"`
}

// Client is an HTTP client for the student management REST backend.
// A zero token makes unauthenticated calls; WithToken derives a client
// that sends a bearer token.
type Client struct {
	baseURL       string
	token         string
	messageFields []string
	httpClient    *http.Client
	logger        *slog.Logger
}

// NewClient creates a backend API client.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	fields := cfg.MessageFields
	if len(fields) == 0 {
		fields = DefaultMessageFields
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		messageFields: fields,
		httpClient:    &http.Client{},
		logger:        logger.With("component", "backend"),
	}
}

// WithToken returns a copy of the client that authenticates with the
// given bearer token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// do performs an HTTP request and decodes the response envelope's data
// field into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (*model.Pagination, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("backend request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("backend response", "status", resp.StatusCode, "path", path)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    c.extractMessage(respBody),
		}
	}

	if out == nil {
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return env.Pagination, nil
}

// extractMessage pulls a human-readable message from an error payload,
// trying the configured fields in order. Returns "" when none match.
func (c *Client) extractMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, field := range c.messageFields {
		if v, ok := payload[field].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func listQuery(opts model.ListOptions) url.Values {
	opts.Clamp()
	q := url.Values{}
	q.Set("limit", strconv.Itoa(opts.Limit))
	q.Set("offset", strconv.Itoa(opts.Offset))
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	return q
}
