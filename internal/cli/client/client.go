package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/salonbook/salon/internal/access"
)

// ErrUnauthorized matches any APIError carrying status 401
var ErrUnauthorized = errors.New("unauthorized")

// Credentials supplies the bearer credential for authenticated calls.
// Clear is called when the collaborator rejects the credential.
type Credentials interface {
	Token() string
	Clear() error
}

// Client represents an HTTP client for the salon REST API
type Client struct {
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	credentials Credentials
	validate    *validator.Validate
	logger      zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout. It applies to a copy of the
// HTTP client, so an injected client is never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithCredentials attaches the session used for authenticated calls
func WithCredentials(credentials Credentials) Option {
	return func(c *Client) {
		c.credentials = credentials
	}
}

// WithLogger sets the logger used for request failures
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new API client for baseURL (e.g. http://localhost:5000)
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		validate: newValidator(),
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		httpClient := *c.httpClient
		httpClient.Timeout = c.timeout
		c.httpClient = &httpClient
	}

	return c
}

// BaseURL returns the collaborator's base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is returned for any non-2xx response
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d): %s", e.Op, e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// request describes a single call against the collaborator
type request struct {
	op            string
	method        string
	path          string
	body          any
	authenticated bool
}

// do sends req and decodes a JSON response into out (which may be nil)
func (c *Client) do(ctx context.Context, req request, out any) error {
	var token string
	if req.authenticated {
		if c.credentials != nil {
			token = c.credentials.Token()
		}
		if token == "" {
			return fmt.Errorf("%s: %w", req.op, access.ErrUnauthenticated)
		}
	}

	var body io.Reader
	if req.body != nil {
		jsonData, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	c.logger.Debug().Str("method", req.method).Str("path", req.path).Msg("API request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error().Err(err).Str("method", req.method).Str("path", req.path).Msg("API request failed")
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{
			Op:         req.op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody, resp.Status),
		}

		c.logger.Error().
			Str("method", req.method).
			Str("path", req.path).
			Int("status", resp.StatusCode).
			Str("message", apiErr.Message).
			Msg("API request failed")

		if resp.StatusCode == http.StatusUnauthorized && req.authenticated && c.credentials != nil {
			if err := c.credentials.Clear(); err != nil {
				c.logger.Warn().Err(err).Msg("Failed to clear rejected credential")
			}
		}

		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// errorMessage extracts {"message": ...} or {"error": ...} from an error
// body, falling back to the raw body or the status text
func errorMessage(body []byte, status string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return status
}
