// Package api is the single choke point for calls to the fleet-maintenance
// REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/session"
)

// SessionStore is the part of the session store the client needs.
type SessionStore interface {
	Load(ctx context.Context) (*session.Session, error)
	Clear(ctx context.Context) error
}

// UnauthorizedHandler is called after a 401 has cleared the session. The
// presentation layer registers one to send the user back to login.
type UnauthorizedHandler func(ctx context.Context)

// Client issues authenticated JSON requests against a base URL.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	store          SessionStore
	onUnauthorized UnauthorizedHandler
	logger         log.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUnauthorizedHandler registers the hook run after a 401.
func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *Client) { c.onUnauthorized = h }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l log.FieldLogger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for baseURL using store for the bearer token.
func NewClient(baseURL string, store SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		store:      store,
		logger:     log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type requestOptions struct {
	skipAuth bool
	header   http.Header
}

// RequestOption adjusts a single request.
type RequestOption func(*requestOptions)

// SkipAuth sends the request without the Authorization header.
func SkipAuth() RequestOption {
	return func(o *requestOptions) { o.skipAuth = true }
}

// WithHeader adds a header to the request. Caller headers override defaults.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) { o.header.Set(key, value) }
}

// Do sends a request to endpoint. When body is non-nil it is JSON encoded;
// when out is non-nil and the response has a body it is decoded into out.
// A 204 or empty response leaves out untouched.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out interface{}, opts ...RequestOption) error {
	ro := requestOptions{header: http.Header{}}
	for _, opt := range opts {
		opt(&ro)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range ro.header {
		req.Header[key] = values
	}

	if !ro.skipAuth {
		token, err := c.token(ctx)
		if err != nil {
			return err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.WithError(err).WithFields(log.Fields{"method": method, "endpoint": endpoint}).Debug("Request failed")
		return connectionError(err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(log.Fields{
		"method":   method,
		"endpoint": endpoint,
		"status":   resp.StatusCode,
	}).Debug("API request")

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(ctx)
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return connectionError(err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) token(ctx context.Context) (string, error) {
	if c.store == nil {
		return "", nil
	}
	s, err := c.store.Load(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	return s.Token, nil
}

func (c *Client) handleUnauthorized(ctx context.Context) {
	if c.store != nil {
		if err := c.store.Clear(ctx); err != nil {
			c.logger.WithError(err).Warn("Failed to clear session after unauthorized response")
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
}

func readErrorMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fallbackMessage
	}
	if err := json.Unmarshal(data, &body); err != nil || strings.TrimSpace(body.Message) == "" {
		return fallbackMessage
	}
	return body.Message
}

// Login posts credentials to the authentication endpoint. No bearer token is
// attached since none exists yet.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.Do(ctx, http.MethodPost, "/auth/login", models.LoginRequest{Username: username, Password: password}, &resp, SkipAuth())
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get fetches endpoint and decodes the response into a T.
func Get[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodGet, endpoint, nil, &out)
	return out, err
}

// Post sends body to endpoint and decodes the response into a T.
func Post[T any](ctx context.Context, c *Client, endpoint string, body interface{}) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodPost, endpoint, body, &out)
	return out, err
}

// Put sends body to endpoint and decodes the response into a T.
func Put[T any](ctx context.Context, c *Client, endpoint string, body interface{}) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodPut, endpoint, body, &out)
	return out, err
}

// Delete removes the resource at endpoint. The backend answers 204.
func Delete(ctx context.Context, c *Client, endpoint string) error {
	return c.Do(ctx, http.MethodDelete, endpoint, nil, nil)
}
