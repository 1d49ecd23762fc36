// Package api wraps the portal's REST surface: every call attaches the
// current bearer credential, and every failure is normalized to the closed
// error taxonomy in internal/common/errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	apierrors "jobportal-client/internal/common/errors"
	"jobportal-client/internal/common/logger"
	"jobportal-client/internal/common/metrics"
)

// CredentialSource supplies the bearer credential and allows the 401 side
// effect to clear durable storage. session.Storage satisfies it.
type CredentialSource interface {
	Token() string
	Clear() error
}

// Client is the REST client. Construct once and share; it is safe for
// concurrent use.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	credentials CredentialSource
	logger      logger.Logger

	// onUnauthorized runs after a 401 outside the auth surface has cleared
	// durable storage. It must not issue further API calls.
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUnauthorizedHook registers the 401 observer.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a Client for the given base URL. timeout bounds every round
// trip; there are no retries and no request de-duplication.
func New(baseURL string, timeout time.Duration, creds CredentialSource, log logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		credentials: creds,
		logger:      log.WithFields(map[string]interface{}{"component": "api"}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetUnauthorizedHook registers the 401 observer after construction, which
// breaks the construction cycle between the client and the session store.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// envelope is the backend's common response wrapper. Endpoints disagree on
// which fields they populate, so everything is optional.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	Pages   int             `json:"pages"`
}

func (c *Client) get(ctx context.Context, surface, path string, out interface{}) error {
	return c.do(ctx, surface, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, surface, path string, body, out interface{}) error {
	return c.do(ctx, surface, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, surface, path string, body, out interface{}) error {
	return c.do(ctx, surface, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, surface, path string, out interface{}) error {
	return c.do(ctx, surface, http.MethodDelete, path, nil, out)
}

// do performs a single best-effort round trip.
func (c *Client) do(ctx context.Context, surface, method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req, surface, method, path, out)
}

// send attaches the credential, executes, and normalizes the result.
func (c *Client) send(req *http.Request, surface, method, path string, out interface{}) error {
	if token := c.credentials.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.APIRequestDuration.WithLabelValues(surface, method).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(surface, method, "network").Inc()
		return apierrors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(surface, method, "network").Inc()
		return apierrors.NewNetworkError(err)
	}

	if resp.StatusCode >= 400 {
		metrics.APIRequestsTotal.WithLabelValues(surface, method, "error").Inc()
		return c.rejection(resp.StatusCode, path, data)
	}

	metrics.APIRequestsTotal.WithLabelValues(surface, method, "success").Inc()

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// rejection maps an error response to the closed taxonomy and applies the
// 401 side effect.
func (c *Client) rejection(status int, path string, body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	if status == http.StatusUnauthorized && !isAuthSurface(path) {
		if err := c.credentials.Clear(); err != nil {
			c.logger.Warn("failed to clear credentials after 401", map[string]interface{}{
				"error": err.Error(),
			})
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	return apierrors.FromStatus(status, payload.Message)
}

// isAuthSurface reports whether path belongs to the authentication pages,
// where a 401 is an ordinary login failure and must not wipe the session.
func isAuthSurface(path string) bool {
	return strings.HasPrefix(path, "/auth/")
}

// upload posts a multipart form with a single file field plus extra fields.
func (c *Client) upload(ctx context.Context, surface, path, fieldName, fileName string, content []byte, fields map[string]string, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return fmt.Errorf("building multipart form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return fmt.Errorf("writing file part: %w", err)
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return fmt.Errorf("writing form field %q: %w", k, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, surface, http.MethodPost, path, out)
}
