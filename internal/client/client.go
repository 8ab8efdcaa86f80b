package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"ticketdesk/internal/session"
)

// Client is the single authenticated transport of the console.  Every
// backend call goes through Do or DoForm, so bearer attachment, error
// decoding and 401 session invalidation happen in exactly one place
// instead of at each call site.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions session.Store
	log      *zap.Logger
}

// New builds a client for the given base URL.  A zero timeout leaves the
// transport's default behavior in place.  The logger may be nil.
func New(baseURL string, timeout time.Duration, store session.Store, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		sessions: store,
		log:      log,
	}
}

// Option mutates an outgoing request before it is sent.
type Option func(*http.Request)

// WithHeader sets one extra header on the request.
func WithHeader(key, value string) Option {
	return func(req *http.Request) { req.Header.Set(key, value) }
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// Do sends a JSON request and decodes a JSON response into out (which may
// be nil to discard the body).  body, when non-nil, is JSON-encoded.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...Option) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(req)
	}
	return c.send(req, out)
}

// DoForm sends a form-encoded POST, used by the login endpoint which
// follows the OAuth2 password-flow convention instead of JSON.
func (c *Client) DoForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return c.send(req, out)
}

// send attaches the bearer token, executes the request and translates the
// response into the package error taxonomy.
func (c *Client) send(req *http.Request, out any) error {
	if s, err := c.sessions.Get(); err == nil && s != nil && s.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.AccessToken)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err))
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode == http.StatusUnauthorized {
		// Invalidate the session exactly here, once for every call site.
		// The store's clear is idempotent, so an already-gone session is
		// not an error.
		if err := c.sessions.Clear(); err != nil {
			c.log.Warn("session clear failed", zap.Error(err))
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Pull the detail out of the error body when there is one.  A
		// non-JSON body is deliberately swallowed: the status code alone is
		// the fallback, never a secondary parse failure.
		var eb errorBody
		if b, readErr := io.ReadAll(resp.Body); readErr == nil {
			_ = json.Unmarshal(b, &eb)
		}
		return &HTTPError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Err: err}
	}
	return nil
}
