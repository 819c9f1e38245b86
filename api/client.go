// Package api is the typed client for the car-rental REST backend. It mirrors
// the backend's JSON contracts one method per endpoint, injects the bearer
// token from a TokenStore, and clears the persisted token whenever the backend
// answers 401.
package api

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

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// TokenStore persists the opaque session token between runs. Implementations
// live in services/session.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Client talks to the rental backend. One Client per authenticated identity;
// HTTP transport and limiter may be shared across clients.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenStore
	Limiter *rate.Limiter
	Logger  *zap.Logger
}

// NewClient builds a Client with sensible defaults. tokens may not be nil.
func NewClient(baseURL string, tokens TokenStore, logger *zap.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Tokens:  tokens,
		Limiter: rate.NewLimiter(rate.Limit(10), 20),
		Logger:  logger,
	}
}

// do performs a JSON round trip against the backend. A 401 response clears the
// persisted token before the error is returned; the session layer reacts to
// the returned *Error. extraHeaders may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, extraHeaders http.Header) error {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("request throttled: %w", err)
		}
	}

	endpoint := c.BaseURL + "/api" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vals := range extraHeaders {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	token, err := c.Tokens.Token(ctx)
	if err != nil {
		c.Logger.Warn("failed to read session token", zap.Error(err))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Expired or revoked token; drop it so the next checkAuth settles
		// unauthenticated without a round trip.
		if err := c.Tokens.Clear(ctx); err != nil {
			c.Logger.Warn("failed to clear session token after 401", zap.Error(err))
		}
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", path, err)
		}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(data, &payload)
	return &Error{StatusCode: resp.StatusCode, Detail: payload.Detail}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, nil)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, nil)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, nil)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, nil)
}
