package api

import (
	"context"

	"rentacar/models"

	"go.uber.org/zap"
)

// AuthResponse is the backend's answer to a successful authentication call.
type AuthResponse struct {
	User         models.User `json:"user"`
	SessionToken string      `json:"session_token"`
}

// RegisterRequest are the signup fields.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	TCKimlik string `json:"tc_kimlik,omitempty"`
	Password string `json:"password"`
}

// Login authenticates with email/password and persists the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	c.saveToken(ctx, resp.SessionToken)
	return &resp, nil
}

// Register creates an account and persists the returned token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	c.saveToken(ctx, resp.SessionToken)
	return &resp, nil
}

// GoogleCallback exchanges the opaque session id produced by the browser-based
// OAuth redirect for a regular token/user pair.
func (c *Client) GoogleCallback(ctx context.Context, sessionID string) (*AuthResponse, error) {
	var resp AuthResponse
	body := map[string]string{"session_id": sessionID}
	if err := c.post(ctx, "/auth/google/callback", body, &resp); err != nil {
		return nil, err
	}
	c.saveToken(ctx, resp.SessionToken)
	return &resp, nil
}

// Me returns the user owning the current token.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout invalidates the session server-side and always drops the local token,
// even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.post(ctx, "/auth/logout", nil, nil)
	if clearErr := c.Tokens.Clear(ctx); clearErr != nil {
		c.Logger.Warn("failed to clear session token on logout", zap.Error(clearErr))
	}
	return err
}

// UpdateProfile updates the authenticated user's profile fields.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (*models.User, error) {
	var user models.User
	if err := c.put(ctx, "/users/me", fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) saveToken(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := c.Tokens.Save(ctx, token); err != nil {
		c.Logger.Error("failed to persist session token", zap.Error(err))
	}
}
