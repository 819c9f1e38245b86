// Package session is the single source of truth for "is a user currently
// authenticated, and who are they", backed by a persisted opaque token.
package session

import (
	"context"
	"sync"

	"rentacar/api"
	"rentacar/models"

	"go.uber.org/zap"
)

// State is a snapshot of the session store.
type State struct {
	User            *models.User
	IsAuthenticated bool
	IsLoading       bool
	Err             string
}

// SessionService defines the auth/session lifecycle. The presentation layer
// serializes mutating operations per chat; State may be read from other
// goroutines (the notification sweep, the OAuth callback) at any time.
type SessionService interface {
	CheckAuth(ctx context.Context)
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, req api.RegisterRequest) error
	GoogleLogin(ctx context.Context, sessionID string) error
	Logout(ctx context.Context)
	SetUser(user *models.User)
	ClearError()
	State() State
}

// DefaultSessionService implements SessionService over the rental API client.
// It is explicitly constructed and injected wherever authentication state is
// needed; there is no package-level singleton. The mutex guards the state
// snapshot against background readers while an operation mutates it.
type DefaultSessionService struct {
	Client *api.Client
	Tokens api.TokenStore
	Logger *zap.Logger

	mu    sync.Mutex
	state State
}

// NewSessionService builds a session store in its boot state: loading until
// the first CheckAuth settles.
func NewSessionService(client *api.Client, tokens api.TokenStore, logger *zap.Logger) *DefaultSessionService {
	return &DefaultSessionService{
		Client: client,
		Tokens: tokens,
		Logger: logger,
		state:  State{IsLoading: true},
	}
}
