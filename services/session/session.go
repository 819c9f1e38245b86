package session

import (
	"context"

	"rentacar/api"
	"rentacar/models"

	"go.uber.org/zap"
)

// Generic fallback messages, used when the backend gave no detail.
const (
	errLoginFallback    = "Giriş yapılırken bir hata oluştu"
	errRegisterFallback = "Kayıt olurken bir hata oluştu"
	errGoogleFallback   = "Google ile giriş yapılırken bir hata oluştu"
)

func (s *DefaultSessionService) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *DefaultSessionService) beginOp() {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Err = ""
	s.mu.Unlock()
}

func (s *DefaultSessionService) failOp(err error, fallback string) {
	s.mu.Lock()
	s.state.IsLoading = false
	s.state.Err = api.Detail(err, fallback)
	s.mu.Unlock()
}

// CheckAuth settles the session on boot. With no stored token it resolves
// unauthenticated immediately, without a network call. With a token it asks
// the backend who owns it; any failure (including 401) clears the token.
// Every exit path leaves IsLoading false.
func (s *DefaultSessionService) CheckAuth(ctx context.Context) {
	s.beginOp()

	token, err := s.Tokens.Token(ctx)
	if err != nil {
		s.Logger.Warn("failed to read persisted token", zap.Error(err))
	}
	if token == "" {
		s.setState(State{})
		return
	}

	user, err := s.Client.Me(ctx)
	if err != nil {
		// The api client already dropped the token on 401; clear for the
		// other failure modes too so the next boot settles offline.
		if clearErr := s.Tokens.Clear(ctx); clearErr != nil {
			s.Logger.Warn("failed to clear token", zap.Error(clearErr))
		}
		s.setState(State{})
		return
	}

	s.setState(State{User: user, IsAuthenticated: true})
}

// Login authenticates with email/password. On failure the prior user state is
// untouched, the error message is recorded, and the error is returned so the
// caller can surface it.
func (s *DefaultSessionService) Login(ctx context.Context, email, password string) error {
	s.beginOp()

	resp, err := s.Client.Login(ctx, email, password)
	if err != nil {
		s.failOp(err, errLoginFallback)
		return err
	}

	s.setState(State{User: &resp.User, IsAuthenticated: true})
	return nil
}

// Register creates an account and signs the new user in.
func (s *DefaultSessionService) Register(ctx context.Context, req api.RegisterRequest) error {
	s.beginOp()

	resp, err := s.Client.Register(ctx, req)
	if err != nil {
		s.failOp(err, errRegisterFallback)
		return err
	}

	s.setState(State{User: &resp.User, IsAuthenticated: true})
	return nil
}

// GoogleLogin exchanges the opaque session id from the browser OAuth redirect
// for a token/user pair.
func (s *DefaultSessionService) GoogleLogin(ctx context.Context, sessionID string) error {
	s.beginOp()

	resp, err := s.Client.GoogleCallback(ctx, sessionID)
	if err != nil {
		s.failOp(err, errGoogleFallback)
		return err
	}

	s.setState(State{User: &resp.User, IsAuthenticated: true})
	return nil
}

// Logout invalidates the session. The server call is best-effort; the local
// session is cleared regardless.
func (s *DefaultSessionService) Logout(ctx context.Context) {
	s.beginOp()
	if err := s.Client.Logout(ctx); err != nil {
		s.Logger.Warn("server-side logout failed", zap.Error(err))
	}
	s.setState(State{})
}

// SetUser overrides the current user directly, for flows that already hold a
// fresh user object (e.g. a profile update response).
func (s *DefaultSessionService) SetUser(user *models.User) {
	s.mu.Lock()
	s.state.User = user
	s.state.IsAuthenticated = user != nil
	s.mu.Unlock()
}

// ClearError drops the recorded error message.
func (s *DefaultSessionService) ClearError() {
	s.mu.Lock()
	s.state.Err = ""
	s.mu.Unlock()
}

// State returns the current snapshot. Safe to call from any goroutine.
func (s *DefaultSessionService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
