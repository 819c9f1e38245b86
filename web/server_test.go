package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

type fakeCompleter struct {
	chatID    int64
	sessionID string
	err       error
}

func (f *fakeCompleter) CompleteGoogleLogin(ctx context.Context, chatID int64, sessionID string) error {
	f.chatID = chatID
	f.sessionID = sessionID
	return f.err
}

func TestGoogleCallbackHandsOverSession(t *testing.T) {
	completer := &fakeCompleter{}
	router := NewRouter(completer, zap.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?session_id=oauth-1&state=42", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if completer.chatID != 42 || completer.sessionID != "oauth-1" {
		t.Errorf("completer called with chat=%d session=%q", completer.chatID, completer.sessionID)
	}
}

func TestGoogleCallbackRejectsMissingParams(t *testing.T) {
	completer := &fakeCompleter{}
	router := NewRouter(completer, zap.NewNop())

	for _, target := range []string{
		"/auth/google/callback",
		"/auth/google/callback?session_id=oauth-1",
		"/auth/google/callback?session_id=oauth-1&state=not-a-number",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
	if completer.sessionID != "" {
		t.Error("completer must not run on an invalid callback")
	}
}

func TestGoogleCallbackSurfacesCompletionFailure(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("backend down")}
	router := NewRouter(completer, zap.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/google/callback?session_id=oauth-1&state=42", nil))
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := NewRouter(&fakeCompleter{}, zap.NewNop())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
