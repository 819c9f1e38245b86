package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentacar/api"
	"rentacar/models"

	"go.uber.org/zap"
)

func newTestSession(t *testing.T, handler http.Handler, token string) (*DefaultSessionService, *MemoryTokenStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := &MemoryTokenStore{}
	if token != "" {
		tokens.Save(context.Background(), token)
	}
	client := api.NewClient(srv.URL, tokens, zap.NewNop())
	return NewSessionService(client, tokens, zap.NewNop()), tokens
}

func TestSessionBootsLoading(t *testing.T) {
	svc, _ := newTestSession(t, http.NewServeMux(), "")
	if !svc.State().IsLoading {
		t.Error("fresh session must report loading until CheckAuth settles")
	}
}

func TestCheckAuthWithoutTokenSkipsNetwork(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})
	svc, _ := newTestSession(t, mux, "")

	svc.CheckAuth(context.Background())

	state := svc.State()
	if state.IsAuthenticated || state.User != nil {
		t.Errorf("expected unauthenticated state, got %+v", state)
	}
	if state.IsLoading {
		t.Error("CheckAuth left IsLoading true")
	}
}

func TestCheckAuthExpiredTokenClearsIt(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail": "Oturum süresi doldu"}`)
	})
	svc, tokens := newTestSession(t, mux, "stale-token")

	svc.CheckAuth(context.Background())

	state := svc.State()
	if state.IsAuthenticated {
		t.Error("expected unauthenticated state after 401")
	}
	if state.IsLoading {
		t.Error("CheckAuth left IsLoading true")
	}
	if tok, _ := tokens.Token(context.Background()); tok != "" {
		t.Errorf("stale token not cleared: %q", tok)
	}
}

func TestCheckAuthValidToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer good-token" {
			t.Errorf("unexpected auth header %q", got)
		}
		json.NewEncoder(w).Encode(models.User{UserID: "u-1", Name: "Ada Kaya", Email: "ada@example.com"})
	})
	svc, _ := newTestSession(t, mux, "good-token")

	svc.CheckAuth(context.Background())

	state := svc.State()
	if !state.IsAuthenticated || state.User == nil || state.User.Name != "Ada Kaya" {
		t.Errorf("expected authenticated state, got %+v", state)
	}
	if state.IsLoading {
		t.Error("CheckAuth left IsLoading true")
	}
}

func TestLoginSuccessPersistsToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ada@example.com" {
			t.Errorf("unexpected login payload: %v", body)
		}
		json.NewEncoder(w).Encode(api.AuthResponse{
			User:         models.User{UserID: "u-1", Name: "Ada Kaya"},
			SessionToken: "fresh-token",
		})
	})
	svc, tokens := newTestSession(t, mux, "")

	if err := svc.Login(context.Background(), "ada@example.com", "hunter2"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	state := svc.State()
	if !state.IsAuthenticated || state.User.Name != "Ada Kaya" {
		t.Errorf("expected authenticated state, got %+v", state)
	}
	if state.IsLoading || state.Err != "" {
		t.Errorf("expected settled clean state, got %+v", state)
	}
	if tok, _ := tokens.Token(context.Background()); tok != "fresh-token" {
		t.Errorf("token not persisted: %q", tok)
	}
}

func TestLoginFailureRecordsDetailAndPropagates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"detail": "E-posta veya şifre hatalı"}`)
	})
	svc, _ := newTestSession(t, mux, "")

	err := svc.Login(context.Background(), "ada@example.com", "wrong")
	if err == nil {
		t.Fatal("expected login error to propagate")
	}
	state := svc.State()
	if state.IsAuthenticated {
		t.Error("failed login authenticated the session")
	}
	if state.Err != "E-posta veya şifre hatalı" {
		t.Errorf("server detail not recorded, got %q", state.Err)
	}
	if state.IsLoading {
		t.Error("failed login left IsLoading true")
	}
}

func TestLoginFailureWithoutDetailUsesFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	svc, _ := newTestSession(t, mux, "")

	if err := svc.Login(context.Background(), "ada@example.com", "pw"); err == nil {
		t.Fatal("expected login error")
	}
	if got := svc.State().Err; got != errLoginFallback {
		t.Errorf("expected fallback message, got %q", got)
	}

	svc.ClearError()
	if svc.State().Err != "" {
		t.Error("ClearError did not drop the message")
	}
}

func TestRegisterFailureUsesRegisterFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	svc, _ := newTestSession(t, mux, "")

	err := svc.Register(context.Background(), api.RegisterRequest{Email: "ada@example.com"})
	if err == nil {
		t.Fatal("expected register error")
	}
	if got := svc.State().Err; got != errRegisterFallback {
		t.Errorf("expected fallback message, got %q", got)
	}
}

func TestGoogleLoginExchangesSessionID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/google/callback", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["session_id"] != "oauth-session" {
			t.Errorf("unexpected payload: %v", body)
		}
		json.NewEncoder(w).Encode(api.AuthResponse{
			User:         models.User{UserID: "u-1", Name: "Ada Kaya"},
			SessionToken: "google-token",
		})
	})
	svc, tokens := newTestSession(t, mux, "")

	if err := svc.GoogleLogin(context.Background(), "oauth-session"); err != nil {
		t.Fatalf("GoogleLogin failed: %v", err)
	}
	if !svc.State().IsAuthenticated {
		t.Error("expected authenticated state")
	}
	if tok, _ := tokens.Token(context.Background()); tok != "google-token" {
		t.Errorf("token not persisted: %q", tok)
	}
}

func TestLogoutClearsSessionEvenWhenServerFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	svc, tokens := newTestSession(t, mux, "tok")
	svc.SetUser(&models.User{UserID: "u-1"})

	svc.Logout(context.Background())

	state := svc.State()
	if state.IsAuthenticated || state.User != nil {
		t.Errorf("logout left session populated: %+v", state)
	}
	if state.IsLoading {
		t.Error("logout left IsLoading true")
	}
	if tok, _ := tokens.Token(context.Background()); tok != "" {
		t.Errorf("token survived logout: %q", tok)
	}
}

// The notification sweep and the OAuth callback read the session from their
// own goroutines while the chat's conversation mutates it; the snapshot must
// stay readable throughout (run with -race).
func TestStateReadableWhileOperationsRun(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.AuthResponse{
			User:         models.User{UserID: "u-1", Name: "Ada Kaya"},
			SessionToken: "fresh-token",
		})
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	svc, _ := newTestSession(t, mux, "")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			state := svc.State()
			if state.IsAuthenticated && state.User == nil {
				t.Error("authenticated snapshot without a user")
			}
			svc.ClearError()
		}
	}()

	ctx := context.Background()
	for i := 0; i < 20; i++ {
		if err := svc.Login(ctx, "ada@example.com", "pw"); err != nil {
			t.Errorf("Login failed: %v", err)
		}
		svc.SetUser(&models.User{UserID: "u-1"})
		svc.Logout(ctx)
	}
	<-done

	if state := svc.State(); state.IsLoading || state.IsAuthenticated {
		t.Errorf("expected settled signed-out state, got %+v", state)
	}
}

func TestSetUser(t *testing.T) {
	svc, _ := newTestSession(t, http.NewServeMux(), "")
	svc.SetUser(&models.User{UserID: "u-1", Name: "Ada Kaya"})
	if !svc.State().IsAuthenticated {
		t.Error("SetUser with a user must authenticate the session")
	}
	svc.SetUser(nil)
	if svc.State().IsAuthenticated {
		t.Error("SetUser(nil) must deauthenticate the session")
	}
}
