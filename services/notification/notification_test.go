package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"rentacar/api"
	"rentacar/models"

	"go.uber.org/zap"
)

type noTokens struct{}

func (noTokens) Token(ctx context.Context) (string, error)    { return "tok", nil }
func (noTokens) Save(ctx context.Context, token string) error { return nil }
func (noTokens) Clear(ctx context.Context) error              { return nil }

func inboxFixture() []models.Notification {
	return []models.Notification{
		{NotificationID: "n-1", Title: "Rezervasyon onaylandı", Read: false},
		{NotificationID: "n-2", Title: "Yeni kampanya", Read: true},
	}
}

func newTestInbox(t *testing.T, markFails *atomic.Bool) *DefaultNotificationService {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/notifications", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(inboxFixture())
	})
	fail := func(w http.ResponseWriter) bool {
		if markFails != nil && markFails.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return true
		}
		return false
	}
	mux.HandleFunc("/api/notifications/n-1/read", func(w http.ResponseWriter, r *http.Request) {
		if fail(w) {
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/notifications/read-all", func(w http.ResponseWriter, r *http.Request) {
		if fail(w) {
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &DefaultNotificationService{
		Client: api.NewClient(srv.URL, noTokens{}, zap.NewNop()),
		Logger: zap.NewNop(),
	}
}

func itemByID(t *testing.T, items []Item, id string) Item {
	t.Helper()
	for _, item := range items {
		if item.NotificationID == id {
			return item
		}
	}
	t.Fatalf("notification %s not found", id)
	return Item{}
}

func TestRefreshReplacesSnapshot(t *testing.T) {
	svc := newTestInbox(t, nil)

	items, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if itemByID(t, items, "n-1").IsRead() {
		t.Error("unread notification reported as read")
	}
	if !itemByID(t, items, "n-2").IsRead() {
		t.Error("read notification reported as unread")
	}
}

func TestMarkReadConfirms(t *testing.T) {
	svc := newTestInbox(t, nil)
	svc.Refresh(context.Background())

	if err := svc.MarkRead(context.Background(), "n-1"); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	item := itemByID(t, svc.Items(), "n-1")
	if item.Mark != ReadMarkConfirmed {
		t.Errorf("expected confirmed mark, got %q", item.Mark)
	}
	if !item.IsRead() {
		t.Error("confirmed notification still reported unread")
	}
}

func TestMarkReadRollsBackOnFailure(t *testing.T) {
	var markFails atomic.Bool
	markFails.Store(true)
	svc := newTestInbox(t, &markFails)
	svc.Refresh(context.Background())

	if err := svc.MarkRead(context.Background(), "n-1"); err == nil {
		t.Fatal("expected MarkRead to fail")
	}
	item := itemByID(t, svc.Items(), "n-1")
	if item.Mark != ReadMarkFailed {
		t.Errorf("expected failed mark, got %q", item.Mark)
	}
	if item.IsRead() {
		t.Error("failed mark must fall back to the server's unread flag")
	}

	// Retry after the backend recovers.
	markFails.Store(false)
	if err := svc.MarkRead(context.Background(), "n-1"); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if !itemByID(t, svc.Items(), "n-1").IsRead() {
		t.Error("retried mark not applied")
	}
}

func TestMarkAllReadRollsBackOnFailure(t *testing.T) {
	var markFails atomic.Bool
	markFails.Store(true)
	svc := newTestInbox(t, &markFails)
	svc.Refresh(context.Background())

	if err := svc.MarkAllRead(context.Background()); err == nil {
		t.Fatal("expected MarkAllRead to fail")
	}
	if item := itemByID(t, svc.Items(), "n-1"); item.Mark != ReadMarkFailed || item.IsRead() {
		t.Errorf("unread item not rolled back: %+v", item)
	}
	// The already-read item was never marked pending, so it stays untouched.
	if item := itemByID(t, svc.Items(), "n-2"); item.Mark != "" {
		t.Errorf("read item gained a mark: %q", item.Mark)
	}

	markFails.Store(false)
	if err := svc.MarkAllRead(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	for _, item := range svc.Items() {
		if !item.IsRead() {
			t.Errorf("item %s still unread after MarkAllRead", item.NotificationID)
		}
	}
}

func TestRefreshDiscardsTentativeMarks(t *testing.T) {
	var markFails atomic.Bool
	markFails.Store(true)
	svc := newTestInbox(t, &markFails)
	svc.Refresh(context.Background())
	svc.MarkRead(context.Background(), "n-1")

	items, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if item := itemByID(t, items, "n-1"); item.Mark != "" {
		t.Errorf("refresh kept a stale mark: %q", item.Mark)
	}
}
