// Package notification manages one user's inbox. Marking a notification read
// is modelled as an explicit tentative state: pending until the server
// confirms, rolled back to failed when it doesn't.
package notification

import (
	"context"
	"sync"

	"rentacar/api"
	"rentacar/models"

	"go.uber.org/zap"
)

// ReadMark is the client-side read state layered over the server's read flag.
type ReadMark string

const (
	ReadMarkPending   ReadMark = "pending"
	ReadMarkConfirmed ReadMark = "confirmed"
	ReadMarkFailed    ReadMark = "failed"
)

// Item is a notification plus its tentative read state. Mark is empty while
// the server flag is authoritative.
type Item struct {
	models.Notification
	Mark ReadMark `json:"-"`
}

// IsRead reports the effective read state the UI should render.
func (i Item) IsRead() bool {
	if i.Mark == ReadMarkPending || i.Mark == ReadMarkConfirmed {
		return true
	}
	return i.Read
}

// NotificationService is one user's inbox.
type NotificationService interface {
	Refresh(ctx context.Context) ([]Item, error)
	Items() []Item
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

// DefaultNotificationService implements NotificationService. The mutex guards
// the snapshot against the background sweep reading while a chat handler
// mutates.
type DefaultNotificationService struct {
	Client *api.Client
	Logger *zap.Logger

	mu    sync.Mutex
	items []Item
}

// Refresh fetches the inbox and replaces the local snapshot, discarding any
// tentative marks; the server state is authoritative again.
func (s *DefaultNotificationService) Refresh(ctx context.Context) ([]Item, error) {
	notifications, err := s.Client.Notifications(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]Item, len(notifications))
	for i, n := range notifications {
		items[i] = Item{Notification: n}
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return items, nil
}

// Items returns the current snapshot.
func (s *DefaultNotificationService) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]Item, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

// UnreadCount asks the backend; it does not consult the local snapshot.
func (s *DefaultNotificationService) UnreadCount(ctx context.Context) (int, error) {
	return s.Client.UnreadCount(ctx)
}

// MarkRead tentatively marks the notification read, confirms it with the
// backend, and rolls back to failed when the call doesn't go through.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, id string) error {
	s.setMark(id, ReadMarkPending)

	if err := s.Client.MarkNotificationRead(ctx, id); err != nil {
		s.setMark(id, ReadMarkFailed)
		s.Logger.Warn("failed to mark notification read",
			zap.String("notification", id), zap.Error(err))
		return err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].NotificationID == id {
			s.items[i].Mark = ReadMarkConfirmed
			s.items[i].Read = true
		}
	}
	s.mu.Unlock()
	return nil
}

// MarkAllRead applies the same tentative discipline to the whole inbox.
func (s *DefaultNotificationService) MarkAllRead(ctx context.Context) error {
	s.mu.Lock()
	for i := range s.items {
		if !s.items[i].Read {
			s.items[i].Mark = ReadMarkPending
		}
	}
	s.mu.Unlock()

	if err := s.Client.MarkAllNotificationsRead(ctx); err != nil {
		s.mu.Lock()
		for i := range s.items {
			if s.items[i].Mark == ReadMarkPending {
				s.items[i].Mark = ReadMarkFailed
			}
		}
		s.mu.Unlock()
		s.Logger.Warn("failed to mark all notifications read", zap.Error(err))
		return err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].Mark == ReadMarkPending {
			s.items[i].Mark = ReadMarkConfirmed
		}
		s.items[i].Read = true
	}
	s.mu.Unlock()
	return nil
}

func (s *DefaultNotificationService) setMark(id string, mark ReadMark) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].NotificationID == id {
			s.items[i].Mark = mark
		}
	}
}
