package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"rentacar/models"
	"rentacar/utils"

	"github.com/go-redis/redis/v8"
)

// WizardStore persists in-flight wizards keyed by owner (chat id). Entries
// expire: an abandoned wizard simply disappears.
type WizardStore interface {
	Save(ctx context.Context, w *Wizard) error
	Get(ctx context.Context, ownerID string) (*Wizard, error)
	Delete(ctx context.Context, ownerID string) error
}

// RedisWizardStore keeps wizards as JSON blobs with a TTL, so a chat can
// resume its flow across process restarts.
type RedisWizardStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisWizardStore(client *redis.Client) *RedisWizardStore {
	return &RedisWizardStore{Client: client, TTL: utils.WizardTTL}
}

func (s *RedisWizardStore) Save(ctx context.Context, w *Wizard) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard: %w", err)
	}
	if err := s.Client.Set(ctx, utils.WizardKeyPrefix+w.OwnerID, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store wizard: %w", err)
	}
	return nil
}

func (s *RedisWizardStore) Get(ctx context.Context, ownerID string) (*Wizard, error) {
	data, err := s.Client.Get(ctx, utils.WizardKeyPrefix+ownerID).Result()
	if err == redis.Nil {
		return nil, ErrNoWizard
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wizard: %w", err)
	}
	var w Wizard
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		return nil, fmt.Errorf("failed to parse wizard: %w", err)
	}
	return &w, nil
}

func (s *RedisWizardStore) Delete(ctx context.Context, ownerID string) error {
	if err := s.Client.Del(ctx, utils.WizardKeyPrefix+ownerID).Err(); err != nil {
		return fmt.Errorf("failed to delete wizard: %w", err)
	}
	return nil
}

// MemoryWizardStore is the in-process fallback, also used in tests.
type MemoryWizardStore struct {
	mu      sync.Mutex
	wizards map[string]*Wizard
}

func NewMemoryWizardStore() *MemoryWizardStore {
	return &MemoryWizardStore{wizards: make(map[string]*Wizard)}
}

// cloneWizard copies the wizard including its slice-backed fields, so the
// stored value and the caller's snapshot never share backing arrays (the
// redis store gets the same isolation from JSON round-tripping).
func cloneWizard(w *Wizard) *Wizard {
	snapshot := *w
	snapshot.Locations = append([]models.Location(nil), w.Locations...)
	snapshot.Draft.Extras = append([]string(nil), w.Draft.Extras...)
	if w.Result != nil {
		result := *w.Result
		snapshot.Result = &result
	}
	return &snapshot
}

func (s *MemoryWizardStore) Save(ctx context.Context, w *Wizard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wizards[w.OwnerID] = cloneWizard(w)
	return nil
}

func (s *MemoryWizardStore) Get(ctx context.Context, ownerID string) (*Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wizards[ownerID]
	if !ok {
		return nil, ErrNoWizard
	}
	return cloneWizard(w), nil
}

func (s *MemoryWizardStore) Delete(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.wizards, ownerID)
	return nil
}
