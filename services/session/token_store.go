package session

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"rentacar/utils"

	"github.com/go-redis/redis/v8"
)

// FileTokenStore persists the token in a mode-0600 file. Single-user use
// (CLI, development).
type FileTokenStore struct {
	Path string
}

func (f *FileTokenStore) Token(ctx context.Context) (string, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileTokenStore) Save(ctx context.Context, token string) error {
	if err := os.WriteFile(f.Path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (f *FileTokenStore) Clear(ctx context.Context) error {
	err := os.Remove(f.Path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// RedisTokenStore persists one token per chat. Multi-user use (the Telegram
// storefront, where every chat carries its own backend identity).
type RedisTokenStore struct {
	Client *redis.Client
	Key    string
}

// NewRedisTokenStore builds the store for a chat id.
func NewRedisTokenStore(client *redis.Client, chatID int64) *RedisTokenStore {
	return &RedisTokenStore{
		Client: client,
		Key:    utils.TokenKeyPrefix + strconv.FormatInt(chatID, 10),
	}
}

func (r *RedisTokenStore) Token(ctx context.Context) (string, error) {
	token, err := r.Client.Get(ctx, r.Key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return token, nil
}

func (r *RedisTokenStore) Save(ctx context.Context, token string) error {
	// Tokens have no client-side expiry; the backend signals expiry with 401.
	if err := r.Client.Set(ctx, r.Key, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (r *RedisTokenStore) Clear(ctx context.Context) error {
	if err := r.Client.Del(ctx, r.Key).Err(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps the token in memory only. Used in tests and for
// throwaway sessions.
type MemoryTokenStore struct {
	token string
}

func (m *MemoryTokenStore) Token(ctx context.Context) (string, error) { return m.token, nil }

func (m *MemoryTokenStore) Save(ctx context.Context, token string) error {
	m.token = token
	return nil
}

func (m *MemoryTokenStore) Clear(ctx context.Context) error {
	m.token = ""
	return nil
}
