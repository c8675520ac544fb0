package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"jobscout/internal/domain/history"
)

// Ensure Store implements history.Repository
var _ history.Repository = (*Store)(nil)

const defaultSetKey = "jobscout:seen"

// Config defines Redis store settings
type Config struct {
	URL    string
	SetKey string
}

// Store persists seen keys as members of a single Redis set
type Store struct {
	client *redis.Client
	setKey string
}

// NewStore parses the URL and verifies connectivity
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("redis store: url is required")
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis store: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis store: ping failed: %w", err)
	}

	setKey := cfg.SetKey
	if setKey == "" {
		setKey = defaultSetKey
	}

	return &Store{
		client: client,
		setKey: setKey,
	}, nil
}

// Load returns all members of the seen set
func (s *Store) Load(ctx context.Context) ([]string, error) {
	keys, err := s.client.SMembers(ctx, s.setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis store: smembers: %w", err)
	}
	return keys, nil
}

// Save adds keys to the set. Existing members stay put, so the stored set
// is the union of everything ever saved.
func (s *Store) Save(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	members := make([]interface{}, len(keys))
	for i, k := range keys {
		members[i] = k
	}

	if err := s.client.SAdd(ctx, s.setKey, members...).Err(); err != nil {
		return fmt.Errorf("redis store: sadd: %w", err)
	}

	return nil
}

// Clear deletes the set
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.setKey).Err(); err != nil {
		return fmt.Errorf("redis store: del: %w", err)
	}
	return nil
}

// Close releases the underlying connection
func (s *Store) Close() error {
	return s.client.Close()
}
