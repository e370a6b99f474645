// Package redis provides an explanation library backed by Redis, for
// deployments where several serving instances share one content cache.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/lumilearn/chalkboard/pkg/explanation"
)

// Library implements ports.Library on Redis. Each payload lives under a
// prefixed key; a set tracks the stored ids.
type Library struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the library.
type Option func(*Library)

// WithTTL sets an expiration for stored explanations.
func WithTTL(ttl time.Duration) Option {
	return func(l *Library) { l.ttl = ttl }
}

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) Option {
	return func(l *Library) { l.prefix = prefix }
}

// New creates a library with its own client.
func New(address, password string, db int, opts ...Option) *Library {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a library on an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Library {
	l := &Library{
		client: client,
		prefix: "chalkboard:explanation:",
		ttl:    0, // no expiration by default
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Library) key(id string) string {
	return l.prefix + id
}

func (l *Library) indexKey() string {
	return l.prefix + "index"
}

func (l *Library) Put(ctx context.Context, id string, e *explanation.Explanation) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal explanation: %w", err)
	}

	pipe := l.client.Pipeline()
	pipe.Set(ctx, l.key(id), data, l.ttl)
	pipe.SAdd(ctx, l.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save to redis: %w", err)
	}
	return nil
}

func (l *Library) Get(ctx context.Context, id string) (*explanation.Explanation, error) {
	val, err := l.client.Get(ctx, l.key(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, explanation.ErrNotFound
		}
		return nil, fmt.Errorf("get from redis: %w", err)
	}

	var e explanation.Explanation
	if err := json.Unmarshal([]byte(val), &e); err != nil {
		return nil, fmt.Errorf("unmarshal explanation: %w", err)
	}
	return &e, nil
}

func (l *Library) Delete(ctx context.Context, id string) error {
	pipe := l.client.Pipeline()
	pipe.Del(ctx, l.key(id))
	pipe.SRem(ctx, l.indexKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns stored ids, pruning index entries whose payload expired.
func (l *Library) List(ctx context.Context) ([]string, error) {
	ids, err := l.client.SMembers(ctx, l.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list from redis: %w", err)
	}

	live := ids[:0]
	for _, id := range ids {
		n, err := l.client.Exists(ctx, l.key(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("check key: %w", err)
		}
		if n == 0 {
			_ = l.client.SRem(ctx, l.indexKey(), id).Err()
			continue
		}
		live = append(live, id)
	}
	return live, nil
}

// Close closes the underlying client.
func (l *Library) Close() error {
	return l.client.Close()
}
