package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Persister stores session blobs by key. Load returns nil, nil when absent.
type Persister interface {
	Load(ctx context.Context, key string) (*State, error)
	Save(ctx context.Context, key string, st State) error
	Delete(ctx context.Context, key string) error
}

// RedisPersister keeps blobs in Redis with a sliding TTL.
type RedisPersister struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisPersister creates a Redis-backed persister.
func NewRedisPersister(client redis.Cmdable, ttl time.Duration) *RedisPersister {
	return &RedisPersister{client: client, ttl: ttl}
}

// Load reads and decodes the blob under key.
func (p *RedisPersister) Load(ctx context.Context, key string) (*State, error) {
	raw, err := p.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", key, err)
	}
	if p.ttl > 0 {
		_ = p.client.Expire(ctx, key, p.ttl).Err()
	}
	return &st, nil
}

// Save encodes st under key.
func (p *RedisPersister) Save(ctx context.Context, key string, st State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return p.client.Set(ctx, key, raw, p.ttl).Err()
}

// Delete removes the blob under key.
func (p *RedisPersister) Delete(ctx context.Context, key string) error {
	return p.client.Del(ctx, key).Err()
}

// MemoryPersister keeps encoded blobs in process memory.
type MemoryPersister struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryPersister creates an empty in-memory persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{blobs: make(map[string][]byte)}
}

// Load decodes the blob under key.
func (p *MemoryPersister) Load(_ context.Context, key string) (*State, error) {
	p.mu.Lock()
	raw, ok := p.blobs[key]
	p.mu.Unlock()
	if !ok {
		return nil, nil
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Save encodes st under key.
func (p *MemoryPersister) Save(_ context.Context, key string, st State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.blobs[key] = raw
	p.mu.Unlock()
	return nil
}

// Delete removes the blob under key.
func (p *MemoryPersister) Delete(_ context.Context, key string) error {
	p.mu.Lock()
	delete(p.blobs, key)
	p.mu.Unlock()
	return nil
}
