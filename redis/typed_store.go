package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// TypedStore stores JSON-encoded values of type C under a key prefix. It
// works over any Client, including an Extension.
type TypedStore[C any] struct {
	client    Client
	keyPrefix string
}

// NewTypedStore creates a TypedStore backed by client. Keys are prefixed
// with keyPrefix followed by a colon.
func NewTypedStore[C any](client Client, keyPrefix string) *TypedStore[C] {
	return &TypedStore[C]{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *TypedStore[C]) fullKey(key string) string {
	if s.keyPrefix == "" {
		return key
	}
	return s.keyPrefix + ":" + key
}

// Load returns the stored value, or (nil, nil) if key does not exist.
func (s *TypedStore[C]) Load(ctx context.Context, key string) (*C, error) {
	var val C
	if err := GetJSON(ctx, s.client, s.fullKey(key), &val); err != nil {
		if stderrors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("typed store load %q: %w", key, err)
	}
	return &val, nil
}

// Save stores val with ttl. A ttl of 0 means no expiration.
func (s *TypedStore[C]) Save(ctx context.Context, key string, val *C, ttl time.Duration) error {
	if err := SetJSON(ctx, s.client, s.fullKey(key), val, ttl); err != nil {
		return fmt.Errorf("typed store save %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *TypedStore[C]) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.fullKey(key)).Err(); err != nil {
		return fmt.Errorf("typed store delete %q: %w", key, err)
	}
	return nil
}

// GetJSON reads key and decodes it into dst. A missing key yields goredis.Nil.
func GetJSON(ctx context.Context, c Client, key string, dst any) error {
	raw, err := c.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("unmarshal %q: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it at key with ttl.
func SetJSON(ctx context.Context, c Client, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	return c.Set(ctx, key, data, ttl).Err()
}
