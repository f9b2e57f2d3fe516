package redis

import "context"

// GetItem returns the value at key. A missing key yields goredis.Nil.
func (e *Extension) GetItem(ctx context.Context, key string) (string, error) {
	return e.Get(ctx, key).Result()
}

// SetItem stores value at key with no expiry.
func (e *Extension) SetItem(ctx context.Context, key string, value interface{}) error {
	return e.Set(ctx, key, value, 0).Err()
}

// DeleteItem removes key. Deleting a missing key is not an error.
func (e *Extension) DeleteItem(ctx context.Context, key string) error {
	return e.Del(ctx, key).Err()
}
