package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client is the command surface the extension forwards. *goredis.Client
// satisfies it, so do providers backed by anything else that speaks the
// same commands.
type Client interface {
	Ping(ctx context.Context) *goredis.StatusCmd

	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Exists(ctx context.Context, keys ...string) *goredis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *goredis.BoolCmd
	TTL(ctx context.Context, key string) *goredis.DurationCmd
	Incr(ctx context.Context, key string) *goredis.IntCmd
	IncrBy(ctx context.Context, key string, value int64) *goredis.IntCmd
	Decr(ctx context.Context, key string) *goredis.IntCmd
	MGet(ctx context.Context, keys ...string) *goredis.SliceCmd
	Keys(ctx context.Context, pattern string) *goredis.StringSliceCmd

	HGet(ctx context.Context, key, field string) *goredis.StringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *goredis.IntCmd
	HGetAll(ctx context.Context, key string) *goredis.MapStringStringCmd
	HDel(ctx context.Context, key string, fields ...string) *goredis.IntCmd

	Close() error
}

var (
	_ Client = (*goredis.Client)(nil)
	_ Client = (*Extension)(nil)
)
