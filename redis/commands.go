package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// detached marks cmd as failed because no client is attached.
func detached[T interface{ SetErr(error) }](cmd T) T {
	cmd.SetErr(ErrNotAttached)
	return cmd
}

func (e *Extension) Ping(ctx context.Context) *goredis.StatusCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewStatusCmd(ctx, "ping"))
	}
	return c.Ping(ctx)
}

func (e *Extension) Get(ctx context.Context, key string) *goredis.StringCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewStringCmd(ctx, "get", key))
	}
	return c.Get(ctx, key)
}

func (e *Extension) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewStatusCmd(ctx, "set", key, value))
	}
	return c.Set(ctx, key, value, expiration)
}

func (e *Extension) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewBoolCmd(ctx, "set", key, value, "nx"))
	}
	return c.SetNX(ctx, key, value, expiration)
}

func (e *Extension) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewIntCmd(ctx, "del"))
	}
	return c.Del(ctx, keys...)
}

func (e *Extension) Exists(ctx context.Context, keys ...string) *goredis.IntCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewIntCmd(ctx, "exists"))
	}
	return c.Exists(ctx, keys...)
}

func (e *Extension) Expire(ctx context.Context, key string, expiration time.Duration) *goredis.BoolCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewBoolCmd(ctx, "expire", key))
	}
	return c.Expire(ctx, key, expiration)
}

func (e *Extension) TTL(ctx context.Context, key string) *goredis.DurationCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewDurationCmd(ctx, time.Second, "ttl", key))
	}
	return c.TTL(ctx, key)
}

func (e *Extension) Incr(ctx context.Context, key string) *goredis.IntCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewIntCmd(ctx, "incr", key))
	}
	return c.Incr(ctx, key)
}

func (e *Extension) IncrBy(ctx context.Context, key string, value int64) *goredis.IntCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewIntCmd(ctx, "incrby", key, value))
	}
	return c.IncrBy(ctx, key, value)
}

func (e *Extension) Decr(ctx context.Context, key string) *goredis.IntCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewIntCmd(ctx, "decr", key))
	}
	return c.Decr(ctx, key)
}

func (e *Extension) MGet(ctx context.Context, keys ...string) *goredis.SliceCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewSliceCmd(ctx, "mget"))
	}
	return c.MGet(ctx, keys...)
}

func (e *Extension) Keys(ctx context.Context, pattern string) *goredis.StringSliceCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewStringSliceCmd(ctx, "keys", pattern))
	}
	return c.Keys(ctx, pattern)
}

func (e *Extension) HGet(ctx context.Context, key, field string) *goredis.StringCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewStringCmd(ctx, "hget", key, field))
	}
	return c.HGet(ctx, key, field)
}

func (e *Extension) HSet(ctx context.Context, key string, values ...interface{}) *goredis.IntCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewIntCmd(ctx, "hset", key))
	}
	return c.HSet(ctx, key, values...)
}

func (e *Extension) HGetAll(ctx context.Context, key string) *goredis.MapStringStringCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewMapStringStringCmd(ctx, "hgetall", key))
	}
	return c.HGetAll(ctx, key)
}

func (e *Extension) HDel(ctx context.Context, key string, fields ...string) *goredis.IntCmd {
	c := e.current()
	if c == nil {
		return detached(goredis.NewIntCmd(ctx, "hdel", key))
	}
	return c.HDel(ctx, key, fields...)
}

// Close closes the held client and any pool it was built from. The
// extension is unattached afterwards.
func (e *Extension) Close() error {
	client, pool := e.detach()
	if client == nil {
		return ErrNotAttached
	}
	e.log.Info("Closing Redis client")
	return closeClient(client, pool)
}

func (e *Extension) detach() (Client, *Pool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	client, pool := e.client, e.pool
	e.client, e.pool = nil, nil
	return client, pool
}
