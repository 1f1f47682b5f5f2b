package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisWindow is a sliding window limiter kept in Redis sorted sets, so that
// several server instances share the same failure counts.
type RedisWindow struct {
	rdb    redis.Cmdable
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisWindow creates a Redis backed limiter. Keys are stored under prefix.
func NewRedisWindow(rdb redis.Cmdable, limit int, window time.Duration, prefix string) *RedisWindow {
	return &RedisWindow{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: prefix,
		now:    time.Now,
	}
}

// expiredBefore is the inclusive upper score of attempts that left the window.
// An attempt exactly window old is expired, as in Window.
func (r *RedisWindow) expiredBefore(now time.Time) string {
	return strconv.FormatInt(now.Add(-r.window).UnixMilli(), 10)
}

// Blocked reports whether key reached the failure limit within the window.
func (r *RedisWindow) Blocked(ctx context.Context, key string) (bool, error) {
	k := r.prefix + key
	now := r.now()

	var card *redis.IntCmd

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, k, "-inf", r.expiredBefore(now))
		card = pipe.ZCard(ctx, k)
		return nil
	})
	if err != nil {
		return false, err
	}

	return card.Val() >= int64(r.limit), nil
}

// Fail records one failed attempt for key.
func (r *RedisWindow) Fail(ctx context.Context, key string) error {
	k := r.prefix + key
	now := r.now()

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, k, "-inf", r.expiredBefore(now))
		pipe.ZAdd(ctx, k, redis.Z{Score: float64(now.UnixMilli()), Member: uuid.NewString()})
		pipe.Expire(ctx, k, r.window)
		return nil
	})

	return err
}
