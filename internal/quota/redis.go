package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "mathcat:quota:"

// counterTTL outlives the day so a counter never expires mid-day in any
// timezone.
const counterTTL = 48 * time.Hour

// Dial connects to redis and verifies the connection.
func Dial(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// Redis is a Limiter shared by every server instance pointing at the same
// redis.
type Redis struct {
	client redis.Cmdable
	limit  int
	now    func() time.Time
}

// NewRedis returns a redis-backed Limiter. A limit <= 0 disables limiting.
func NewRedis(client redis.Cmdable, limit int, opts ...Option) Limiter {
	if limit <= 0 {
		return Unlimited{}
	}
	o := buildOptions(opts)
	return &Redis{client: client, limit: limit, now: o.now}
}

func (r *Redis) Allow(ctx context.Context, key string) (int, error) {
	k := counterKey(key, r.now())

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.Expire(ctx, k, counterTTL)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("quota incr %s: %w", k, err)
	}

	n := int(incr.Val())
	if n > r.limit {
		// Give the slot back so rejected calls don't inflate the count.
		if err := r.client.Decr(ctx, k).Err(); err != nil {
			return 0, fmt.Errorf("quota decr %s: %w", k, err)
		}
		return 0, ErrQuotaExceeded
	}
	return r.limit - n, nil
}

func counterKey(key string, now time.Time) string {
	return keyPrefix + key + ":" + now.Format(dayLayout)
}
