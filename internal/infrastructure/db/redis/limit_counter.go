package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const limitKeyPrefix = "ratelimit:"

// LimitCounter is an httprate.LimitCounter backed by Redis so every API
// instance shares one sliding window per client. Redis failures fail open.
type LimitCounter struct {
	client       *redis.Client
	log          zerolog.Logger
	windowLength time.Duration
	timeout      time.Duration
}

func NewLimitCounter(client *redis.Client, log zerolog.Logger) *LimitCounter {
	return &LimitCounter{client: client, log: log, windowLength: time.Minute, timeout: defaultTimeout}
}

func (c *LimitCounter) Config(_ int, windowLength time.Duration) {
	c.windowLength = windowLength
}

func (c *LimitCounter) Increment(key string, currentWindow time.Time) error {
	return c.IncrementBy(key, currentWindow, 1)
}

func (c *LimitCounter) IncrementBy(key string, currentWindow time.Time, amount int) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	k := c.key(key, currentWindow)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.IncrBy(ctx, k, int64(amount))
		pipe.Expire(ctx, k, 3*c.windowLength)
		return nil
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("rate limit increment failed")
	}
	return nil
}

// Get returns the counts of the current and previous windows.
func (c *LimitCounter) Get(key string, currentWindow, previousWindow time.Time) (int, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	vals, err := c.client.MGet(ctx, c.key(key, currentWindow), c.key(key, previousWindow)).Result()
	if err != nil {
		c.log.Warn().Err(err).Msg("rate limit lookup failed")
		return 0, 0, nil
	}
	curr, err := toCount(vals[0])
	if err != nil {
		return 0, 0, err
	}
	prev, err := toCount(vals[1])
	if err != nil {
		return 0, 0, err
	}
	return curr, prev, nil
}

func (c *LimitCounter) key(key string, window time.Time) string {
	return fmt.Sprintf("%s%s:%d", limitKeyPrefix, key, window.Unix())
}

func toCount(v any) (int, error) {
	if v == nil {
		return 0, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, errors.New("unexpected rate limit counter type")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse rate limit counter: %w", err)
	}
	return n, nil
}
