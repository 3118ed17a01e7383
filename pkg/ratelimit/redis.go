package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"airline-api/pkg/clock"

	"github.com/redis/go-redis/v9"
)

// fixedWindow checks every window first and only then counts the request in
// all of them, so a rejected request consumes nothing. KEYS holds one key per
// limit; ARGV holds count and window length in milliseconds for each.
var fixedWindow = redis.NewScript(`
	for i = 1, #KEYS do
		local used = tonumber(redis.call('GET', KEYS[i]) or '0')
		if used >= tonumber(ARGV[2 * i - 1]) then
			local ttl = redis.call('PTTL', KEYS[i])
			if ttl < 0 then
				ttl = tonumber(ARGV[2 * i])
			end
			return {0, ttl}
		end
	end

	for i = 1, #KEYS do
		if redis.call('INCR', KEYS[i]) == 1 then
			redis.call('PEXPIRE', KEYS[i], ARGV[2 * i])
		end
	end

	return {1, 0}
`)

type redisStore struct {
	client redis.UniversalClient
	limits []Limit
	prefix string
}

// NewRedisStore counts requests in fixed windows shared by every process
// using the same Redis.
func NewRedisStore(client redis.UniversalClient, limits []Limit, prefix string) Store {
	return &redisStore{client: client, limits: limits, prefix: prefix}
}

func (s *redisStore) keys(key string) []string {
	// The hash tag keeps all windows of one client on the same cluster slot.
	keys := make([]string, len(s.limits))
	for i, l := range s.limits {
		keys[i] = fmt.Sprintf("%s:{%s}:%d:%d", s.prefix, key, l.Count, l.Period.Milliseconds())
	}
	return keys
}

func (s *redisStore) Allow(ctx context.Context, key string) (Decision, error) {
	args := make([]any, 0, 2*len(s.limits))
	for _, l := range s.limits {
		args = append(args, l.Count, l.Period.Milliseconds())
	}

	result, err := fixedWindow.Run(ctx, s.client, s.keys(key), args...).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit %s: %w", key, err)
	}
	if len(result) != 2 {
		return Decision{}, fmt.Errorf("rate limit %s: unexpected script result %v", key, result)
	}

	if result[0] == 1 {
		return Decision{Allowed: true}, nil
	}
	return Decision{RetryAfter: time.Duration(result[1]) * time.Millisecond}, nil
}

func (s *redisStore) Close() error {
	return s.client.Close()
}

// NewStore picks the backend from a storage URI: "memory://" keeps counters
// in process, "redis://" and "rediss://" use Redis.
func NewStore(uri string, limits []Limit, clk clock.Clock) (Store, error) {
	switch {
	case uri == "" || strings.HasPrefix(uri, "memory://"):
		return NewMemoryStore(limits, clk), nil
	case strings.HasPrefix(uri, "redis://"), strings.HasPrefix(uri, "rediss://"):
		opts, err := redis.ParseURL(uri)
		if err != nil {
			return nil, fmt.Errorf("parse rate limit storage uri: %w", err)
		}
		return NewRedisStore(redis.NewClient(opts), limits, "ratelimit"), nil
	default:
		return nil, fmt.Errorf("unsupported rate limit storage %q", uri)
	}
}
