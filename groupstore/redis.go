package groupstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis shares group epochs across processes and survives restarts.
// Optionally, a TTL can be applied to epoch keys to prevent unbounded growth;
// each Advance refreshes it. If an epoch key expires, readers observe epoch 0
// and entries stamped with later epochs self-heal on read.
type Redis struct {
	rdb redis.UniversalClient
	ns  string        // logical namespace; keep distinct per application keyspace
	ttl time.Duration // optional TTL for epoch keys; 0 disables expiry
}

var _ GroupStore = (*Redis)(nil)

// NewRedis creates a Redis-backed group store without epoch-key expiry.
func NewRedis(client redis.UniversalClient, namespace string) *Redis {
	return &Redis{rdb: client, ns: namespace}
}

// NewRedisWithTTL creates a Redis-backed group store whose epoch keys expire
// after ttl of inactivity. If ttl <= 0, keys do not expire.
func NewRedisWithTTL(client redis.UniversalClient, namespace string, ttl time.Duration) *Redis {
	return &Redis{rdb: client, ns: namespace, ttl: ttl}
}

func (s *Redis) key(group string) string { return "group:" + s.ns + ":" + group }

// Current returns the group's epoch. Missing keys are epoch 0.
func (s *Redis) Current(ctx context.Context, group string) (uint64, error) {
	res, err := s.rdb.Get(ctx, s.key(group)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	u, err := strconv.ParseUint(res, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis group epoch parse: %w", err)
	}
	return u, nil
}

// Advance atomically increments the epoch and (optionally) refreshes TTL.
// When ttl > 0, INCR + EXPIRE are pipelined in a single round-trip and the
// INCR result is captured from the pipeline.
func (s *Redis) Advance(ctx context.Context, group string) (uint64, error) {
	k := s.key(group)

	if s.ttl <= 0 {
		v, err := s.rdb.Incr(ctx, k).Result()
		if err != nil {
			return 0, err
		}
		return uint64(v), nil
	}

	var incr *redis.IntCmd
	_, err := s.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return uint64(incr.Val()), nil
}

// Cleanup is not applicable for Redis (expiry handles it when TTL is set).
func (s *Redis) Cleanup(time.Duration) {}

// Close closes the underlying Redis client.
func (s *Redis) Close(context.Context) error { return s.rdb.Close() }
