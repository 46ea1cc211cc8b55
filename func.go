package memocache

import (
	"context"
	"time"

	"github.com/unkn0wn-root/memocache/codec"
	"github.com/unkn0wn-root/memocache/keyer"
)

// Func is the handle returned by Wrap. It carries the wrapped callable's
// cache operations; the callable itself is untouched.
//
// No single-flight de-duplication is performed: concurrent misses for the
// same key each invoke the wrapped callable and the last store wins. Callers
// needing dog-pile protection should layer it around Call.
type Func[V any] struct {
	c      *Cache
	fn     Fn[V]
	ident  string
	ttl    time.Duration
	group  string
	codec  codec.Codec[V]
	argKey keyer.ArgKeyer
}

// Call is the memoized call path: key -> lookup -> hit returns the cached
// value; miss invokes the wrapped callable, stores the result, returns it.
// Backend failures propagate unchanged - there is no fallback to a direct
// call, so a broken backend is visible instead of silently absorbed.
func (f *Func[V]) Call(ctx context.Context, args ...any) (V, error) {
	var zero V
	if !f.c.enabled {
		return f.fn(ctx, args...)
	}

	key := f.CacheKey(args...)
	payload, ok, err := f.c.Get(ctx, key, f.group)
	if err != nil {
		return zero, err
	}
	if ok {
		v, derr := f.codec.Decode(payload)
		if derr == nil {
			f.c.log.Debug("cache HIT", Fields{"key": key})
			return v, nil
		}
		f.c.selfHeal(ctx, key, "value_decode")
	}

	f.c.log.Debug("cache MISS", Fields{"key": key})
	v, err := f.fn(ctx, args...)
	if err != nil {
		return zero, err
	}
	if err := f.store(ctx, key, v); err != nil {
		return zero, err
	}
	return v, nil
}

// Invalidate drops the entry for exactly these arguments.
// Idempotent: invalidating a never-cached argument set succeeds.
func (f *Func[V]) Invalidate(ctx context.Context, args ...any) error {
	if !f.c.enabled {
		return nil
	}
	key := f.CacheKey(args...)
	if err := f.c.Delete(ctx, key); err != nil {
		return err
	}
	f.c.log.Debug("cache DELETE", Fields{"key": key})
	return nil
}

// ForceRecalc bypasses the lookup: it always invokes the wrapped callable,
// stores the fresh value, and returns it. Useful for refresh-ahead patterns.
func (f *Func[V]) ForceRecalc(ctx context.Context, args ...any) (V, error) {
	var zero V
	if !f.c.enabled {
		return f.fn(ctx, args...)
	}
	v, err := f.fn(ctx, args...)
	if err != nil {
		return zero, err
	}
	if err := f.store(ctx, f.CacheKey(args...), v); err != nil {
		return zero, err
	}
	return v, nil
}

// RequireCached returns the cached value or ErrNoCachedValue; it never
// invokes the wrapped callable. Presence is explicit in the stored frame,
// so a cached zero value is a hit, not a miss.
func (f *Func[V]) RequireCached(ctx context.Context, args ...any) (V, error) {
	var zero V
	if !f.c.enabled {
		return zero, ErrNoCachedValue
	}

	key := f.CacheKey(args...)
	payload, ok, err := f.c.Get(ctx, key, f.group)
	if err != nil {
		return zero, err
	}
	if !ok {
		f.c.log.Info("required cache entry missing", Fields{"key": key})
		return zero, ErrNoCachedValue
	}
	v, derr := f.codec.Decode(payload)
	if derr != nil {
		f.c.selfHeal(ctx, key, "value_decode")
		return zero, ErrNoCachedValue
	}
	return v, nil
}

// CacheKey returns the key these arguments resolve to, without touching the
// backend. Deterministic: identical arguments always yield an identical key.
func (f *Func[V]) CacheKey(args ...any) string {
	pos, kw := splitArgs(args)
	raw := keyer.Build(f.ident, f.argKey.ArgKey(pos, kw))
	// Sanitize only fails on a max length below the hash tail, which New
	// rejects up front.
	k, _ := keyer.Sanitize(raw, f.c.maxKeyLen)
	return k
}

func (f *Func[V]) store(ctx context.Context, key string, v V) error {
	payload, err := f.codec.Encode(v)
	if err != nil {
		return err
	}
	if err := f.c.Set(ctx, key, payload, f.ttl, f.group); err != nil {
		return err
	}
	f.c.log.Debug("cache SET", Fields{"key": key})
	return nil
}

// splitArgs peels a trailing Kwargs value off the variadic list.
func splitArgs(args []any) ([]any, keyer.Kwargs) {
	if n := len(args); n > 0 {
		if kw, ok := args[n-1].(keyer.Kwargs); ok {
			return args[:n-1], kw
		}
	}
	return args, nil
}
