package memocache

import "errors"

// ErrNoCachedValue is returned by RequireCached when no entry is present.
// It is an expected control-flow signal for cache-only call sites (read
// replicas, request paths where recomputation is forbidden), not a failure
// of the cache itself.
var ErrNoCachedValue = errors.New("memocache: no cached value")

// ConfigError reports an invalid configuration detected at New or Wrap time.
// It is never returned per call.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "memocache: invalid config: " + e.Reason }
