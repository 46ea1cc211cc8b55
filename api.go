package memocache

import (
	"context"
	"time"

	"github.com/unkn0wn-root/memocache/codec"
	gs "github.com/unkn0wn-root/memocache/groupstore"
	"github.com/unkn0wn-root/memocache/keyer"
	pr "github.com/unkn0wn-root/memocache/provider"
)

// Kwargs marks a trailing keyword-argument map in a wrapped call's argument
// list: f.Call(ctx, 2, memocache.Kwargs{"foo": "hello"}).
type Kwargs = keyer.Kwargs

// SetCostFunc lets cost-based providers (Ristretto) weigh entries.
type SetCostFunc func(key string, raw []byte) int64

// Options tune the backend surface shared by all wrapped functions.
// Only Provider is required; others have sensible defaults.
type Options struct {
	// Required
	Provider pr.Provider

	GroupStore      gs.GroupStore // nil => in-process groupstore.Local
	Logger          Logger        // if nil, NopLogger is used
	Hooks           Hooks         // if nil, NopHooks is used
	MaxKeyLength    int           // sanitizer bound; 0 => 250, min 34
	CleanupInterval time.Duration // local group store sweep; 0 => 1h
	GroupRetention  time.Duration // local group store retention; 0 => 30d
	Disabled        bool          // default false (enabled)
	ComputeSetCost  SetCostFunc   // default 1
}

// New builds the shared Cache surface. All validation errors are *ConfigError.
func New(opts Options) (*Cache, error) {
	return newCache(opts)
}

// Fn is the callable shape Wrap memoizes. Positional arguments travel in the
// variadic list; an optional trailing Kwargs value carries keywords.
type Fn[V any] func(ctx context.Context, args ...any) (V, error)

// FuncOptions configure one wrapped callable.
type FuncOptions[V any] struct {
	// Required. TTL for every entry this function stores; fixed at wrap time.
	TTL time.Duration

	Group   string          // optional invalidation group
	Codec   codec.Codec[V]  // nil => codec.JSON[V]{}
	FuncKey keyer.FuncKeyer // nil => keyer.DefaultFuncKey{}
	ArgKey  keyer.ArgKeyer  // nil => keyer.DefaultArgKey{}
}

// Wrap memoizes fn behind c. The returned handle is the only way to reach
// the wrapped function's cache operations; fn itself is never mutated.
// Identity resolution runs once, here - an empty resolved identity, a nil
// fn, or a non-positive TTL is a *ConfigError.
func Wrap[V any](c *Cache, fn Fn[V], opts FuncOptions[V]) (*Func[V], error) {
	if c == nil {
		return nil, &ConfigError{Reason: "cache is required"}
	}
	if fn == nil {
		return nil, &ConfigError{Reason: "fn is required"}
	}
	if opts.TTL <= 0 {
		return nil, &ConfigError{Reason: "ttl is required"}
	}

	fk := opts.FuncKey
	if fk == nil {
		fk = keyer.DefaultFuncKey{}
	}
	ident := fk.FuncKey(any(fn))
	if ident == "" {
		return nil, &ConfigError{Reason: "resolved function identity is empty"}
	}

	cd := opts.Codec
	if cd == nil {
		cd = codec.JSON[V]{}
	}
	ak := opts.ArgKey
	if ak == nil {
		ak = keyer.DefaultArgKey{}
	}

	return &Func[V]{
		c:      c,
		fn:     fn,
		ident:  ident,
		ttl:    opts.TTL,
		group:  opts.Group,
		codec:  cd,
		argKey: ak,
	}, nil
}
