package memocache

import (
	"context"
	"time"

	gs "github.com/unkn0wn-root/memocache/groupstore"
	"github.com/unkn0wn-root/memocache/internal/wire"
	"github.com/unkn0wn-root/memocache/keyer"
	pr "github.com/unkn0wn-root/memocache/provider"
)

const (
	defaultGroupRetention = 30 * 24 * time.Hour
	defaultSweep          = time.Hour
)

// Cache is the group-aware backend surface shared by all wrapped functions.
// Values are raw bytes here; typed access goes through Wrap / Func.
//
// Every stored entry is framed with the epoch its group had at write time.
// Reads validate the stamp against the group's current epoch and delete
// mismatches, so InvalidateGroup is a single counter bump - no key scan,
// no enumeration of stored entries.
type Cache struct {
	provider       pr.Provider
	groups         gs.GroupStore
	log            Logger
	hooks          Hooks
	enabled        bool
	maxKeyLen      int
	computeSetCost SetCostFunc
}

func newCache(opts Options) (*Cache, error) {
	if opts.Provider == nil {
		return nil, &ConfigError{Reason: "provider is required"}
	}
	maxKeyLen := coalesce(opts.MaxKeyLength, keyer.DefaultMaxKeyLength)
	if maxKeyLen < keyer.MinMaxKeyLength {
		return nil, &ConfigError{Reason: "max key length too small to hold the hash tail"}
	}

	c := &Cache{
		provider:  opts.Provider,
		enabled:   !opts.Disabled,
		maxKeyLen: maxKeyLen,
	}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})

	if opts.ComputeSetCost != nil {
		c.computeSetCost = opts.ComputeSetCost
	} else {
		c.computeSetCost = func(_ string, _ []byte) int64 { return 1 }
	}

	if opts.GroupStore != nil {
		c.groups = opts.GroupStore
	} else {
		sweep := coalesce(opts.CleanupInterval, defaultSweep)
		retention := coalesce(opts.GroupRetention, defaultGroupRetention)
		c.groups = gs.NewLocal(sweep, retention)
	}

	return c, nil
}

func (c *Cache) Enabled() bool { return c.enabled }

func (c *Cache) Close(ctx context.Context) error {
	// Close group store first (best effort)
	if c.groups != nil {
		_ = c.groups.Close(ctx)
	}
	if c.provider != nil {
		return c.provider.Close(ctx)
	}
	return nil
}

// Get returns the payload stored under key, validated against the group's
// current epoch. Entries stamped with a stale epoch, and entries that fail
// frame validation, are deleted and reported as misses.
func (c *Cache) Get(ctx context.Context, key, group string) ([]byte, bool, error) {
	if !c.enabled {
		return nil, false, nil
	}
	ep, err := c.epoch(ctx, group)
	if err != nil {
		return nil, false, err
	}
	raw, ok, err := c.provider.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	stamped, payload, err := wire.Decode(raw)
	if err != nil {
		c.selfHeal(ctx, key, "corrupt")
		return nil, false, nil
	}
	if stamped != ep {
		c.selfHeal(ctx, key, "epoch_mismatch")
		return nil, false, nil
	}
	return payload, true, nil
}

// Set stores value under key for ttl, stamped with the group's current epoch.
// An empty group means ungrouped (epoch 0, never advanced).
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration, group string) error {
	if !c.enabled {
		return nil
	}
	ep, err := c.epoch(ctx, group)
	if err != nil {
		return err
	}
	raw := wire.Encode(ep, value)
	ok, err := c.provider.Set(ctx, key, raw, c.computeSetCost(key, raw), ttl)
	if err != nil {
		return err
	}
	if !ok {
		c.hooks.ProviderSetRejected(key)
		c.log.Debug("set rejected by provider (pressure)", Fields{"key": key})
	}
	return nil
}

// Delete removes key. Idempotent: deleting an absent key is not an error.
// Addressing never depends on group epochs, so no group argument is needed.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.enabled {
		return nil
	}
	return c.provider.Del(ctx, key)
}

// InvalidateGroup advances the group's epoch, making every entry written
// under earlier epochs unreachable. It never touches stored entries; their
// storage is reclaimed by the provider's own TTL/eviction, or by self-heal
// deletes on the next read. Advancing a group that was never used creates it.
func (c *Cache) InvalidateGroup(ctx context.Context, group string) error {
	if !c.enabled {
		return nil
	}
	ep, err := c.groups.Advance(ctx, group)
	if err != nil {
		return err
	}
	c.hooks.GroupAdvanced(group, ep)
	c.log.Debug("group invalidated", Fields{"group": group, "epoch": ep})
	return nil
}

// CurrentEpoch exposes the group's epoch for introspection. The value is
// opaque; callers should only ever compare it, never interpret it.
func (c *Cache) CurrentEpoch(ctx context.Context, group string) (uint64, error) {
	return c.groups.Current(ctx, group)
}

func (c *Cache) epoch(ctx context.Context, group string) (uint64, error) {
	if group == "" {
		return 0, nil
	}
	return c.groups.Current(ctx, group)
}

func (c *Cache) selfHeal(ctx context.Context, key, reason string) {
	_ = c.provider.Del(ctx, key)
	c.hooks.SelfHeal(key, reason)
	c.log.Debug("self-heal deleted entry", Fields{"key": key, "reason": reason})
}
