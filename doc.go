// Package memocache memoizes function results behind human-readable,
// sanitized cache keys, with group-based bulk invalidation via per-group
// epochs. Single-key reads never return entries from an invalidated group
// epoch; mismatches are deleted on read (self-heal).
//
// Components:
//   - Provider: byte store with TTL (e.g. Ristretto, BigCache, Redis).
//   - Codec[V]: (de)serializes V <-> []byte.
//   - GroupStore: epoch counter per group name. Local (in-process) by
//     default, optional Redis implementation for multi-replica consistency.
//   - keyer: builds "[cached]<identity>(<args>)" keys, sanitized to the
//     backend's key constraints; identity and argument strategies pluggable.
//
// Wrap pattern:
//
//	loadUser := func(ctx context.Context, args ...any) (User, error) {
//	    return db.LoadUser(ctx, args[0].(string))
//	}
//	f, _ := memocache.Wrap(cache, loadUser, memocache.FuncOptions[User]{
//	    TTL:   time.Minute,
//	    Group: "users",
//	})
//	u, err := f.Call(ctx, "u1")   // compute on miss, cached afterwards
//	_ = f.Invalidate(ctx, "u1")   // drop this argument set
//	_ = cache.InvalidateGroup(ctx, "users") // drop the whole group, O(1)
package memocache
