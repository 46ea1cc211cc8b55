package memocache

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// A stored entry was deleted by the cache on read.
	// reason ∈ {"corrupt", "epoch_mismatch", "value_decode"}
	SelfHeal(key, reason string)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(key string)

	// A group was invalidated; epoch is the new value.
	GroupAdvanced(group string, epoch uint64)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SelfHeal(string, string)      {}
func (NopHooks) ProviderSetRejected(string)   {}
func (NopHooks) GroupAdvanced(string, uint64) {}
