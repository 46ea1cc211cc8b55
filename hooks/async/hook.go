// Package asynchook decouples hook delivery from the cache hot path: events
// are queued and handed to the inner Hooks on worker goroutines. The queue
// drops events when full rather than blocking a cache call.
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{SelfHealEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/memocache"
)

type Hooks struct {
	inner memocache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ memocache.Hooks = (*Hooks)(nil)

func New(inner memocache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) SelfHeal(k, r string) { h.try(func() { h.inner.SelfHeal(k, r) }) }

func (h *Hooks) ProviderSetRejected(k string) { h.try(func() { h.inner.ProviderSetRejected(k) }) }

func (h *Hooks) GroupAdvanced(g string, e uint64) {
	h.try(func() { h.inner.GroupAdvanced(g, e) })
}
