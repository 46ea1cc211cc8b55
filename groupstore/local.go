package groupstore

import (
	"context"
	"sync"
	"time"
)

type localEntry struct {
	Epoch     uint64
	UpdatedAt time.Time // set only on advances
}

// Local keeps group epochs in-process (default).
// Optional cleanup loop prunes groups not advanced within the retention
// window. Pruning resets a group to epoch 0, so the retention must be far
// longer than any entry TTL written under that group.
type Local struct {
	mu     sync.RWMutex
	groups map[string]localEntry
	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup

	retention time.Duration
}

var _ GroupStore = (*Local)(nil)

func NewLocal(cleanupInterval, retention time.Duration) *Local {
	s := &Local{
		groups:    make(map[string]localEntry),
		retention: retention,
	}
	if cleanupInterval > 0 && retention > 0 {
		s.ticker = time.NewTicker(cleanupInterval)
		s.stopCh = make(chan struct{})
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-s.ticker.C:
					s.Cleanup(retention)
				case <-s.stopCh:
					return
				}
			}
		}()
	}
	return s
}

func (s *Local) Current(_ context.Context, group string) (uint64, error) {
	s.mu.RLock()
	e, ok := s.groups[group]
	s.mu.RUnlock()
	if !ok {
		return 0, nil
	}
	return e.Epoch, nil
}

func (s *Local) Advance(_ context.Context, group string) (uint64, error) {
	now := time.Now()
	s.mu.Lock()
	e := s.groups[group]
	e.Epoch++
	e.UpdatedAt = now
	s.groups[group] = e
	s.mu.Unlock()
	return e.Epoch, nil
}

func (s *Local) Cleanup(retention time.Duration) {
	if retention <= 0 {
		return
	}
	cutoff := time.Now().Add(-retention)

	s.mu.Lock()
	for g, e := range s.groups {
		if !e.UpdatedAt.IsZero() && e.UpdatedAt.Before(cutoff) {
			delete(s.groups, g)
		}
	}
	s.mu.Unlock()
}

func (s *Local) Close(_ context.Context) error {
	if s.stopCh != nil {
		close(s.stopCh)
		if s.ticker != nil {
			s.ticker.Stop() // stop ticker before waiting
		}
		s.wg.Wait()
	}
	return nil
}
