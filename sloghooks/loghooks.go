package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/memocache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	SelfHealEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix: keys are built from
	// function names and call arguments, which may carry user data.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr atomic.Uint64
}

var _ memocache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) SelfHeal(key, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("memocache.self_heal",
		"key", h.redact(key),
		"reason", reason)
}

func (h *Hooks) ProviderSetRejected(key string) {
	if h.l == nil {
		return
	}
	h.l.Warn("memocache.provider_set_rejected",
		"key", h.redact(key))
}

func (h *Hooks) GroupAdvanced(group string, epoch uint64) {
	if h.l == nil {
		return
	}
	h.l.Info("memocache.group_advanced",
		"group", group,
		"epoch", epoch)
}
