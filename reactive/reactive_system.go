package reactive

import (
	"log/slog"
	"sync"
	"weak"

	mapset "github.com/deckarep/golang-set/v2"
)

type ReactiveSystem struct {
	// mu guards the lookup tables and the ledger against the runtime's cleanup
	// goroutine. It is never held while an effect runs.
	mu      sync.Mutex
	toProxy map[Handle]weak.Pointer[Proxy]
	toRaw   map[Handle]Handle
	targets map[Handle]map[string]mapset.Set[*EffectRunner]

	activeEffectStack []*EffectRunner
	effectCount       uint64

	logger  *slog.Logger
	onError OnErrorFunc
}

type Option func(rs *ReactiveSystem)

func WithLogger(logger *slog.Logger) Option {
	return func(rs *ReactiveSystem) {
		if logger != nil {
			rs.logger = logger
		}
	}
}

// WithOnError receives the errors of effects re-run by a write. Without it
// they are logged at error level.
func WithOnError(onError OnErrorFunc) Option {
	return func(rs *ReactiveSystem) {
		rs.onError = onError
	}
}

func CreateReactiveSystem(opts ...Option) *ReactiveSystem {
	rs := &ReactiveSystem{
		toProxy: map[Handle]weak.Pointer[Proxy]{},
		toRaw:   map[Handle]Handle{},
		targets: map[Handle]map[string]mapset.Set[*EffectRunner]{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// ActiveEffect returns the effect whose reads are currently being tracked.
func (rs *ReactiveSystem) ActiveEffect() *EffectRunner {
	if len(rs.activeEffectStack) == 0 {
		return nil
	}
	return rs.activeEffectStack[len(rs.activeEffectStack)-1]
}

func (rs *ReactiveSystem) handleError(e *EffectRunner, err error) {
	if rs.onError != nil {
		rs.onError(e, err)
		return
	}
	rs.logger.Error("effect failed", "effect", e.name, "error", err)
}

type proxyKeys struct {
	target Handle
	proxy  Handle
}

// forgetProxy runs after a wrapper is collected. A newer wrapper for the
// same target may already be registered, so only a dead entry is removed.
func (rs *ReactiveSystem) forgetProxy(keys proxyKeys) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if wp, ok := rs.toProxy[keys.target]; ok && wp.Value() == nil {
		delete(rs.toProxy, keys.target)
	}
	delete(rs.toRaw, keys.proxy)
}

// forgetTarget runs after a tracked target is collected.
func (rs *ReactiveSystem) forgetTarget(h Handle) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	delete(rs.targets, h)
}
