package reactive

import (
	"cmp"
	"runtime"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
)

// track records that the active effect, if any, read key on target.
func (rs *ReactiveSystem) track(target Object, key string) {
	effect := rs.ActiveEffect()
	if effect == nil {
		return
	}

	h := target.Handle()
	rs.mu.Lock()
	depsMap, ok := rs.targets[h]
	if !ok {
		depsMap = map[string]mapset.Set[*EffectRunner]{}
		rs.targets[h] = depsMap
		rs.releaseWith(target)
	}
	deps, ok := depsMap[key]
	if !ok {
		deps = mapset.NewThreadUnsafeSet[*EffectRunner]()
		depsMap[key] = deps
	}
	added := deps.Add(effect)
	rs.mu.Unlock()

	if added {
		rs.logger.Debug("dependency tracked", "target", h, "key", key, "effect", effect.name)
	}
}

// releaseWith drops the ledger entry of target once it is collected. Only
// the object types of this package can be watched.
func (rs *ReactiveSystem) releaseWith(target Object) {
	h := target.Handle()
	switch t := target.(type) {
	case *Record:
		runtime.AddCleanup(t, rs.forgetTarget, h)
	case *Proxy:
		runtime.AddCleanup(t, rs.forgetTarget, h)
	}
}

// trigger re-runs every effect that read key on target. The kind of change
// is only reported.
func (rs *ReactiveSystem) trigger(target Object, kind ChangeKind, key string) {
	h := target.Handle()
	rs.mu.Lock()
	depsMap, ok := rs.targets[h]
	if !ok {
		rs.mu.Unlock()
		return
	}
	deps, ok := depsMap[key]
	if !ok {
		rs.mu.Unlock()
		return
	}
	effects := deps.ToSlice()
	rs.mu.Unlock()

	rs.logger.Debug("effects triggered", "target", h, "key", key, "kind", kind, "count", len(effects))
	for _, effect := range effects {
		if err := effect.Run(); err != nil {
			rs.handleError(effect, err)
		}
	}
}

// Dependents returns the effects recorded for key on target. A Proxy of this
// system is resolved to its target first.
func (rs *ReactiveSystem) Dependents(target Object, key string) []*EffectRunner {
	if raw, ok := rs.ToRaw(target).(Object); ok {
		target = raw
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	deps, ok := rs.targets[target.Handle()][key]
	if !ok {
		return nil
	}
	effects := deps.ToSlice()
	slices.SortFunc(effects, func(a, b *EffectRunner) int {
		return cmp.Compare(a.id, b.id)
	})
	return effects
}

type LedgerEntry struct {
	Target  Handle
	Key     string
	Effects []string
}

// Snapshot lists the ledger ordered by target and key, with effect names in
// creation order.
func (rs *ReactiveSystem) Snapshot() []LedgerEntry {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	var entries []LedgerEntry
	for h, depsMap := range rs.targets {
		for key, deps := range depsMap {
			effects := deps.ToSlice()
			slices.SortFunc(effects, func(a, b *EffectRunner) int {
				return cmp.Compare(a.id, b.id)
			})
			names := make([]string, len(effects))
			for i, e := range effects {
				names[i] = e.name
			}
			entries = append(entries, LedgerEntry{Target: h, Key: key, Effects: names})
		}
	}
	slices.SortFunc(entries, func(a, b LedgerEntry) int {
		if c := cmp.Compare(a.Target, b.Target); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return entries
}

type Stats struct {
	Targets  int
	Keys     int
	Edges    int
	Wrappers int
}

func (rs *ReactiveSystem) Stats() Stats {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	s := Stats{
		Targets:  len(rs.targets),
		Wrappers: len(rs.toRaw),
	}
	for _, depsMap := range rs.targets {
		s.Keys += len(depsMap)
		for _, deps := range depsMap {
			s.Edges += deps.Cardinality()
		}
	}
	return s
}

// Fingerprint digests the ledger shape. Targets are numbered by their order
// in the ledger rather than by handle, so two systems that tracked the same
// keys with equally named effects share a fingerprint.
func (rs *ReactiveSystem) Fingerprint() uint64 {
	d := xxhash.New()
	var (
		buf     []byte
		ordinal uint64
		last    Handle
	)
	for i, entry := range rs.Snapshot() {
		if i > 0 && entry.Target != last {
			ordinal++
		}
		last = entry.Target

		buf = strconv.AppendUint(buf[:0], ordinal, 10)
		buf = append(buf, '/')
		buf = append(buf, entry.Key...)
		for _, name := range entry.Effects {
			buf = append(buf, ':')
			buf = append(buf, name...)
		}
		buf = append(buf, '\n')
		d.Write(buf)
	}
	return d.Sum64()
}
