package reactive

import "strconv"

// EffectRunner is a tracked computation. Every observed property it reads
// while running makes it a dependent of that property.
type EffectRunner struct {
	rs   *ReactiveSystem
	id   uint64
	name string
	fn   ErrFn
	runs uint64
	err  error
}

type EffectOption func(e *EffectRunner)

func WithName(name string) EffectOption {
	return func(e *EffectRunner) {
		if name != "" {
			e.name = name
		}
	}
}

// Effect creates a runner for fn and runs it once to collect its initial
// dependencies. The runner is returned even when that first run fails.
func Effect(rs *ReactiveSystem, fn ErrFn, opts ...EffectOption) (*EffectRunner, error) {
	rs.effectCount++
	e := &EffectRunner{
		rs: rs,
		id: rs.effectCount,
		fn: fn,
	}
	e.name = "effect-" + strconv.FormatUint(e.id, 10)
	for _, opt := range opts {
		opt(e)
	}

	return e, e.Run()
}

// Run executes the effect again, tracking what it reads. The effect's error
// is returned unchanged.
func (e *EffectRunner) Run() error {
	return e.rs.run(e)
}

func (e *EffectRunner) ID() uint64 {
	return e.id
}

func (e *EffectRunner) Name() string {
	return e.name
}

// Err is the result of the latest run, whoever started it.
func (e *EffectRunner) Err() error {
	return e.err
}

// Runs counts every execution, the first one included.
func (e *EffectRunner) Runs() uint64 {
	return e.runs
}

// run makes e the active effect for the duration of its body. The stack is
// restored even if the body panics.
func (rs *ReactiveSystem) run(e *EffectRunner) error {
	rs.activeEffectStack = append(rs.activeEffectStack, e)
	defer func() {
		last := len(rs.activeEffectStack) - 1
		rs.activeEffectStack[last] = nil
		rs.activeEffectStack = rs.activeEffectStack[:last]
	}()

	e.runs++
	e.err = nil
	e.err = e.fn()
	return e.err
}
