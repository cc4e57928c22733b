package reactive

import "sync/atomic"

// Handle is the stable identity of an observable object. Every table in the
// system is keyed by handles rather than by the objects themselves.
type Handle uint64

var handleCounter uint64

// NewHandle returns a process-wide unique handle. Implementations of Object
// outside this package should call it once at construction.
func NewHandle() Handle {
	return Handle(atomic.AddUint64(&handleCounter, 1))
}

// Object is an observable container. Plain data lives in a Record, and a
// Proxy intercepts the same operations on behalf of a ReactiveSystem.
type Object interface {
	Handle() Handle
	Has(key string) bool
	Get(key string) any
	Set(key string, value any) bool
	Delete(key string) bool
	Keys() []string
}

// Reflector is implemented by objects whose reads and writes depend on the
// object they were reached through, e.g. accessor properties.
type Reflector interface {
	ReflectGet(key string, receiver Object) any
	ReflectSet(key string, value any, receiver Object) bool
}

type ErrFn func() error

type OnErrorFunc func(from *EffectRunner, err error)

type ChangeKind uint8

const (
	TriggerAdd ChangeKind = iota
	TriggerSet
)

func (k ChangeKind) String() string {
	switch k {
	case TriggerAdd:
		return "add"
	case TriggerSet:
		return "set"
	default:
		return "unknown"
	}
}

func reflectGet(target Object, key string, receiver Object) any {
	if r, ok := target.(Reflector); ok {
		return r.ReflectGet(key, receiver)
	}
	return target.Get(key)
}

func reflectSet(target Object, key string, value any, receiver Object) bool {
	if r, ok := target.(Reflector); ok {
		return r.ReflectSet(key, value, receiver)
	}
	return target.Set(key, value)
}
