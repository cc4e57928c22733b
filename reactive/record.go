package reactive

import (
	"maps"
	"slices"
)

// Accessor is a computed property. Stored as a Record value, its Get is
// called with the object the read went through, so a getter reached through
// a Proxy reads the other properties through that same Proxy.
type Accessor struct {
	Get func(receiver Object) any
	Set func(receiver Object, value any) bool
}

// Record is a plain, map-backed data object.
type Record struct {
	handle Handle
	values map[string]any
	frozen bool
}

// NewRecord builds a Record from fields. Nested map[string]any values become
// nested Records so the whole graph can be observed.
func NewRecord(fields map[string]any) *Record {
	r := &Record{
		handle: NewHandle(),
		values: make(map[string]any, len(fields)),
	}
	for k, v := range fields {
		if m, ok := v.(map[string]any); ok {
			v = NewRecord(m)
		}
		r.values[k] = v
	}
	return r
}

func (r *Record) Handle() Handle {
	return r.handle
}

func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the own keys in sorted order.
func (r *Record) Keys() []string {
	return slices.Sorted(maps.Keys(r.values))
}

func (r *Record) Len() int {
	return len(r.values)
}

func (r *Record) Get(key string) any {
	return r.ReflectGet(key, r)
}

func (r *Record) Set(key string, value any) bool {
	return r.ReflectSet(key, value, r)
}

func (r *Record) ReflectGet(key string, receiver Object) any {
	v, ok := r.values[key]
	if !ok {
		return nil
	}
	if a, ok := v.(Accessor); ok {
		if a.Get == nil {
			return nil
		}
		return a.Get(receiver)
	}
	return v
}

func (r *Record) ReflectSet(key string, value any, receiver Object) bool {
	if current, ok := r.values[key]; ok {
		if a, ok := current.(Accessor); ok {
			if a.Set == nil {
				return false
			}
			return a.Set(receiver, value)
		}
	}
	if r.frozen {
		return false
	}
	r.values[key] = value
	return true
}

func (r *Record) Delete(key string) bool {
	if r.frozen {
		return false
	}
	delete(r.values, key)
	return true
}

// Freeze rejects every later Set and Delete that is not handled by an
// accessor's setter.
func (r *Record) Freeze() *Record {
	r.frozen = true
	return r
}

func (r *Record) Frozen() bool {
	return r.frozen
}
