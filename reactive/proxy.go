package reactive

import (
	"reflect"
	"runtime"
	"weak"
)

// Proxy intercepts reads, writes and deletes on a target Object. Reads are
// tracked against the active effect, writes trigger the effects that read
// the written key.
type Proxy struct {
	rs     *ReactiveSystem
	handle Handle
	target Object
}

// Reactive makes value observable. Values that are not Objects, and nil
// Objects, are returned unchanged. Wrapping the same target twice returns the
// same Proxy, and wrapping a Proxy of this system returns it as is.
func Reactive(rs *ReactiveSystem, value any) any {
	target, ok := asObject(value)
	if !ok {
		return value
	}
	return rs.createReactiveObject(target)
}

// Observe is Reactive for values already known to be Objects.
func Observe(rs *ReactiveSystem, target Object) Object {
	if _, ok := asObject(target); !ok {
		return target
	}
	return rs.createReactiveObject(target)
}

func asObject(value any) (Object, bool) {
	obj, ok := value.(Object)
	if !ok {
		return nil, false
	}
	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return nil, false
		}
	}
	return obj, true
}

func (rs *ReactiveSystem) createReactiveObject(target Object) Object {
	h := target.Handle()

	rs.mu.Lock()
	if wp, ok := rs.toProxy[h]; ok {
		if p := wp.Value(); p != nil {
			rs.mu.Unlock()
			return p
		}
	}
	if _, ok := rs.toRaw[h]; ok {
		rs.mu.Unlock()
		return target
	}

	p := &Proxy{
		rs:     rs,
		handle: NewHandle(),
		target: target,
	}
	rs.toProxy[h] = weak.Make(p)
	rs.toRaw[p.handle] = h
	rs.mu.Unlock()

	runtime.AddCleanup(p, rs.forgetProxy, proxyKeys{target: h, proxy: p.handle})
	return p
}

// ToRaw returns the target behind a Proxy of this system, or value itself.
func (rs *ReactiveSystem) ToRaw(value any) any {
	p, ok := value.(*Proxy)
	if !ok || p == nil || p.rs != rs {
		return value
	}
	return p.target
}

// IsReactive reports whether value is a Proxy created by this system.
func (rs *ReactiveSystem) IsReactive(value any) bool {
	p, ok := value.(*Proxy)
	if !ok || p == nil {
		return false
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	_, ok = rs.toRaw[p.handle]
	return ok
}

func (p *Proxy) Handle() Handle {
	return p.handle
}

func (p *Proxy) Target() Object {
	return p.target
}

func (p *Proxy) Has(key string) bool {
	return p.target.Has(key)
}

func (p *Proxy) Keys() []string {
	return p.target.Keys()
}

func (p *Proxy) Get(key string) any {
	return p.ReflectGet(key, p)
}

func (p *Proxy) Set(key string, value any) bool {
	return p.ReflectSet(key, value, p)
}

func (p *Proxy) ReflectGet(key string, receiver Object) any {
	result := reflectGet(p.target, key, receiver)
	p.rs.track(p.target, key)
	return Reactive(p.rs, result)
}

func (p *Proxy) ReflectSet(key string, value any, receiver Object) bool {
	hadKey := p.target.Has(key)
	oldValue := p.target.Get(key)
	if !reflectSet(p.target, key, value, receiver) {
		return false
	}

	switch {
	case !hadKey:
		p.rs.logger.Debug("property added", "target", p.target.Handle(), "key", key)
		p.rs.trigger(p.target, TriggerAdd, key)
	case !sameValue(oldValue, value):
		p.rs.logger.Debug("property set", "target", p.target.Handle(), "key", key)
		p.rs.trigger(p.target, TriggerSet, key)
	}
	return true
}

// Delete removes key from the target. Dependents are not notified.
func (p *Proxy) Delete(key string) bool {
	ok := p.target.Delete(key)
	p.rs.logger.Debug("property deleted", "target", p.target.Handle(), "key", key, "ok", ok)
	return ok
}
