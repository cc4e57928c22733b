package reactive

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactiveIdentity(t *testing.T) {
	rs := CreateReactiveSystem()
	raw := NewRecord(map[string]any{"a": 1})

	p1 := Reactive(rs, raw)
	p2 := Reactive(rs, raw)
	assert.Same(t, p1, p2)
	assert.Same(t, p1, Reactive(rs, p1))
	assert.Same(t, p1, Observe(rs, raw))

	assert.True(t, rs.IsReactive(p1))
	assert.False(t, rs.IsReactive(raw))
	assert.Same(t, raw, rs.ToRaw(p1))
	assert.Same(t, raw, rs.ToRaw(raw))
}

func TestReactivePrimitivesPassThrough(t *testing.T) {
	rs := CreateReactiveSystem()

	assert.Equal(t, 5, Reactive(rs, 5))
	assert.Equal(t, "x", Reactive(rs, "x"))
	assert.Nil(t, Reactive(rs, nil))

	var nilRecord *Record
	assert.Equal(t, nilRecord, Reactive(rs, nilRecord))

	m := map[string]any{"a": 1}
	assert.Equal(t, m, Reactive(rs, m))
	assert.Equal(t, 0, rs.Stats().Wrappers)
}

func TestProxyOfForeignProxy(t *testing.T) {
	rsA := CreateReactiveSystem()
	rsB := CreateReactiveSystem()
	raw := NewRecord(map[string]any{"a": 1})

	pa := Observe(rsA, raw)
	pb := Observe(rsB, pa)
	assert.NotSame(t, pa, pb)
	assert.Same(t, pa, rsB.ToRaw(pb))

	runsA, runsB := 0, 0
	_, err := Effect(rsA, func() error {
		runsA++
		pa.Get("a")
		return nil
	})
	require.NoError(t, err)
	_, err = Effect(rsB, func() error {
		runsB++
		pb.Get("a")
		return nil
	})
	require.NoError(t, err)

	// the outer wrapper writes through the inner one, both systems see it
	assert.True(t, pb.Set("a", 2))
	assert.Equal(t, 2, runsA)
	assert.Equal(t, 2, runsB)
	assert.Equal(t, 2, raw.Get("a"))
}

func TestProxyWrites(t *testing.T) {
	/*
	   obj.a
	     |
	     e
	*/
	t.Run("changed value triggers once", func(t *testing.T) {
		rs := CreateReactiveSystem()
		obj := Observe(rs, NewRecord(map[string]any{"a": 1}))

		e, err := Effect(rs, func() error {
			obj.Get("a")
			return nil
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, e.Runs())

		assert.True(t, obj.Set("a", 2))
		assert.EqualValues(t, 2, e.Runs())

		assert.True(t, obj.Set("a", 2))
		assert.EqualValues(t, 2, e.Runs()) // unchanged, no notification
	})

	t.Run("reads outside effects record nothing", func(t *testing.T) {
		rs := CreateReactiveSystem()
		obj := Observe(rs, NewRecord(map[string]any{"a": 1}))

		assert.Equal(t, 1, obj.Get("a"))
		assert.Empty(t, rs.Snapshot())
		assert.True(t, obj.Set("a", 2))
		assert.Empty(t, rs.Dependents(obj, "a"))
	})

	t.Run("missing key is tracked and added later", func(t *testing.T) {
		rs := CreateReactiveSystem()
		obj := Observe(rs, NewRecord(nil))

		var seen []any
		_, err := Effect(rs, func() error {
			seen = append(seen, obj.Get("b"))
			return nil
		})
		require.NoError(t, err)

		assert.True(t, obj.Set("b", 1))
		assert.Equal(t, []any{nil, 1}, seen)
	})

	t.Run("adding nil still notifies", func(t *testing.T) {
		rs := CreateReactiveSystem()
		obj := Observe(rs, NewRecord(nil))

		e, err := Effect(rs, func() error {
			obj.Get("b")
			return nil
		})
		require.NoError(t, err)

		assert.True(t, obj.Set("b", nil))
		assert.EqualValues(t, 2, e.Runs())
		assert.True(t, obj.Set("b", nil))
		assert.EqualValues(t, 2, e.Runs())
	})

	t.Run("NaN is never the same value", func(t *testing.T) {
		rs := CreateReactiveSystem()
		obj := Observe(rs, NewRecord(map[string]any{"f": math.NaN()}))

		e, err := Effect(rs, func() error {
			obj.Get("f")
			return nil
		})
		require.NoError(t, err)

		obj.Set("f", math.NaN())
		assert.EqualValues(t, 2, e.Runs())
	})

	t.Run("frozen target rejects writes silently", func(t *testing.T) {
		rs := CreateReactiveSystem()
		obj := Observe(rs, NewRecord(map[string]any{"a": 1}).Freeze())

		e, err := Effect(rs, func() error {
			obj.Get("a")
			obj.Get("b")
			return nil
		})
		require.NoError(t, err)

		assert.False(t, obj.Set("a", 2))
		assert.False(t, obj.Set("b", 2))
		assert.Equal(t, 1, obj.Get("a"))
		assert.EqualValues(t, 1, e.Runs())
	})

	t.Run("delete does not notify", func(t *testing.T) {
		rs := CreateReactiveSystem()
		obj := Observe(rs, NewRecord(map[string]any{"a": 1}))

		e, err := Effect(rs, func() error {
			obj.Get("a")
			return nil
		})
		require.NoError(t, err)

		assert.True(t, obj.Delete("a"))
		assert.False(t, obj.Has("a"))
		assert.EqualValues(t, 1, e.Runs())

		// the key comes back as an add
		assert.True(t, obj.Set("a", 1))
		assert.EqualValues(t, 2, e.Runs())
	})
}

func TestNestedWrapping(t *testing.T) {
	rs := CreateReactiveSystem()
	raw := NewRecord(map[string]any{
		"inner": map[string]any{"x": 1},
	})
	obj := Observe(rs, raw)

	inner, ok := obj.Get("inner").(*Proxy)
	require.True(t, ok, "nested object must come back wrapped")
	assert.Same(t, raw.Get("inner"), inner.Target())
	assert.Same(t, inner, obj.Get("inner"))

	outerRuns, innerRuns := 0, 0
	_, err := Effect(rs, func() error {
		innerRuns++
		obj.Get("inner").(Object).Get("x")
		return nil
	})
	require.NoError(t, err)
	_, err = Effect(rs, func() error {
		outerRuns++
		obj.Get("other")
		return nil
	})
	require.NoError(t, err)

	inner.Set("x", 2)
	assert.Equal(t, 2, innerRuns)
	assert.Equal(t, 1, outerRuns)

	obj.Set("other", true)
	assert.Equal(t, 2, innerRuns)
	assert.Equal(t, 2, outerRuns)

	assert.Len(t, rs.Dependents(inner, "x"), 1)
	assert.Len(t, rs.Dependents(obj, "inner"), 1)
}

func TestAccessorReceiver(t *testing.T) {
	rs := CreateReactiveSystem()
	raw := NewRecord(map[string]any{
		"first": "Ada",
		"last":  "Lovelace",
	})
	raw.Set("full", Accessor{
		Get: func(self Object) any {
			return self.Get("first").(string) + " " + self.Get("last").(string)
		},
		Set: func(self Object, value any) bool {
			return self.Set("first", value)
		},
	})
	obj := Observe(rs, raw)

	var names []any
	_, err := Effect(rs, func() error {
		names = append(names, obj.Get("full"))
		return nil
	})
	require.NoError(t, err)

	// the getter read "last" through the proxy, so it is tracked
	obj.Set("last", "Byron")
	// the setter writes "first" through the proxy, so it triggers too
	assert.True(t, obj.Set("full", "Augusta"))

	assert.Equal(t, []any{"Ada Lovelace", "Ada Byron", "Augusta Byron", "Augusta Byron"}, names)
}

func TestReadOnlyAccessor(t *testing.T) {
	rs := CreateReactiveSystem()
	raw := NewRecord(map[string]any{"n": 2})
	raw.Set("double", Accessor{Get: func(self Object) any { return self.Get("n").(int) * 2 }})
	obj := Observe(rs, raw)

	assert.Equal(t, 4, obj.Get("double"))
	assert.False(t, obj.Set("double", 10))
	assert.Equal(t, 4, obj.Get("double"))
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rs := CreateReactiveSystem(WithLogger(logger))
	obj := Observe(rs, NewRecord(map[string]any{"a": 1}))

	_, err := Effect(rs, func() error {
		obj.Get("a")
		obj.Get("b")
		return nil
	}, WithName("watcher"))
	require.NoError(t, err)

	obj.Set("a", 2)
	obj.Set("b", 1)
	obj.Delete("b")

	out := buf.String()
	assert.Contains(t, out, `msg="dependency tracked"`)
	assert.Contains(t, out, "effect=watcher")
	assert.Contains(t, out, `msg="property set"`)
	assert.Contains(t, out, `msg="property added"`)
	assert.Contains(t, out, `msg="property deleted"`)
	assert.Contains(t, out, "kind=add")
	assert.Contains(t, out, "kind=set")
}
