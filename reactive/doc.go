// Package reactive makes plain data objects observable.
//
// Reading a property of a wrapped object while an effect runs records the
// effect as a dependent of that property. Writing the property later re-runs
// every dependent, synchronously, before the write returns.
//
//	rs := reactive.CreateReactiveSystem()
//	state := reactive.Observe(rs, reactive.NewRecord(map[string]any{"count": 1}))
//
//	reactive.Effect(rs, func() error {
//	    fmt.Println("count is", state.Get("count"))
//	    return nil
//	})
//	// count is 1
//
//	state.Set("count", 2)
//	// count is 2
package reactive
