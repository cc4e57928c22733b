package reactive

import "reflect"

// sameValue is the write-suppression comparison: identity for reference
// types, == for everything comparable. Deep equality is never used.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return safeEqual(a, b)
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Map:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Slice:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		// zero-capacity slices share one base pointer
		if va.Cap() == 0 || vb.Cap() == 0 {
			return false
		}
		return va.UnsafePointer() == vb.UnsafePointer() && va.Len() == vb.Len()
	default:
		// funcs and structs holding them have no identity to compare
		return false
	}
}

// safeEqual guards against structs and arrays whose type is comparable but
// which hold incomparable dynamic values in interface fields.
func safeEqual(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}
