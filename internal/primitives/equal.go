package primitives

import "reflect"

// Equal is the default change-detection equality.
//
// Values of comparable dynamic type are compared with ==, so pointers compare
// by identity. Slices, maps and structs holding them fall back to
// reflect.DeepEqual. Funcs compare by code pointer, so re-setting the same
// function is not a change; two closures of one literal also compare equal.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Kind() == reflect.Func {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	if ta.Comparable() {
		if eq, ok := shallowEqual(a, b); ok {
			return eq
		}
	}
	return reflect.DeepEqual(a, b)
}

// shallowEqual compares with ==. A struct or array type is comparable by type
// but panics at run time when an interface field holds a slice or map; ok is
// false in that case.
func shallowEqual(a, b any) (eq, ok bool) {
	defer func() {
		if recover() != nil {
			eq, ok = false, false
		}
	}()
	return a == b, true
}

// DeepEqual is an EqualFunc that always compares structurally, so pointers to
// equal values are considered unchanged.
func DeepEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
