package resolve

import (
	"reflect"
)

// nth returns the element at position n of a sequence value, advancing a
// forward sequence n+1 times.
func (r *Resolver) nth(v reflect.Value, n int) (reflect.Value, bool) {
	seq, ok := deref(v)
	if !ok || n < 0 {
		return reflect.Value{}, false
	}

	switch seq.Kind() {
	case reflect.Slice, reflect.Array:
		if n >= seq.Len() {
			return reflect.Value{}, false
		}

		return seq.Index(n), true
	case reflect.Func:
		return nthOfSeq(seq, n)
	}

	if all, ok := allOf(seq); ok {
		return nthOfSeq(all, n)
	}

	return reflect.Value{}, false
}

// length returns the number of elements of a container or forward sequence.
func (r *Resolver) length(v reflect.Value) (int, bool) {
	seq, ok := deref(v)
	if !ok {
		return 0, false
	}

	switch seq.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		return seq.Len(), true
	case reflect.Func:
		return countSeq(seq)
	}

	if all, ok := allOf(seq); ok {
		return countSeq(all)
	}

	return 0, false
}

// isSeq reports whether t has the shape of iter.Seq[V] or iter.Seq2[K, V]:
// func(yield func(...) bool).
func isSeq(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return false
	}

	yield := t.In(0)

	return yield.Kind() == reflect.Func &&
		yield.NumIn() >= 1 && yield.NumIn() <= 2 &&
		yield.NumOut() == 1 && yield.Out(0).Kind() == reflect.Bool
}

// allOf calls the All method of v when it returns a sequence.
func allOf(v reflect.Value) (reflect.Value, bool) {
	m := v.Addr().MethodByName("All")
	if !m.IsValid() || m.Type().NumIn() != 0 || m.Type().NumOut() != 1 || !isSeq(m.Type().Out(0)) {
		return reflect.Value{}, false
	}

	out, ok := call(m)
	if !ok || out[0].IsNil() {
		return reflect.Value{}, false
	}

	return out[0], true
}

// nthOfSeq drives seq until it yields its n-th value. For two-value
// sequences the element is the second value.
func nthOfSeq(seq reflect.Value, n int) (reflect.Value, bool) {
	var (
		found reflect.Value
		seen  int
	)

	ok := drive(seq, func(args []reflect.Value) bool {
		if seen == n {
			found = args[len(args)-1]
			return false
		}

		seen++

		return true
	})

	if !ok || !found.IsValid() {
		return reflect.Value{}, false
	}

	return found, true
}

func countSeq(seq reflect.Value) (int, bool) {
	n := 0

	ok := drive(seq, func([]reflect.Value) bool {
		n++
		return true
	})

	return n, ok
}

// drive runs seq with a yield function calling each. It fails when seq is
// not a sequence, is nil or panics.
func drive(seq reflect.Value, each func([]reflect.Value) bool) (ok bool) {
	if !isSeq(seq.Type()) || seq.IsNil() {
		return false
	}

	yieldType := seq.Type().In(0)
	yield := reflect.MakeFunc(yieldType, func(args []reflect.Value) []reflect.Value {
		return []reflect.Value{reflect.ValueOf(each(args)).Convert(yieldType.Out(0))}
	})

	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	seq.Call([]reflect.Value{yield})

	return true
}
