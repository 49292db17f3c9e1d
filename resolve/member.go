package resolve

import (
	"reflect"
	"runtime"
	"slices"
	"strings"
	"unsafe"

	"fieldpath/accessor"
)

// reflectMember searches obj and its embedded structs level by level.
// On each level fields beat getter methods, which beat map entries.
func (r *Resolver) reflectMember(obj reflect.Value, name string) (reflect.Value, bool) {
	for level := []reflect.Value{obj}; len(level) > 0; level = embedded(level) {
		for _, v := range level {
			if f, ok := field(v, name); ok {
				return f, true
			}
		}

		for _, v := range level {
			if p, ok := r.property(v, name); ok {
				return p, true
			}
		}

		for _, v := range level {
			if e, ok := mapEntry(v, name); ok {
				return e, true
			}
		}
	}

	return reflect.Value{}, false
}

// field returns the struct field of v declared with exactly name.
func field(v reflect.Value, name string) (reflect.Value, bool) {
	if v.Kind() != reflect.Struct || name == "_" {
		return reflect.Value{}, false
	}

	t := v.Type()
	for i := range t.NumField() {
		if t.Field(i).Name == name {
			return readField(v, i), true
		}
	}

	return reflect.Value{}, false
}

// readField reads field i of the addressable struct v. Unexported fields are
// read through their address so the result can be passed on and exported.
func readField(v reflect.Value, i int) reflect.Value {
	f := v.Field(i)
	if f.CanInterface() {
		return f
	}

	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}

// property calls the getter method of v matching name. Only methods declared
// on v's own type count, overrides of embedded methods included; promoted
// methods are found on the embedded level.
func (r *Resolver) property(v reflect.Value, name string) (reflect.Value, bool) {
	ptr := v.Addr()
	t := ptr.Type()

	for i := range t.NumMethod() {
		m := t.Method(i)
		if !r.nameMatches(m.Name, name) || !isGetter(m.Type) || promoted(v.Type(), m.Name) {
			continue
		}

		out, ok := call(ptr.Method(i))
		if !ok {
			return reflect.Value{}, false
		}

		return out[0], true
	}

	return reflect.Value{}, false
}

func (r *Resolver) nameMatches(method, name string) bool {
	if r.caseSensitive {
		return method == name
	}

	return strings.EqualFold(method, name)
}

// isGetter reports whether a method type (receiver included) takes no
// arguments and returns exactly one value.
func isGetter(mt reflect.Type) bool {
	return mt.NumIn() == 1 && mt.NumOut() == 1
}

// promoted reports whether method name reaches t through an embedded field
// instead of being declared on t itself. Promoted methods are compiler
// generated wrappers; a method declared on t that overrides an embedded one
// keeps its own source position.
func promoted(t reflect.Type, name string) bool {
	if t.Kind() != reflect.Struct || !embeds(t, name) {
		return false
	}

	m, ok := t.MethodByName(name)
	if !ok {
		m, ok = reflect.PointerTo(t).MethodByName(name)
	}

	return ok && generated(m.Func)
}

// embeds reports whether an embedded field of t provides method name.
func embeds(t reflect.Type, name string) bool {
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}

		ft := f.Type
		if ft.Kind() != reflect.Pointer && ft.Kind() != reflect.Interface {
			ft = reflect.PointerTo(ft)
		}

		if _, ok := ft.MethodByName(name); ok {
			return true
		}
	}

	return false
}

const autogenerated = "<autogenerated>"

// generated reports whether fn is a wrapper the compiler emitted.
func generated(fn reflect.Value) bool {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return true
	}

	file, _ := f.FileLine(f.Entry())

	return file == autogenerated
}

// mapEntry looks name up as a key of a map with string-like or
// interface keys.
func mapEntry(v reflect.Value, name string) (reflect.Value, bool) {
	key, ok := mapKey(v, name)
	if !ok {
		return reflect.Value{}, false
	}

	e := v.MapIndex(key)
	if !e.IsValid() {
		return reflect.Value{}, false
	}

	return e, true
}

func mapKey(v reflect.Value, name string) (reflect.Value, bool) {
	if v.Kind() != reflect.Map {
		return reflect.Value{}, false
	}

	kt := v.Type().Key()

	switch {
	case kt.Kind() == reflect.String:
		return reflect.ValueOf(name).Convert(kt), true
	case kt.Kind() == reflect.Interface && reflect.TypeFor[string]().Implements(kt):
		return reflect.ValueOf(name), true
	default:
		return reflect.Value{}, false
	}
}

// embedded returns the next hierarchy level: the non-nil embedded struct
// values of every struct on the current level, in declaration order.
func embedded(level []reflect.Value) []reflect.Value {
	var next []reflect.Value

	for _, v := range level {
		if v.Kind() != reflect.Struct {
			continue
		}

		t := v.Type()
		for i := range t.NumField() {
			if !t.Field(i).Anonymous {
				continue
			}

			if e, ok := deref(readField(v, i)); ok {
				next = append(next, e)
			}
		}
	}

	return next
}

// call invokes fn without arguments. A panicking getter counts as absent.
func call(fn reflect.Value) (out []reflect.Value, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = nil, false
		}
	}()

	return fn.Call(nil), true
}

// Members lists the names resolvable on obj with the default resolver.
func Members(obj any) []string {
	return std.Members(obj)
}

// Members lists the member names resolvable on obj, outermost level first,
// without duplicates. Gettable values cannot be enumerated and yield nil.
func (r *Resolver) Members(obj any) []string {
	v, ok := deref(reflect.ValueOf(obj))
	if !ok {
		return nil
	}

	if _, ok := v.Addr().Interface().(accessor.Gettable); ok {
		return nil
	}

	var names []string

	if r.registry != nil && r.registry.Has(v.Type()) {
		names = append(names, r.registry.Names(v.Addr().Interface())...)
	}

	if r.reflection {
		for level := []reflect.Value{v}; len(level) > 0; level = embedded(level) {
			for _, lv := range level {
				names = append(names, reflectNames(lv)...)
			}
		}
	}

	return dedupe(names)
}

func reflectNames(v reflect.Value) []string {
	var names []string

	if v.Kind() == reflect.Struct {
		t := v.Type()
		for i := range t.NumField() {
			if n := t.Field(i).Name; n != "_" {
				names = append(names, n)
			}
		}
	}

	pt := v.Addr().Type()
	for i := range pt.NumMethod() {
		m := pt.Method(i)
		if isGetter(m.Type) && !promoted(v.Type(), m.Name) {
			names = append(names, m.Name)
		}
	}

	if _, ok := mapKey(v, ""); ok {
		var keys []string
		for _, k := range v.MapKeys() {
			if s, ok := k.Interface().(string); ok {
				keys = append(keys, s)
			} else if k.Kind() == reflect.String {
				keys = append(keys, k.String())
			}
		}

		slices.Sort(keys)
		names = append(names, keys...)
	}

	return names
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0]

	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}

	return out
}
