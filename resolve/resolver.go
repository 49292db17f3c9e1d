package resolve

import (
	"reflect"

	"fieldpath/accessor"
	"fieldpath/propertypath"
)

// Resolver walks property paths. The zero value is not usable; use New.
type Resolver struct {
	registry      *accessor.Registry
	reflection    bool
	caseSensitive bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRegistry makes the resolver consult r instead of accessor.Default.
// A nil registry disables table lookups.
func WithRegistry(r *accessor.Registry) Option {
	return func(res *Resolver) {
		res.registry = r
	}
}

// WithReflection enables or disables the reflection fallback.
// With reflection off only Gettable values and registered tables resolve.
func WithReflection(enabled bool) Option {
	return func(res *Resolver) {
		res.reflection = enabled
	}
}

// WithCaseSensitiveProperties makes getter method and registered property
// names match exactly.
func WithCaseSensitiveProperties(enabled bool) Option {
	return func(res *Resolver) {
		res.caseSensitive = enabled
	}
}

// New creates a Resolver. By default it uses accessor.Default and falls back
// to reflection.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		registry:   accessor.Default,
		reflection: true,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

var std = New()

// Resolve resolves path from root with the default resolver.
func Resolve(root any, path string) (any, bool) {
	return std.Resolve(root, path)
}

// ResolveMember resolves a single member name on obj with the default resolver.
func ResolveMember(obj any, name string) (any, bool) {
	return std.ResolveMember(obj, name)
}

// ResolveAs resolves path and asserts the result to T. A nil r selects the
// default resolver. A present value of another type yields false.
func ResolveAs[T any](r *Resolver, root any, path string) (T, bool) {
	if r == nil {
		r = std
	}

	var zero T

	v, ok := r.Resolve(root, path)
	if !ok {
		return zero, false
	}

	if v == nil {
		return zero, true
	}

	t, ok := v.(T)
	if !ok {
		return zero, false
	}

	return t, true
}

// Resolve parses path and resolves it from root.
func (r *Resolver) Resolve(root any, path string) (any, bool) {
	p, err := propertypath.Parse(path)
	if err != nil {
		return nil, false
	}

	return r.ResolvePath(root, p)
}

// ResolvePath resolves an already parsed path. An empty path yields root.
// A nil reached at the end of the path is present: (nil-ish value, true).
func (r *Resolver) ResolvePath(root any, p propertypath.Path) (any, bool) {
	current := reflect.ValueOf(root)

	for _, seg := range p.Segments {
		next, ok := r.step(current, seg)
		if !ok {
			return nil, false
		}

		current = next
	}

	return export(current), true
}

// ResolveMember looks name up on obj without any path syntax.
func (r *Resolver) ResolveMember(obj any, name string) (any, bool) {
	v, ok := r.member(reflect.ValueOf(obj), name)
	if !ok {
		return nil, false
	}

	return export(v), true
}

// step applies one segment to the current value.
func (r *Resolver) step(current reflect.Value, seg propertypath.Segment) (reflect.Value, bool) {
	member, ok := r.member(current, seg.Name)
	if !ok {
		return reflect.Value{}, false
	}

	switch seg.Kind {
	case propertypath.SegmentIndex:
		return r.nth(member, seg.Index)
	case propertypath.SegmentLength:
		n, ok := r.length(member)
		if !ok {
			return reflect.Value{}, false
		}

		return reflect.ValueOf(n), true
	default:
		return member, true
	}
}

// member resolves name on v, dereferencing v first.
func (r *Resolver) member(v reflect.Value, name string) (reflect.Value, bool) {
	obj, ok := deref(v)
	if !ok {
		return reflect.Value{}, false
	}

	ptr := obj.Addr()

	if g, ok := ptr.Interface().(accessor.Gettable); ok {
		val, found := g.Member(name)
		if !found {
			return reflect.Value{}, false
		}

		return reflect.ValueOf(val), true
	}

	if r.registry != nil && r.registry.Has(obj.Type()) {
		get := r.registry.Get
		if r.caseSensitive {
			get = r.registry.GetExact
		}

		if val, found := get(ptr.Interface(), name); found {
			return reflect.ValueOf(val), true
		}
	}

	if !r.reflection {
		return reflect.Value{}, false
	}

	return r.reflectMember(obj, name)
}

// deref follows pointers and interfaces and returns an addressable value.
// It fails on nil and on the invalid Value.
func deref(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}

		v = v.Elem()
	}

	if !v.IsValid() {
		return reflect.Value{}, false
	}

	return addressable(v), true
}

// addressable returns v itself when it can be addressed, or an addressable copy.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}

	c := reflect.New(v.Type()).Elem()
	c.Set(v)

	return c
}

func export(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}

	return v.Interface()
}
