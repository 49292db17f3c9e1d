package accessor

import (
	"reflect"
	"strings"
	"sync"
)

// Gettable is implemented by values that answer member lookups themselves.
// The answer is authoritative: a false result is not retried by reflection.
type Gettable interface {
	Member(name string) (any, bool)
}

// Member is a named getter for a field or property of T.
type Member[T any] struct {
	Name string
	Get  func(v *T) any
}

// Table lists the members of T in declaration order.
// Embedded returns the values of T's embedded structs, one level down.
type Table[T any] struct {
	Fields     []Member[T]
	Properties []Member[T]
	Embedded   []func(v *T) any
}

// Default is the registry used by Register and by resolvers that are not
// given one explicitly.
var Default = NewRegistry()

// Register adds t to the Default registry.
func Register[T any](t Table[T]) {
	RegisterIn(Default, t)
}

// RegisterIn adds t to r, replacing any table previously registered for T.
func RegisterIn[T any](r *Registry, t Table[T]) {
	typ := reflect.TypeFor[T]()

	compiled := &table{typ: typ}
	for _, m := range t.Fields {
		compiled.fields = append(compiled.fields, entry{name: m.Name, get: erase(m.Get)})
	}

	for _, m := range t.Properties {
		compiled.properties = append(compiled.properties, entry{name: m.Name, get: erase(m.Get)})
	}

	for _, e := range t.Embedded {
		compiled.embedded = append(compiled.embedded, erase(e))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tables[typ] = compiled
}

// erase turns a typed getter into one over any. The value may be T or *T;
// a nil *T yields ok=false.
func erase[T any](get func(v *T) any) func(v any) (any, bool) {
	return func(v any) (any, bool) {
		switch x := v.(type) {
		case *T:
			if x == nil {
				return nil, false
			}

			return get(x), true
		case T:
			return get(&x), true
		default:
			return nil, false
		}
	}
}

type entry struct {
	name string
	get  func(v any) (any, bool)
}

type table struct {
	typ        reflect.Type
	fields     []entry
	properties []entry
	embedded   []func(v any) (any, bool)
}

// Registry maps struct types to their accessor tables.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	tables map[reflect.Type]*table
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[reflect.Type]*table)}
}

// Has reports whether a table is registered for t or for the type t points to.
func (r *Registry) Has(t reflect.Type) bool {
	return r.lookup(t) != nil
}

// Len returns the number of registered tables.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tables)
}

func (r *Registry) lookup(t reflect.Type) *table {
	if t == nil {
		return nil
	}

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.tables[t]
}

// Get looks name up on v using the table registered for v's dynamic type.
//
// Levels are searched outermost first: the value's own fields (exact name),
// then its properties (case-insensitive), then the same two searches across
// all embedded values of the next level, and so on. The second result is
// false when no table is registered or no level has the member; use Has to
// tell the two apart.
func (r *Registry) Get(v any, name string) (any, bool) {
	return r.get(v, name, true)
}

// GetExact is Get with property names matched exactly.
func (r *Registry) GetExact(v any, name string) (any, bool) {
	return r.get(v, name, false)
}

func (r *Registry) get(v any, name string, foldCase bool) (any, bool) {
	current := []any{v}

	for len(current) > 0 {
		var tables []*table

		var nodes []any

		for _, node := range current {
			if t := r.lookup(reflect.TypeOf(node)); t != nil {
				tables = append(tables, t)
				nodes = append(nodes, node)
			}
		}

		for i, t := range tables {
			if val, ok := findEntry(t.fields, nodes[i], name, false); ok {
				return val, true
			}
		}

		for i, t := range tables {
			if val, ok := findEntry(t.properties, nodes[i], name, foldCase); ok {
				return val, true
			}
		}

		current = r.embeddedOf(tables, nodes)
	}

	return nil, false
}

// Names lists every member name reachable on v through registered tables,
// outermost level first.
func (r *Registry) Names(v any) []string {
	var names []string

	current := []any{v}
	for len(current) > 0 {
		var tables []*table

		var nodes []any

		for _, node := range current {
			if t := r.lookup(reflect.TypeOf(node)); t != nil {
				tables = append(tables, t)
				nodes = append(nodes, node)
			}
		}

		for _, t := range tables {
			for _, e := range t.fields {
				names = append(names, e.name)
			}

			for _, e := range t.properties {
				names = append(names, e.name)
			}
		}

		current = r.embeddedOf(tables, nodes)
	}

	return names
}

func (r *Registry) embeddedOf(tables []*table, nodes []any) []any {
	var out []any

	for i, t := range tables {
		for _, get := range t.embedded {
			if val, ok := get(nodes[i]); ok && val != nil {
				out = append(out, val)
			}
		}
	}

	return out
}

func findEntry(entries []entry, v any, name string, foldCase bool) (any, bool) {
	for _, e := range entries {
		if e.name == name || (foldCase && strings.EqualFold(e.name, name)) {
			return e.get(v)
		}
	}

	return nil, false
}
