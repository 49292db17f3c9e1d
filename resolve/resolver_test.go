package resolve

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldpath/accessor"
	"fieldpath/examples/armory"
	"fieldpath/propertypath"
)

type weapon struct {
	name string
	dmg  int
}

type middle struct {
	value int
}

type loadout struct {
	weapons []weapon
	middle  *middle
}

func newLoadout() *loadout {
	return &loadout{
		weapons: []weapon{{name: "Sword", dmg: 5}, {name: "Axe", dmg: 8}},
	}
}

type base struct {
	Name  string
	level int
}

func (b *base) Rank() int { return b.level * 10 }

type derived struct {
	base

	Name  string
	power int
}

func (d *derived) Power() int { return -1 }

func newDerived() *derived {
	return &derived{base: base{Name: "Base", level: 3}, Name: "Derived", power: 9}
}

func TestResolve_EndToEnd(t *testing.T) {
	v, ok := Resolve(newLoadout(), "weapons.Array.data[1].dmg")
	require.True(t, ok)
	assert.Equal(t, 8, v)
}

func TestResolve_Idempotent(t *testing.T) {
	root := newLoadout()

	first, ok1 := Resolve(root, "weapons.Array.data[0].name")
	second, ok2 := Resolve(root, "weapons.Array.data[0].name")

	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestResolve_InfixRoundTrip(t *testing.T) {
	root := newLoadout()

	host, ok1 := Resolve(root, "weapons.Array.data[0].name")
	compact, ok2 := Resolve(root, "weapons[0].name")

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, host, compact)
	assert.Equal(t, "Sword", compact)
}

func TestResolve_IndexBounds(t *testing.T) {
	root := newLoadout()

	_, ok := Resolve(root, "weapons[2]")
	assert.False(t, ok, "two elements: positions 0 and 1 only")

	v, ok := Resolve(root, "weapons[1]")
	require.True(t, ok)
	assert.Equal(t, weapon{name: "Axe", dmg: 8}, v)
}

func TestResolve_NullShortCircuit(t *testing.T) {
	root := newLoadout()

	_, ok := Resolve(root, "middle.value")
	assert.False(t, ok)

	v, ok := Resolve(root, "middle")
	require.True(t, ok, "a nil at the end of the path is a value")
	assert.Nil(t, v)

	_, ok = Resolve(nil, "middle")
	assert.False(t, ok)

	var nilRoot *loadout
	_, ok = Resolve(nilRoot, "middle")
	assert.False(t, ok)
}

func TestResolve_Failures(t *testing.T) {
	root := newLoadout()

	tests := []struct {
		name string
		path string
	}{
		{name: "empty", path: ""},
		{name: "empty segment", path: "weapons..name"},
		{name: "bad index", path: "weapons[x]"},
		{name: "negative index", path: "weapons[-1]"},
		{name: "unknown member", path: "shields"},
		{name: "unknown nested member", path: "weapons[0].mana"},
		{name: "index into scalar", path: "weapons[0].dmg[0]"},
		{name: "member of scalar", path: "weapons[0].dmg.value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Resolve(root, tt.path)
			assert.False(t, ok)
			assert.Nil(t, v)
		})
	}
}

func TestResolvePath_EmptyPathYieldsRoot(t *testing.T) {
	root := newLoadout()

	v, ok := New().ResolvePath(root, propertypath.Path{})
	require.True(t, ok)
	assert.Same(t, root, v)
}

func TestResolveMember_Hierarchy(t *testing.T) {
	d := newDerived()

	name, ok := ResolveMember(d, "Name")
	require.True(t, ok)
	assert.Equal(t, "Derived", name, "the outer field shadows the embedded one")

	level, ok := ResolveMember(d, "level")
	require.True(t, ok, "embedded unexported fields are reachable")
	assert.Equal(t, 3, level)

	base, ok := Resolve(d, "base.Name")
	require.True(t, ok, "the embedded struct is a field too")
	assert.Equal(t, "Base", base)
}

func TestResolveMember_FieldBeforeProperty(t *testing.T) {
	d := newDerived()

	power, ok := ResolveMember(d, "power")
	require.True(t, ok)
	assert.Equal(t, 9, power)

	power, ok = ResolveMember(d, "POWER")
	require.True(t, ok, "no field matches, the getter does")
	assert.Equal(t, -1, power)
}

func TestResolveMember_PromotedGetter(t *testing.T) {
	rank, ok := ResolveMember(newDerived(), "rank")
	require.True(t, ok)
	assert.Equal(t, 30, rank)

	// Non-addressable roots are copied before pointer methods are called.
	rank, ok = ResolveMember(*newDerived(), "Rank")
	require.True(t, ok)
	assert.Equal(t, 30, rank)
}

type part struct{}

func (part) Kind() string { return "part" }

func (*part) Label() string { return "part" }

func (part) Serial() int { return 7 }

type assembly struct {
	part
}

func (assembly) Kind() string { return "assembly" }

func (*assembly) Label() string { return "assembly" }

func TestResolveMember_OverridingGetter(t *testing.T) {
	kind, ok := ResolveMember(&assembly{}, "kind")
	require.True(t, ok)
	assert.Equal(t, "assembly", kind, "a value receiver override beats the embedded getter")

	label, ok := ResolveMember(&assembly{}, "Label")
	require.True(t, ok)
	assert.Equal(t, "assembly", label, "a pointer receiver override beats the embedded getter")

	serial, ok := ResolveMember(assembly{}, "serial")
	require.True(t, ok, "methods without an override are still promoted")
	assert.Equal(t, 7, serial)

	kind, ok = Resolve(&assembly{}, "part.Kind")
	require.True(t, ok)
	assert.Equal(t, "part", kind)

	assert.Equal(t, []string{"part", "Kind", "Label", "Serial"}, Members(&assembly{}))
}

func TestResolver_CaseSensitiveProperties(t *testing.T) {
	r := New(WithCaseSensitiveProperties(true))

	_, ok := r.ResolveMember(newDerived(), "rank")
	assert.False(t, ok)

	rank, ok := r.ResolveMember(newDerived(), "Rank")
	require.True(t, ok)
	assert.Equal(t, 30, rank)
}

type panicky struct{}

func (p *panicky) Boom() int { panic("boom") }

func (p *panicky) Twice(n int) int { return n * 2 }

func TestResolveMember_RejectedMethods(t *testing.T) {
	_, ok := ResolveMember(&panicky{}, "boom")
	assert.False(t, ok, "a panicking getter is absent")

	_, ok = ResolveMember(&panicky{}, "twice")
	assert.False(t, ok, "methods with parameters are not getters")
}

type bag struct {
	items []int
}

func (b *bag) All() iter.Seq[int] { return slices.Values(b.items) }

type sequences struct {
	names iter.Seq[string]
	pairs iter.Seq2[int, string]
	bag   bag
	grid  [3]int
	stock map[string]int
	fault iter.Seq[int]
	empty iter.Seq[int]
}

func newSequences() *sequences {
	return &sequences{
		names: slices.Values([]string{"red", "green", "blue"}),
		pairs: slices.All([]string{"a", "b"}),
		bag:   bag{items: []int{10, 20}},
		grid:  [3]int{1, 2, 3},
		stock: map[string]int{"arrows": 40, "bolts": 12},
		fault: func(func(int) bool) { panic("broken") },
	}
}

func TestResolve_Sequences(t *testing.T) {
	root := newSequences()

	tests := []struct {
		path string
		want any
	}{
		{path: "names[0]", want: "red"},
		{path: "names.Array.data[2]", want: "blue"},
		{path: "pairs[1]", want: "b"},
		{path: "bag[1]", want: 20},
		{path: "grid[2]", want: 3},
		{path: "stock.arrows", want: 40},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			v, ok := Resolve(root, tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestResolve_SequenceExhaustion(t *testing.T) {
	root := newSequences()

	for _, path := range []string{"names[3]", "bag[2]", "grid[3]", "fault[0]", "empty[0]", "stock[0]"} {
		_, ok := Resolve(root, path)
		assert.False(t, ok, path)
	}
}

func TestResolve_Length(t *testing.T) {
	root := newSequences()

	tests := []struct {
		path string
		want int
	}{
		{path: "names.Array.size", want: 3},
		{path: "pairs.Array.size", want: 2},
		{path: "bag.Array.size", want: 2},
		{path: "grid.Array.size", want: 3},
		{path: "stock.Array.size", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			v, ok := Resolve(root, tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}

	_, ok := Resolve(root, "fault.Array.size")
	assert.False(t, ok)

	_, ok = Resolve(root, "grid[0].Array.size")
	assert.False(t, ok)
}

func TestResolve_Documents(t *testing.T) {
	doc := map[string]any{
		"weapons": []any{
			map[string]any{"name": "Sword", "dmg": 5},
			map[string]any{"name": "Axe", "dmg": 8},
		},
		"owner": nil,
	}

	v, ok := Resolve(doc, "weapons.Array.data[1].dmg")
	require.True(t, ok)
	assert.Equal(t, 8, v)

	v, ok = Resolve(doc, "weapons.Array.size")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = Resolve(doc, "owner")
	require.True(t, ok)
	assert.Nil(t, v)

	_, ok = Resolve(doc, "owner.name")
	assert.False(t, ok)

	_, ok = Resolve(doc, "Weapons")
	assert.False(t, ok, "map keys match exactly")
}

func TestResolve_Armory(t *testing.T) {
	owner := &armory.Entity{Name: "Ayla"}
	root := armory.NewArmory(owner,
		armory.NewWeapon(1, "Sword", 5, armory.Common),
		armory.NewWeapon(2, "Axe", 8, armory.Epic),
	)

	tests := []struct {
		path string
		want any
	}{
		{path: "weapons.Array.data[1].Damage", want: 8},
		{path: "weapons[1].Name", want: "Axe"},
		{path: "weapons[1].id", want: 2},
		{path: "weapons[1].ID", want: 2},
		{path: "weapons[1].rarity", want: armory.Epic},
		{path: "weapons[0].RARITY", want: armory.Common},
		{path: "weapons.Array.size", want: 2},
		{path: "count", want: 2},
		{path: "Owner.Name", want: "Ayla"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			v, ok := Resolve(root, tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}

	_, ok := Resolve(root, "weapons[0].critical")
	assert.False(t, ok, "unexported methods are not visible to reflection")
}

func TestResolveAs(t *testing.T) {
	root := newLoadout()

	dmg, ok := ResolveAs[int](nil, root, "weapons[1].dmg")
	require.True(t, ok)
	assert.Equal(t, 8, dmg)

	_, ok = ResolveAs[string](nil, root, "weapons[1].dmg")
	assert.False(t, ok, "wrong type")

	m, ok := ResolveAs[*middle](New(), root, "middle")
	require.True(t, ok)
	assert.Nil(t, m)
}

type tabled struct {
	name  string
	extra int
}

func tabledRegistry() *accessor.Registry {
	reg := accessor.NewRegistry()
	accessor.RegisterIn(reg, accessor.Table[tabled]{
		Fields: []accessor.Member[tabled]{
			{Name: "name", Get: func(*tabled) any { return "from table" }},
		},
	})

	return reg
}

func TestResolver_RegistryBeforeReflection(t *testing.T) {
	root := &tabled{name: "from field", extra: 4}
	r := New(WithRegistry(tabledRegistry()))

	name, ok := r.ResolveMember(root, "name")
	require.True(t, ok)
	assert.Equal(t, "from table", name)

	extra, ok := r.ResolveMember(root, "extra")
	require.True(t, ok, "names missing from the table fall back to reflection")
	assert.Equal(t, 4, extra)

	name, ok = New(WithRegistry(nil)).ResolveMember(root, "name")
	require.True(t, ok)
	assert.Equal(t, "from field", name)
}

func TestResolver_CaseSensitiveRegisteredProperties(t *testing.T) {
	reg := accessor.NewRegistry()
	accessor.RegisterIn(reg, accessor.Table[tabled]{
		Properties: []accessor.Member[tabled]{
			{Name: "Extra", Get: func(v *tabled) any { return v.extra * 2 }},
		},
	})

	root := &tabled{extra: 4}

	extra, ok := New(WithRegistry(reg)).ResolveMember(root, "EXTRA")
	require.True(t, ok)
	assert.Equal(t, 8, extra)

	r := New(WithRegistry(reg), WithCaseSensitiveProperties(true))

	extra, ok = r.ResolveMember(root, "Extra")
	require.True(t, ok)
	assert.Equal(t, 8, extra)

	_, ok = r.ResolveMember(root, "EXTRA")
	assert.False(t, ok, "registered properties honour case sensitivity")
}

func TestResolver_WithoutReflection(t *testing.T) {
	root := &tabled{name: "from field", extra: 4}
	r := New(WithRegistry(tabledRegistry()), WithReflection(false))

	name, ok := r.ResolveMember(root, "name")
	require.True(t, ok)
	assert.Equal(t, "from table", name)

	_, ok = r.ResolveMember(root, "extra")
	assert.False(t, ok)

	_, ok = r.ResolveMember(newDerived(), "Name")
	assert.False(t, ok)
}

type record struct {
	hidden int
	values map[string]any
}

func (r *record) Member(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

func TestResolve_GettableIsAuthoritative(t *testing.T) {
	root := &record{
		hidden: 1,
		values: map[string]any{"answer": 42, "nested": &record{values: map[string]any{"leaf": "x"}}},
	}

	v, ok := Resolve(root, "answer")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	v, ok = Resolve(root, "nested.leaf")
	require.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = Resolve(root, "hidden")
	assert.False(t, ok)
}

func TestMembers(t *testing.T) {
	assert.Equal(t, []string{"base", "Name", "power", "Power", "level", "Rank"}, Members(newDerived()))
	assert.Equal(t, []string{"arrows", "bolts"}, Members(map[string]int{"bolts": 1, "arrows": 2}))
	assert.Nil(t, Members(&record{}))
	assert.Nil(t, Members(nil))

	r := New(WithRegistry(tabledRegistry()), WithReflection(false))
	assert.Equal(t, []string{"name"}, r.Members(&tabled{}))
}
