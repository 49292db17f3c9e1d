package accessor

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unit struct {
	hp int
}

func (u *unit) Health() int { return u.hp * 10 }

type hero struct {
	unit
	name string
	hp   int
}

func testRegistry() *Registry {
	r := NewRegistry()

	RegisterIn(r, Table[unit]{
		Fields:     []Member[unit]{{Name: "hp", Get: func(v *unit) any { return v.hp }}},
		Properties: []Member[unit]{{Name: "Health", Get: func(v *unit) any { return v.Health() }}},
	})
	RegisterIn(r, Table[hero]{
		Fields: []Member[hero]{
			{Name: "unit", Get: func(v *hero) any { return v.unit }},
			{Name: "name", Get: func(v *hero) any { return v.name }},
			{Name: "hp", Get: func(v *hero) any { return v.hp }},
		},
		Embedded: []func(v *hero) any{func(v *hero) any { return &v.unit }},
	})

	return r
}

func TestRegistry_Get(t *testing.T) {
	r := testRegistry()
	h := &hero{unit: unit{hp: 3}, name: "Ayla", hp: 7}

	name, ok := r.Get(h, "name")
	require.True(t, ok)
	assert.Equal(t, "Ayla", name)

	// Value and pointer receivers resolve the same table.
	name, ok = r.Get(*h, "name")
	require.True(t, ok)
	assert.Equal(t, "Ayla", name)
}

func TestRegistry_ShadowingField(t *testing.T) {
	r := testRegistry()
	h := &hero{unit: unit{hp: 3}, hp: 7}

	hp, ok := r.Get(h, "hp")
	require.True(t, ok)
	assert.Equal(t, 7, hp, "outer field shadows the embedded one")
}

func TestRegistry_EmbeddedProperty(t *testing.T) {
	r := testRegistry()
	h := &hero{unit: unit{hp: 3}}

	health, ok := r.Get(h, "health")
	require.True(t, ok, "properties match case-insensitively")
	assert.Equal(t, 30, health)
}

func TestRegistry_GetExact(t *testing.T) {
	r := testRegistry()
	h := &hero{unit: unit{hp: 3}, name: "Ayla"}

	_, ok := r.GetExact(h, "health")
	assert.False(t, ok)

	health, ok := r.GetExact(h, "Health")
	require.True(t, ok)
	assert.Equal(t, 30, health)

	name, ok := r.GetExact(h, "name")
	require.True(t, ok)
	assert.Equal(t, "Ayla", name)
}

func TestRegistry_Missing(t *testing.T) {
	r := testRegistry()

	_, ok := r.Get(&hero{}, "mana")
	assert.False(t, ok)

	_, ok = r.Get(struct{}{}, "name")
	assert.False(t, ok)

	var nilHero *hero
	_, ok = r.Get(nilHero, "name")
	assert.False(t, ok)
}

func TestRegistry_FieldNamesAreCaseSensitive(t *testing.T) {
	r := testRegistry()

	_, ok := r.Get(&hero{name: "Ayla"}, "NAME")
	assert.False(t, ok)
}

func TestRegistry_HasAndNames(t *testing.T) {
	r := testRegistry()

	assert.True(t, r.Has(reflect.TypeFor[hero]()))
	assert.True(t, r.Has(reflect.TypeFor[*hero]()))
	assert.False(t, r.Has(reflect.TypeFor[int]()))
	assert.False(t, r.Has(nil))
	assert.Equal(t, 2, r.Len())

	assert.Equal(t, []string{"unit", "name", "hp", "hp", "Health"}, r.Names(&hero{}))
}

func TestRegisterIn_Replaces(t *testing.T) {
	r := testRegistry()
	RegisterIn(r, Table[unit]{})

	assert.Equal(t, 2, r.Len())

	_, ok := r.Get(&unit{hp: 1}, "hp")
	assert.False(t, ok)
}
