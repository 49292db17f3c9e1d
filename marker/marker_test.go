package marker

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stats struct {
	_health int `editor:"Health"`
	armor   int `editor:"Armor"`
	plain   int
}

type base struct {
	level int `editor:"Level"`
	armor int `editor:"Armor"`
}

type hero struct {
	base
	stats

	name  string `editor:"Name"`
	title string `editor:"Name"`
	nick  string `editor:""`
	other string `inspector:"Name"`
}

func TestFindStorageName(t *testing.T) {
	name, ok := FindStorageName(reflect.TypeFor[stats](), "Health")
	require.True(t, ok)
	assert.Equal(t, "_health", name)

	_, ok = FindStorageName(reflect.TypeFor[stats](), "Mana")
	assert.False(t, ok)
}

func TestFindStorageName_ExactMatch(t *testing.T) {
	_, ok := FindStorageName(reflect.TypeFor[stats](), "health")
	assert.False(t, ok, "labels compare with exact equality")

	_, ok = FindStorageName(reflect.TypeFor[hero](), "")
	assert.False(t, ok, "an empty label is never a marker")
}

func TestFindStorageName_Pointer(t *testing.T) {
	name, ok := FindStorageName(reflect.TypeFor[*stats](), "Armor")
	require.True(t, ok)
	assert.Equal(t, "armor", name)
}

func TestFindStorageName_FirstMatchWins(t *testing.T) {
	name, ok := FindStorageName(reflect.TypeFor[hero](), "Name")
	require.True(t, ok)
	assert.Equal(t, "name", name)
}

func TestFindStorageName_Embedded(t *testing.T) {
	name, ok := FindStorageName(reflect.TypeFor[hero](), "Level")
	require.True(t, ok)
	assert.Equal(t, "level", name)

	// base comes before stats in declaration order.
	labels := NewIndex("").Labels(reflect.TypeFor[hero]())
	var armor []Label
	for _, l := range labels {
		if l.Label == "Armor" {
			armor = append(armor, l)
		}
	}

	require.Len(t, armor, 2)
	assert.Equal(t, Label{Label: "Armor", Storage: "armor", Depth: 1, Via: []string{"base"}}, armor[0])
	assert.Equal(t, []string{"stats", "armor"}, armor[1].Path())
}

func TestFindStorageName_OwnFieldsBeforeEmbedded(t *testing.T) {
	type wrapper struct {
		stats
		health int `editor:"Health"`
	}

	name, ok := FindStorageName(reflect.TypeFor[wrapper](), "Health")
	require.True(t, ok)
	assert.Equal(t, "health", name)
}

func TestFindStorageName_NonStruct(t *testing.T) {
	_, ok := FindStorageName(reflect.TypeFor[int](), "Health")
	assert.False(t, ok)

	_, ok = FindStorageName(nil, "Health")
	assert.False(t, ok)
}

func TestIndex_CustomTagKey(t *testing.T) {
	idx := NewIndex("inspector")
	assert.Equal(t, "inspector", idx.TagKey())

	name, ok := idx.FindStorageName(reflect.TypeFor[hero](), "Name")
	require.True(t, ok)
	assert.Equal(t, "other", name)

	assert.Equal(t, DefaultTagKey, NewIndex("").TagKey())
}

func TestIndex_Labels(t *testing.T) {
	labels := NewIndex(DefaultTagKey).Labels(reflect.TypeFor[hero]())

	assert.Equal(t, []Label{
		{Label: "Name", Storage: "name", Depth: 0},
		{Label: "Name", Storage: "title", Depth: 0},
		{Label: "Level", Storage: "level", Depth: 1, Via: []string{"base"}},
		{Label: "Armor", Storage: "armor", Depth: 1, Via: []string{"base"}},
		{Label: "Health", Storage: "_health", Depth: 1, Via: []string{"stats"}},
		{Label: "Armor", Storage: "armor", Depth: 1, Via: []string{"stats"}},
	}, labels)
}

type sheet struct {
	hero
}

func TestIndex_Find(t *testing.T) {
	l, ok := NewIndex("").Find(reflect.TypeFor[*sheet](), "Health")
	require.True(t, ok)
	assert.Equal(t, 2, l.Depth)
	assert.Equal(t, []string{"hero", "stats", "_health"}, l.Path())

	l, ok = NewIndex("").Find(reflect.TypeFor[sheet](), "Name")
	require.True(t, ok)
	assert.Equal(t, []string{"hero", "name"}, l.Path())

	_, ok = NewIndex("").Find(reflect.TypeFor[sheet](), "Mana")
	assert.False(t, ok)
}
