package swapi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOperation_DistinctPerCategory(t *testing.T) {
	lists := map[string]Category{}
	items := map[string]Category{}
	for _, c := range Categories {
		list := ResolveListOperation(c)
		item := ResolveItemOperation(c, "1")

		assert.Equal(t, ListAll, list.Kind)
		assert.Equal(t, GetByID, item.Kind)
		assert.NotEqual(t, list.Query(), item.Query())

		if prev, ok := lists[list.Query()]; ok {
			t.Errorf("Expected distinct list query for %s, shared with %s", c, prev)
		}
		if prev, ok := items[item.Query()]; ok {
			t.Errorf("Expected distinct item query for %s, shared with %s", c, prev)
		}
		lists[list.Query()] = c
		items[item.Query()] = c
	}
	assert.Len(t, lists, 6)
	assert.Len(t, items, 6)
}

func TestResolveOperation_UnmappedCategoryPanics(t *testing.T) {
	assert.Panics(t, func() { ResolveListOperation(Category(42)) })
	assert.Panics(t, func() { ResolveItemOperation(Category(-1), "1") })
}

func TestCategory_Queries(t *testing.T) {
	assert.Equal(t, "query { allFilms { films { id title episodeID } } }", Film.ListQuery())
	assert.Equal(t, "films/", Film.ListPath())
	assert.Equal(t, "people/4/", People.ItemPath("4"))
	assert.Contains(t, Starship.ItemQuery(), "starship(id: $id)")
	assert.Contains(t, Starship.ItemQuery(), "hyperdriveRating")

	op := ResolveItemOperation(Planet, "3")
	assert.Equal(t, map[string]any{"id": "3"}, op.Variables())
	assert.Equal(t, "planets/3/", op.Path())
	assert.Equal(t, "item planet/3", op.String())
	assert.Nil(t, ResolveListOperation(Planet).Variables())
}

func TestCategory_Labels(t *testing.T) {
	expected := []string{"Films", "People", "Planets", "Species", "Starships", "Vehicles"}
	for i, c := range Categories {
		if c.Label() != expected[i] {
			t.Errorf("Expected label %q, got %q", expected[i], c.Label())
		}
	}
	assert.Equal(t, "Category(9)", Category(9).String())
}

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"film":      Film,
		"Films":     Film,
		" people ":  People,
		"character": People,
		"planets":   Planet,
		"species":   Species,
		"STARSHIP":  Starship,
		"vehicles":  Vehicle,
	}
	for in, want := range cases {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCategory("droids")
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestCategory_FieldsIsACopy(t *testing.T) {
	fields := Film.Fields()
	fields[0].Label = "changed"
	assert.Equal(t, "Episode", Film.Fields()[0].Label)
}
