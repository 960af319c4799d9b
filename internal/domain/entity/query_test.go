package entity

import (
	"testing"

	"entq/internal/errcodes"

	"github.com/stretchr/testify/assert"
)

func TestBuildQueryVariables(t *testing.T) {
	t.Run("defaults to display name ascending", func(t *testing.T) {
		vars := BuildQueryVariables("app-1", SortSpec{}, "")

		assert.Equal(t, "app-1", vars.AppID)
		assert.Equal(t, OrderBy{Field: "displayName", Direction: SortAsc}, vars.OrderBy)
		assert.Nil(t, vars.WhereName)
	})

	t.Run("uses the given field and direction", func(t *testing.T) {
		sorts := []SortSpec{
			{Field: "name", Direction: SortDesc},
			{Field: "description", Direction: SortAsc},
			{Field: "displayName", Direction: SortDesc},
		}

		for _, s := range sorts {
			vars := BuildQueryVariables("app-1", s, "")
			assert.Equal(t, OrderBy{Field: s.Field, Direction: s.Direction}, vars.OrderBy)
		}
	})

	t.Run("unset direction normalizes to ascending", func(t *testing.T) {
		vars := BuildQueryVariables("app-1", SortSpec{Field: "name"}, "")
		assert.Equal(t, SortAsc, vars.OrderBy.Direction)
		assert.Equal(t, "name", vars.OrderBy.Field)
	})

	t.Run("unset field keeps the given direction", func(t *testing.T) {
		vars := BuildQueryVariables("app-1", SortSpec{Direction: SortDesc}, "")
		assert.Equal(t, OrderBy{Field: DefaultSortField, Direction: SortDesc}, vars.OrderBy)
	})

	t.Run("empty search phrase yields no filter", func(t *testing.T) {
		vars := BuildQueryVariables("app-1", SortSpec{}, "")
		assert.Nil(t, vars.WhereName)
	})

	t.Run("search phrase yields a case insensitive contains filter", func(t *testing.T) {
		for _, phrase := range []string{"a", "Customer", " spaced ", "ÄÖ"} {
			vars := BuildQueryVariables("app-1", SortSpec{}, phrase)
			assert.Equal(t, &NameFilter{Contains: phrase, CaseInsensitive: true}, vars.WhereName)
		}
	})

	t.Run("order by map has exactly one field", func(t *testing.T) {
		m := BuildQueryVariables("app-1", SortSpec{Field: "name", Direction: SortDesc}, "").OrderBy.Map()
		assert.Equal(t, map[string]interface{}{"name": "Desc"}, m)
	})
}

func TestParseSortDirection(t *testing.T) {
	t.Run("parses known values", func(t *testing.T) {
		cases := map[string]SortDirection{
			"":           SortAsc,
			"asc":        SortAsc,
			"ASC":        SortAsc,
			"descending": SortDesc,
			"Desc":       SortDesc,
		}

		for in, out := range cases {
			d, err := ParseSortDirection(in)
			assert.NoError(t, err)
			assert.Equal(t, out, d, in)
		}
	})

	t.Run("fails on unknown values", func(t *testing.T) {
		_, err := ParseSortDirection("sideways")
		assert.ErrorIs(t, err, errcodes.ErrUnknownSortDirection)
	})

	t.Run("opposite flips direction", func(t *testing.T) {
		assert.Equal(t, SortDesc, SortAsc.Opposite())
		assert.Equal(t, SortAsc, SortDesc.Opposite())
		assert.Equal(t, SortDesc, SortDirection("").Opposite())
	})
}
