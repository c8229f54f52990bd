package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Descartáveis", DisplayName("descartaveis"))
	assert.Equal(t, "Refis", DisplayName("refis"))
	assert.Equal(t, "Acessórios", DisplayName("acessorios"))
	assert.Equal(t, "Líquidos", DisplayName("liquidos"))
	assert.Equal(t, "pods", DisplayName("pods"))
}

func TestGroupByCategory(t *testing.T) {
	t.Run("groups in first-seen order and keeps item order", func(t *testing.T) {
		items := []Item{
			{ID: "1", CategoryID: "refis"},
			{ID: "2", CategoryID: "descartaveis"},
			{ID: "3", CategoryID: "refis"},
			{ID: "4", CategoryID: "liquidos"},
			{ID: "5", CategoryID: "descartaveis"},
		}

		groups := GroupByCategory(items)
		require.Len(t, groups, 3)

		assert.Equal(t, "refis", groups[0].CategoryID)
		assert.Equal(t, "Refis", groups[0].DisplayName)
		assert.Equal(t, []string{"1", "3"}, ids(groups[0].Items))

		assert.Equal(t, "descartaveis", groups[1].CategoryID)
		assert.Equal(t, []string{"2", "5"}, ids(groups[1].Items))
		assert.Equal(t, 2, groups[1].Count())

		assert.Equal(t, "liquidos", groups[2].CategoryID)
		assert.Equal(t, 1, groups[2].Count())
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, GroupByCategory(nil))
		assert.Empty(t, CategoriesInEncounterOrder(nil))
	})

	t.Run("category order", func(t *testing.T) {
		items := []Item{{CategoryID: "b"}, {CategoryID: "a"}, {CategoryID: "b"}}
		assert.Equal(t, []string{"b", "a"}, CategoriesInEncounterOrder(items))
	})
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
