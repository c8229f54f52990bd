package catalog

// Display names for the storefront categories. Unknown IDs display as-is.
var categoryDisplayNames = map[string]string{
	"descartaveis": "Descartáveis",
	"refis":        "Refis",
	"acessorios":   "Acessórios",
	"liquidos":     "Líquidos",
}

// DisplayName returns the human readable name of a category
func DisplayName(categoryID string) string {
	if name, ok := categoryDisplayNames[categoryID]; ok {
		return name
	}
	return categoryID
}

// Group is the run of items sharing one category, in the order the
// category was first encountered.
type Group struct {
	CategoryID  string
	DisplayName string
	Items       []Item
}

// Count returns the number of items in the group
func (g Group) Count() int {
	return len(g.Items)
}

// GroupByCategory partitions items by category. Groups appear in first-seen
// order and items keep their relative order inside each group.
func GroupByCategory(items []Item) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, item := range items {
		i, ok := index[item.CategoryID]
		if !ok {
			i = len(groups)
			index[item.CategoryID] = i
			groups = append(groups, Group{
				CategoryID:  item.CategoryID,
				DisplayName: DisplayName(item.CategoryID),
			})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// CategoriesInEncounterOrder returns the distinct category IDs in the order
// they first appear.
func CategoriesInEncounterOrder(items []Item) []string {
	groups := GroupByCategory(items)
	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.CategoryID
	}
	return ids
}
