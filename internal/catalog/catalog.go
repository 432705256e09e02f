// Package catalog exposes the fixed, searchable list of tools and analysis
// modules. The catalog is derived from the locale table, so labels and
// descriptions follow the session language.
package catalog

import (
	"strings"

	"geovision-backend/internal/locale"
)

// Group tags a catalog item by surface.
type Group string

const (
	GroupDataEntry Group = "dataEntry"
	GroupModule    Group = "module"
	GroupTool      Group = "tool"
)

// Item is one searchable catalog entry.
type Item struct {
	ID          string `json:"id"`
	Group       Group  `json:"group"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Items builds the nine-entry catalog for a locale table: the data entry
// surface, the six analysis modules, and the two result tools.
func Items(table locale.Table) []Item {
	items := make([]Item, 0, len(table.Modules)+3)
	items = append(items, Item{
		ID:    "dataEntry",
		Group: GroupDataEntry,
		Label: table.DataEntryLabel,
	})
	for i, m := range table.Modules {
		items = append(items, Item{
			ID:          moduleIDs[i],
			Group:       GroupModule,
			Label:       m.Label,
			Description: m.Description,
		})
	}
	items = append(items,
		Item{ID: "results", Group: GroupTool, Label: table.ResultsToolLabel},
		Item{ID: "heatmapScript", Group: GroupTool, Label: table.HeatmapToolLabel},
	)
	return items
}

// moduleIDs are stable across locales; labels are not.
var moduleIDs = []string{
	"depositType",
	"orePetrography",
	"alterationZoning",
	"geochemicalSignature",
	"remoteSensingInterpretation",
	"explorationTargeting",
}

// Filter returns the items whose label or description contains the query,
// case-insensitively. An empty query returns every item.
func Filter(query string, items []Item) []Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), query) ||
			strings.Contains(strings.ToLower(item.Description), query) {
			out = append(out, item)
		}
	}
	return out
}
