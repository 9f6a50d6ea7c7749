package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/erix3333/site-template/internal/catalog"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	// SortRelevance keeps the catalog's own order.
	SortRelevance SortKey = "relevance"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
	SortTitleAsc  SortKey = "titleAsc"
)

// Query holds the storefront's filter controls. The zero value matches
// everything in catalog order.
type Query struct {
	Search   string
	Category string  // exact match; empty means all categories
	MaxPrice float64 // inclusive ceiling in base currency; <= 0 means no ceiling
	Sort     SortKey
}

var titleCollator = collate.New(language.English)

// Apply derives the display sequence from a catalog snapshot. Filters are
// conjunctive; the input slice is never modified.
func Apply(products []catalog.Product, q Query) []catalog.Product {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !matchesSearch(p, needle) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.MaxPrice > 0 && p.Price > q.MaxPrice {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortTitleAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return titleCollator.CompareString(out[i].Title, out[j].Title) < 0
		})
	}
	return out
}

func matchesSearch(p catalog.Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Excerpt), needle)
}

// Categories lists the distinct non-empty categories in first-seen order,
// for populating the category filter control.
func Categories(products []catalog.Product) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}
