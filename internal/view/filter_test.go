package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erix3333/site-template/internal/catalog"
)

func testProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "p1", Title: "Classic Mug", Price: 10, Excerpt: "Stoneware mug", Category: "Kitchen"},
		{ID: "p2", Title: "Ceramic Vase", Price: 32, Excerpt: "Hand-thrown", Category: "Home"},
		{ID: "p3", Title: "Espresso Cups", Price: 21, Excerpt: "Porcelain set", Category: "Kitchen"},
		{ID: "p4", Title: "Wool Throw", Price: 64, Category: "Home"},
	}
}

func ids(products []catalog.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApplyZeroQueryKeepsCatalogOrder(t *testing.T) {
	got := Apply(testProducts(), Query{})
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(got))
}

func TestApplySearchMatchesTitleOrExcerpt(t *testing.T) {
	// title match, case-insensitive
	got := Apply(testProducts(), Query{Search: "MUG"})
	assert.Equal(t, []string{"p1"}, ids(got))

	// excerpt match
	got = Apply(testProducts(), Query{Search: "porcelain"})
	assert.Equal(t, []string{"p3"}, ids(got))
}

func TestApplyFiltersAreConjunctive(t *testing.T) {
	q := Query{Search: "c", Category: "Kitchen", MaxPrice: 15}
	got := Apply(testProducts(), q)
	assert.Equal(t, []string{"p1"}, ids(got))
}

func TestApplyPriceCeilingIsInclusive(t *testing.T) {
	got := Apply(testProducts(), Query{MaxPrice: 21})
	assert.Equal(t, []string{"p1", "p3"}, ids(got))
}

func TestApplySortKeys(t *testing.T) {
	products := testProducts()

	got := Apply(products, Query{Sort: SortPriceAsc})
	assert.Equal(t, []string{"p1", "p3", "p2", "p4"}, ids(got))

	got = Apply(products, Query{Sort: SortPriceDesc})
	assert.Equal(t, []string{"p4", "p2", "p3", "p1"}, ids(got))

	got = Apply(products, Query{Sort: SortTitleAsc})
	assert.Equal(t, []string{"p2", "p1", "p3", "p4"}, ids(got))

	// sorting never mutates the snapshot
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(products))
}

func TestCategories(t *testing.T) {
	cats := Categories(testProducts())
	require.Equal(t, []string{"Kitchen", "Home"}, cats)

	assert.Empty(t, Categories([]catalog.Product{{ID: "x", Title: "No category", Price: 1}}))
}
