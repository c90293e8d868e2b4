package list

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	ID    int
	Title string
}

func makeDocs(n int) []doc {
	items := make([]doc, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, doc{ID: i, Title: fmt.Sprintf("report-%02d", i)})
	}
	return items
}

func TestNewDefaults(t *testing.T) {
	c := New[doc](0)
	assert.Equal(t, DefaultPageSize, c.PageSize())
	assert.Equal(t, 1, c.Page())
	assert.Empty(t, c.VisiblePage())
	assert.Equal(t, 0, c.TotalPages())
}

func TestPagination(t *testing.T) {
	c := New[doc](5)
	c.SetItems(makeDocs(12))

	assert.Equal(t, 12, c.FilteredCount())
	assert.Equal(t, 3, c.TotalPages())

	// Page 1: items 1-5.
	page := c.VisiblePage()
	require.Len(t, page, 5)
	assert.Equal(t, 1, page[0].ID)
	assert.Equal(t, 5, page[4].ID)

	// Page 3 is a partial page: items 11-12.
	c.GoToPage(3)
	page = c.VisiblePage()
	require.Len(t, page, 2)
	assert.Equal(t, 11, page[0].ID)
	assert.Equal(t, 12, page[1].ID)
}

func TestGoToPageClamps(t *testing.T) {
	c := New[doc](5)
	c.SetItems(makeDocs(12))

	c.GoToPage(99)
	assert.Equal(t, 3, c.Page())

	c.GoToPage(-4)
	assert.Equal(t, 1, c.Page())

	c.NextPage()
	c.NextPage()
	c.NextPage() // clamped at the last page
	assert.Equal(t, 3, c.Page())

	c.PrevPage()
	assert.Equal(t, 2, c.Page())
}

func TestGoToPageNoopWhenEmpty(t *testing.T) {
	c := New[doc](5)
	c.GoToPage(3)
	assert.Equal(t, 1, c.Page())

	c.SetItems(makeDocs(12))
	c.SetSearchTerm("no-such-title")
	assert.Equal(t, 0, c.TotalPages())
	c.GoToPage(2)
	assert.Equal(t, 1, c.Page())
	assert.Empty(t, c.VisiblePage())
}

func TestSearchResetsToFirstPage(t *testing.T) {
	c := New[doc](5)
	c.SetItems(makeDocs(12))
	c.GoToPage(3)

	// Narrowing from page 3 must land on page 1 of the filtered set.
	c.SetSearchTerm("report-1")
	assert.Equal(t, 1, c.Page())
	// report-10, report-11, report-12 match (report-1 has a trailing zero-pad).
	assert.Equal(t, 3, c.FilteredCount())
	assert.Equal(t, 1, c.TotalPages())

	page := c.VisiblePage()
	require.Len(t, page, 3)
	for _, d := range page {
		assert.Contains(t, d.Title, "report-1")
	}
}

func TestNarrowFilterFromDeepPage(t *testing.T) {
	c := New[doc](5)
	items := makeDocs(10)
	items = append(items, doc{11, "audit trail"}, doc{12, "audit summary"})
	c.SetItems(items)
	c.GoToPage(3)

	c.SetSearchTerm("audit")
	assert.Equal(t, 1, c.Page())
	assert.Equal(t, 2, c.FilteredCount())
	page := c.VisiblePage()
	require.Len(t, page, 2)
	assert.Equal(t, "audit trail", page[0].Title)
	assert.Equal(t, "audit summary", page[1].Title)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	c := New[doc](10)
	c.SetItems([]doc{{1, "Annual Report"}, {2, "invoice"}, {3, "ANNUAL budget"}})

	c.SetSearchTerm("annual")
	assert.Equal(t, 2, c.FilteredCount())

	c.SetSearchTerm("ANNUAL")
	assert.Equal(t, 2, c.FilteredCount())

	c.SetSearchTerm("")
	assert.Equal(t, 3, c.FilteredCount())
}

func TestSetItemsClampsPage(t *testing.T) {
	c := New[doc](5)
	c.SetItems(makeDocs(12))
	c.GoToPage(3)

	// Refetch shrinks the collection: the page clamps instead of
	// pointing past the end.
	c.SetItems(makeDocs(4))
	assert.Equal(t, 1, c.Page())
	assert.Len(t, c.VisiblePage(), 4)
}

func TestSetItemsIsIdempotent(t *testing.T) {
	c := New[doc](5)
	items := makeDocs(12)
	c.SetItems(items)
	c.GoToPage(2)
	before := c.VisiblePage()

	c.SetItems(items)
	assert.Equal(t, 2, c.Page())
	assert.Equal(t, before, c.VisiblePage())
}

func TestSetPageSize(t *testing.T) {
	c := New[doc](5)
	c.SetItems(makeDocs(12))
	c.GoToPage(3)

	c.SetPageSize(25)
	assert.Equal(t, 1, c.TotalPages())
	assert.Equal(t, 1, c.Page())
	assert.Len(t, c.VisiblePage(), 12)

	c.SetPageSize(0) // ignored
	assert.Equal(t, 25, c.PageSize())
}

func TestVisiblePageOnlyContainsMatches(t *testing.T) {
	c := New[doc](3)
	c.SetItems([]doc{
		{1, "alpha"}, {2, "beta"}, {3, "alphabet"},
		{4, "gamma"}, {5, "alpine"}, {6, "delta"},
	})
	c.SetSearchTerm("alp")

	assert.Equal(t, 3, c.FilteredCount())
	page := c.VisiblePage()
	require.Len(t, page, 3)
	for _, d := range page {
		assert.Contains(t, d.Title, "alp")
	}
}

func TestCustomPredicate(t *testing.T) {
	exact := func(d doc, term string) bool {
		return term == "" || d.Title == term
	}
	c := NewWithPredicate[doc](10, exact)
	c.SetItems([]doc{{1, "alpha"}, {2, "alphabet"}})

	c.SetSearchTerm("alpha")
	assert.Equal(t, 1, c.FilteredCount())
}
