// Package list provides the filterable, paginated collection state
// behind every table screen: one generic controller instead of a
// per-screen copy of the same filter/slice arithmetic.
package list

import (
	"fmt"
	"strings"
)

// DefaultPageSize is used when a caller passes a non-positive size.
const DefaultPageSize = 10

// Predicate decides whether an item matches a search term. It must be
// pure: VisiblePage calls it once per item on every recompute.
type Predicate[T any] func(item T, term string) bool

// ContainsFold is the default predicate: the item's fields are
// stringified and matched case-insensitively against the term.
func ContainsFold[T any](item T, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(
		strings.ToLower(fmt.Sprintf("%v", item)),
		strings.ToLower(term),
	)
}

// Controller owns an in-memory collection, a search term and 1-based
// pagination state, and derives the visible page from the three.
type Controller[T any] struct {
	items     []T
	predicate Predicate[T]
	term      string
	pageSize  int
	page      int
}

// New builds a controller with the given page size and the default
// predicate. A non-positive size falls back to DefaultPageSize.
func New[T any](pageSize int) *Controller[T] {
	return NewWithPredicate[T](pageSize, ContainsFold[T])
}

// NewWithPredicate builds a controller with a custom predicate.
func NewWithPredicate[T any](pageSize int, p Predicate[T]) *Controller[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if p == nil {
		p = ContainsFold[T]
	}
	return &Controller[T]{predicate: p, pageSize: pageSize, page: 1}
}

// SetItems replaces the collection wholesale. The current page is kept
// unless it falls out of range, in which case it is clamped.
func (c *Controller[T]) SetItems(items []T) {
	c.items = items
	c.clampPage()
}

// SetSearchTerm updates the filter input and resets to page 1, so a
// narrowed result set never lands on an empty page.
func (c *Controller[T]) SetSearchTerm(term string) {
	c.term = term
	c.page = 1
}

// SearchTerm returns the current filter input.
func (c *Controller[T]) SearchTerm() string { return c.term }

// SetPageSize changes the page size and clamps the current page into
// the recomputed range. Non-positive sizes are ignored.
func (c *Controller[T]) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	c.pageSize = n
	c.clampPage()
}

// PageSize returns the current page size.
func (c *Controller[T]) PageSize() int { return c.pageSize }

// Page returns the current 1-based page number.
func (c *Controller[T]) Page() int { return c.page }

// GoToPage clamps n into [1, TotalPages] and moves there. With no
// filtered items it is a no-op.
func (c *Controller[T]) GoToPage(n int) {
	total := c.TotalPages()
	if total == 0 {
		return
	}
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	c.page = n
}

// NextPage advances one page, clamped.
func (c *Controller[T]) NextPage() { c.GoToPage(c.page + 1) }

// PrevPage goes back one page, clamped.
func (c *Controller[T]) PrevPage() { c.GoToPage(c.page - 1) }

// FilteredCount returns the number of items matching the search term.
func (c *Controller[T]) FilteredCount() int {
	n := 0
	for _, item := range c.items {
		if c.predicate(item, c.term) {
			n++
		}
	}
	return n
}

// TotalPages returns ceil(FilteredCount/pageSize); 0 when nothing matches.
func (c *Controller[T]) TotalPages() int {
	count := c.FilteredCount()
	if count == 0 {
		return 0
	}
	return (count + c.pageSize - 1) / c.pageSize
}

// VisiblePage returns the current page of filtered items. Pure and
// deterministic given the controller state; never more than pageSize
// items, each of which matches the current term.
func (c *Controller[T]) VisiblePage() []T {
	filtered := make([]T, 0, c.pageSize)
	skip := (c.safePage() - 1) * c.pageSize
	for _, item := range c.items {
		if !c.predicate(item, c.term) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		filtered = append(filtered, item)
		if len(filtered) == c.pageSize {
			break
		}
	}
	return filtered
}

// Items returns the unfiltered collection in fetch order.
func (c *Controller[T]) Items() []T { return c.items }

// safePage returns the current page clamped against the live filtered
// count, so VisiblePage stays correct even when the term changed the
// range since the last explicit navigation.
func (c *Controller[T]) safePage() int {
	total := c.TotalPages()
	if total == 0 {
		return 1
	}
	if c.page > total {
		return total
	}
	return c.page
}

func (c *Controller[T]) clampPage() {
	total := c.TotalPages()
	if total == 0 {
		c.page = 1
		return
	}
	if c.page > total {
		c.page = total
	}
	if c.page < 1 {
		c.page = 1
	}
}
