package api

import (
	"context"
	"fmt"
	"sync"
)

// CountResult is one resource's record count, or the error that
// prevented fetching it.
type CountResult struct {
	Resource string
	Count    int
	Err      error
}

// DashboardCounts fetches the landing-screen counts in one call when
// the backend supports it.
func (c *Client) DashboardCounts(ctx context.Context) (DashboardCounts, error) {
	var counts DashboardCounts
	req, err := c.authRequest()
	if err != nil {
		return counts, err
	}
	resp, err := req.SetContext(ctx).SetResult(&counts).Get("/dashboard/counts")
	if err != nil {
		return counts, fmt.Errorf("dashboard: %w", err)
	}
	if err := c.checkResponse("dashboard", resp); err != nil {
		return counts, err
	}
	return counts, nil
}

// Results flattens the aggregate counts into the per-resource form
// CountAll produces, so callers render both the same way.
func (c DashboardCounts) Results() []CountResult {
	return []CountResult{
		{Resource: "documents", Count: c.Documents},
		{Resource: "employees", Count: c.Employees},
		{Resource: "branches", Count: c.Branches},
		{Resource: "departments", Count: c.Departments},
		{Resource: "categories", Count: c.Categories},
		{Resource: "types", Count: c.Types},
		{Resource: "years", Count: c.Years},
	}
}

// CountAll fetches each resource's count concurrently via findAll.
// One resource failing does not abort the others: every result carries
// its own error, and the caller renders partial results with the
// failures called out.
func (c *Client) CountAll(ctx context.Context) []CountResult {
	type fetcher struct {
		name string
		fn   func(context.Context) (int, error)
	}
	fetchers := []fetcher{
		{"documents", func(ctx context.Context) (int, error) { return countOf(ctx, c.Documents().Resource) }},
		{"employees", func(ctx context.Context) (int, error) { return countOf(ctx, c.Employees()) }},
		{"branches", func(ctx context.Context) (int, error) { return countOf(ctx, c.Branches()) }},
		{"departments", func(ctx context.Context) (int, error) { return countOf(ctx, c.Departments()) }},
		{"categories", func(ctx context.Context) (int, error) { return countOf(ctx, c.Categories()) }},
		{"types", func(ctx context.Context) (int, error) { return countOf(ctx, c.DocTypes()) }},
		{"years", func(ctx context.Context) (int, error) { return countOf(ctx, c.Years()) }},
	}

	results := make([]CountResult, len(fetchers))
	var wg sync.WaitGroup
	for i, f := range fetchers {
		wg.Add(1)
		go func(i int, f fetcher) {
			defer wg.Done()
			n, err := f.fn(ctx)
			results[i] = CountResult{Resource: f.name, Count: n, Err: err}
		}(i, f)
	}
	wg.Wait()
	return results
}

func countOf[T Entity](ctx context.Context, r *Resource[T]) (int, error) {
	items, err := r.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
