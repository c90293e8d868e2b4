package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardCountsFetchesAggregate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/dashboard/counts", r.URL.Path)
		respond(t, w, DashboardCounts{Documents: 12, Employees: 4, Years: 3})
	})

	counts, err := c.DashboardCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, counts.Documents)
	assert.Equal(t, 4, counts.Employees)
	assert.Equal(t, 3, counts.Years)
}

func TestDashboardCountsResults(t *testing.T) {
	counts := DashboardCounts{Documents: 12, Branches: 2}
	results := counts.Results()
	require.Len(t, results, 7)

	byName := map[string]CountResult{}
	for _, res := range results {
		byName[res.Resource] = res
	}
	assert.Equal(t, 12, byName["documents"].Count)
	assert.Equal(t, 2, byName["branches"].Count)
	assert.Equal(t, 0, byName["years"].Count)
	for _, res := range results {
		assert.NoError(t, res.Err)
	}
}

func TestCountAllPartialFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/branch/"):
			w.WriteHeader(http.StatusInternalServerError)
		case strings.HasPrefix(r.URL.Path, "/document/"):
			respond(t, w, []Document{{ID: 1}, {ID: 2}, {ID: 3}})
		default:
			respond(t, w, []NamedEntity{{ID: 1}})
		}
	})

	results := c.CountAll(context.Background())
	require.Len(t, results, 7)

	byName := map[string]CountResult{}
	for _, res := range results {
		byName[res.Resource] = res
	}

	// One failed resource does not take down the rest.
	assert.Error(t, byName["branches"].Err)
	assert.NoError(t, byName["documents"].Err)
	assert.Equal(t, 3, byName["documents"].Count)
	assert.NoError(t, byName["years"].Err)
	assert.Equal(t, 1, byName["years"].Count)
}

func TestCountAllWithoutToken(t *testing.T) {
	c, err := NewClient("http://localhost:1", 0)
	require.NoError(t, err)

	for _, res := range c.CountAll(context.Background()) {
		assert.ErrorIs(t, res.Err, ErrNoToken, res.Resource)
	}
}
