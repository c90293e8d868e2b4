package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sh-bo/dms-cli/internal/api"
)

func TestDocumentToggleUsesApprovalEndpoint(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/document/updatestatus/5", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.Document{ID: 5, Approved: api.Flag(true)})
	}))
	defer srv.Close()

	client, err := api.NewClient(srv.URL, time.Second, api.WithTokens(api.StaticToken("tok-1")))
	require.NoError(t, err)

	updated, err := docMutator{client.Documents()}.UpdateStatus(context.Background(), 5, true)
	require.NoError(t, err)
	assert.True(t, updated.Approved.Bool())

	// Documents are approved or rejected, never "active": the body
	// must carry the approval field and the remarks slot.
	assert.Contains(t, body, "approved")
	assert.Contains(t, body, "remarks")
	assert.NotContains(t, body, "active")
	assert.Equal(t, true, body["approved"])
}
