package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadIsMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/document/save", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Annual Report", r.FormValue("title"))
		assert.Equal(t, "Finance", r.FormValue("category"))
		assert.Equal(t, "2025", r.FormValue("year"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "report.pdf", header.Filename)

		respond(t, w, Document{
			ID: 31, FileNo: "DOC-2025-031", Title: "Annual Report", FileName: "report.pdf",
		})
	})

	created, err := c.Documents().Upload(context.Background(),
		DocumentPayload{Title: "Annual Report", Category: "Finance", DocType: "Report", Year: "2025"},
		"report.pdf", strings.NewReader("%PDF-1.4 fake"))
	require.NoError(t, err)
	// Server-generated identifiers come back on the echo.
	assert.Equal(t, int64(31), created.ID)
	assert.Equal(t, "DOC-2025-031", created.FileNo)
}

func TestSetApproval(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/document/updatestatus/5", r.URL.Path)
		assert.Equal(t, http.MethodPut, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, false, body["approved"])
		assert.Equal(t, "missing signature page", body["remarks"])
		respond(t, w, Document{ID: 5, Approved: Flag(false), Remarks: "missing signature page"})
	})

	updated, err := c.Documents().SetApproval(context.Background(), 5, false, "missing signature page")
	require.NoError(t, err)
	assert.False(t, updated.Approved.Bool())
}

func TestDownload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/document/download/8", r.URL.Path)
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("file-bytes"))
	})

	data, err := c.Documents().Download(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, []byte("file-bytes"), data)
}

func TestDownloadNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"no such document"}`))
	})

	_, err := c.Documents().Download(context.Background(), 999)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}
