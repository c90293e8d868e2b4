package api

import (
	"context"
	"fmt"
	"io"
)

// DocumentPayload is the metadata half of an upload.
type DocumentPayload struct {
	Title      string `json:"title"`
	Category   string `json:"category"`
	DocType    string `json:"type"`
	Year       string `json:"year"`
	Branch     string `json:"branch"`
	Department string `json:"department"`
	Remarks    string `json:"remarks,omitempty"`
}

// Documents is the document endpoint family. On top of the standard
// CRUD family it adds a multipart upload and approve/reject.
type Documents struct {
	*Resource[Document]
}

// Documents returns the document resource client.
func (c *Client) Documents() *Documents {
	return &Documents{Resource: NewResource[Document](c, "document")}
}

// Upload sends the file and its metadata as one multipart request.
// The file contents are opaque to this layer. The returned Document is
// the server's echo, authoritative for ID, FileNo and UploadedOn.
func (d *Documents) Upload(ctx context.Context, payload DocumentPayload, fileName string, file io.Reader) (Document, error) {
	var created Document
	req, err := d.client.authRequest()
	if err != nil {
		return created, err
	}
	resp, err := req.SetContext(ctx).
		SetFileReader("file", fileName, file).
		SetMultipartFormData(map[string]string{
			"title":      payload.Title,
			"category":   payload.Category,
			"type":       payload.DocType,
			"year":       payload.Year,
			"branch":     payload.Branch,
			"department": payload.Department,
			"remarks":    payload.Remarks,
		}).
		SetResult(&created).
		Post("/document/save")
	if err != nil {
		return created, fmt.Errorf("document: upload: %w", err)
	}
	if err := d.client.checkResponse("document", resp); err != nil {
		return created, err
	}
	return created, nil
}

// SetApproval approves or rejects a document and returns the server's echo.
func (d *Documents) SetApproval(ctx context.Context, id int64, approved bool, remarks string) (Document, error) {
	var updated Document
	req, err := d.client.authRequest()
	if err != nil {
		return updated, err
	}
	resp, err := req.SetContext(ctx).
		SetBody(map[string]any{"approved": approved, "remarks": remarks}).
		SetResult(&updated).
		Put(fmt.Sprintf("/document/updatestatus/%d", id))
	if err != nil {
		return updated, fmt.Errorf("document: updatestatus %d: %w", id, err)
	}
	if err := d.client.checkResponse("document", resp); err != nil {
		return updated, err
	}
	return updated, nil
}

// Download streams a stored document's file contents.
func (d *Documents) Download(ctx context.Context, id int64) ([]byte, error) {
	req, err := d.client.authRequest()
	if err != nil {
		return nil, err
	}
	resp, err := req.SetContext(ctx).Get(fmt.Sprintf("/document/download/%d", id))
	if err != nil {
		return nil, fmt.Errorf("document: download %d: %w", id, err)
	}
	if err := d.client.checkResponse("document", resp); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}
