package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Resource is the endpoint family for one entity type. Every family
// follows the same convention on the backend:
//
//	GET    /{name}/findAll
//	POST   /{name}/save
//	PUT    /{name}/update/{id}
//	DELETE /{name}/delete/{id}
//	PUT    /{name}/updatestatus/{id}
type Resource[T Entity] struct {
	client *Client
	name   string
}

// NewResource binds a typed resource to its endpoint family.
func NewResource[T Entity](c *Client, name string) *Resource[T] {
	return &Resource[T]{client: c, name: name}
}

// Name returns the resource's endpoint family name.
func (r *Resource[T]) Name() string { return r.name }

// FindAll fetches the full collection in server order.
func (r *Resource[T]) FindAll(ctx context.Context) ([]T, error) {
	req, err := r.client.authRequest()
	if err != nil {
		return nil, err
	}
	var items []T
	resp, err := req.SetContext(ctx).SetResult(&items).Get("/" + r.name + "/findAll")
	if err != nil {
		return nil, fmt.Errorf("%s: findAll: %w", r.name, err)
	}
	if err := r.client.checkResponse(r.name, resp); err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates a new record and returns the server's echo, which is
// authoritative for generated fields (id, timestamps, derived codes).
// An idempotency key is attached so an accidental resubmission of the
// same attempt can be deduplicated server-side.
func (r *Resource[T]) Save(ctx context.Context, payload any) (T, error) {
	var created T
	req, err := r.client.authRequest()
	if err != nil {
		return created, err
	}
	resp, err := req.SetContext(ctx).
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetBody(payload).
		SetResult(&created).
		Post("/" + r.name + "/save")
	if err != nil {
		return created, fmt.Errorf("%s: save: %w", r.name, err)
	}
	if err := r.client.checkResponse(r.name, resp); err != nil {
		return created, err
	}
	return created, nil
}

// Update replaces the record with the given id and returns the server's echo.
func (r *Resource[T]) Update(ctx context.Context, id int64, payload any) (T, error) {
	var updated T
	req, err := r.client.authRequest()
	if err != nil {
		return updated, err
	}
	resp, err := req.SetContext(ctx).
		SetBody(payload).
		SetResult(&updated).
		Put(fmt.Sprintf("/%s/update/%d", r.name, id))
	if err != nil {
		return updated, fmt.Errorf("%s: update %d: %w", r.name, id, err)
	}
	if err := r.client.checkResponse(r.name, resp); err != nil {
		return updated, err
	}
	return updated, nil
}

// UpdateStatus sets the record's active flag and returns the server's echo.
func (r *Resource[T]) UpdateStatus(ctx context.Context, id int64, active bool) (T, error) {
	var updated T
	req, err := r.client.authRequest()
	if err != nil {
		return updated, err
	}
	resp, err := req.SetContext(ctx).
		SetBody(map[string]bool{"active": active}).
		SetResult(&updated).
		Put(fmt.Sprintf("/%s/updatestatus/%d", r.name, id))
	if err != nil {
		return updated, fmt.Errorf("%s: updatestatus %d: %w", r.name, id, err)
	}
	if err := r.client.checkResponse(r.name, resp); err != nil {
		return updated, err
	}
	return updated, nil
}

// Delete removes the record with the given id.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	req, err := r.client.authRequest()
	if err != nil {
		return err
	}
	resp, err := req.SetContext(ctx).Delete(fmt.Sprintf("/%s/delete/%d", r.name, id))
	if err != nil {
		return fmt.Errorf("%s: delete %d: %w", r.name, id, err)
	}
	return r.client.checkResponse(r.name, resp)
}

// Typed resource accessors, one per endpoint family.

func (c *Client) Employees() *Resource[Employee]   { return NewResource[Employee](c, "employee") }
func (c *Client) Roles() *Resource[NamedEntity]    { return NewResource[NamedEntity](c, "role") }
func (c *Client) Branches() *Resource[NamedEntity] { return NewResource[NamedEntity](c, "branch") }
func (c *Client) Departments() *Resource[NamedEntity] {
	return NewResource[NamedEntity](c, "department")
}
func (c *Client) Categories() *Resource[NamedEntity] { return NewResource[NamedEntity](c, "category") }
func (c *Client) DocTypes() *Resource[NamedEntity]   { return NewResource[NamedEntity](c, "type") }
func (c *Client) Years() *Resource[NamedEntity]      { return NewResource[NamedEntity](c, "year") }
