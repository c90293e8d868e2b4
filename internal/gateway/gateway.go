// Package gateway performs CRUD mutations against one REST resource
// and reconciles the server's response into the local collection.
package gateway

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/sh-bo/dms-cli/internal/api"
	"github.com/sh-bo/dms-cli/internal/list"
)

// ErrBusy is returned when a mutation is requested while another is
// still in flight. The triggering action stays disabled until the
// outstanding call completes, so a double-click cannot issue duplicate
// requests.
var ErrBusy = errors.New("a request is already in flight")

// Mutator is the slice of the REST resource a gateway needs.
// *api.Resource[T] satisfies it; tests substitute fakes.
type Mutator[T api.Entity] interface {
	Save(ctx context.Context, payload any) (T, error)
	Update(ctx context.Context, id int64, payload any) (T, error)
	UpdateStatus(ctx context.Context, id int64, active bool) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Gateway binds a REST resource to a list controller. Every mutation
// is all-or-nothing: on success the server's echo is folded into the
// collection; on failure the collection is left untouched and the
// error is surfaced.
type Gateway[T api.Entity] struct {
	resource Mutator[T]
	ctl      *list.Controller[T]
	inFlight atomic.Bool
}

// New builds a gateway over the given resource and controller.
func New[T api.Entity](resource Mutator[T], ctl *list.Controller[T]) *Gateway[T] {
	return &Gateway[T]{resource: resource, ctl: ctl}
}

// Busy reports whether a mutation is currently in flight.
func (g *Gateway[T]) Busy() bool { return g.inFlight.Load() }

// acquire latches the in-flight flag, refusing concurrent mutations.
func (g *Gateway[T]) acquire() error {
	if !g.inFlight.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

// Create sends the payload and appends the server-returned entity.
// The server is authoritative for generated fields; the local payload
// is never inserted directly.
func (g *Gateway[T]) Create(ctx context.Context, payload any) (T, error) {
	var zero T
	if err := g.acquire(); err != nil {
		return zero, err
	}
	defer g.inFlight.Store(false)

	created, err := g.resource.Save(ctx, payload)
	if err != nil {
		return zero, err
	}
	g.ctl.SetItems(append(g.ctl.Items(), created))
	return created, nil
}

// Update sends the payload and replaces the matching entity by id.
func (g *Gateway[T]) Update(ctx context.Context, id int64, payload any) (T, error) {
	var zero T
	if err := g.acquire(); err != nil {
		return zero, err
	}
	defer g.inFlight.Store(false)

	updated, err := g.resource.Update(ctx, id, payload)
	if err != nil {
		return zero, err
	}
	g.replace(updated)
	return updated, nil
}

// ToggleStatus sends the inverse of the entity's active flag. On
// rejection the local entity keeps its current flag.
func (g *Gateway[T]) ToggleStatus(ctx context.Context, entity T) (T, error) {
	updated, err := g.toggleRemote(ctx, entity)
	if err != nil {
		var zero T
		return zero, err
	}
	g.replace(updated)
	return updated, nil
}

// Remove deletes by id. On failure the entity is retained.
func (g *Gateway[T]) Remove(ctx context.Context, id int64) error {
	if err := g.deleteRemote(ctx, id); err != nil {
		return err
	}
	g.discard(id)
	return nil
}

// Outcome is a completed mutation that has not yet been folded into
// the collection. Gate.Execute produces one; Apply consumes it.
type Outcome[T api.Entity] struct {
	Kind   MutationKind
	Entity T     // server echo of the toggled record
	ID     int64 // id of the affected record
}

// Apply folds a completed mutation into the collection. It must run on
// the goroutine that owns the controller; the remote half (Execute) has
// no such restriction.
func (g *Gateway[T]) Apply(o *Outcome[T]) {
	if o == nil {
		return
	}
	switch o.Kind {
	case KindToggleStatus:
		g.replace(o.Entity)
	case KindDelete:
		g.discard(o.ID)
	}
}

// toggleRemote sends the status change without touching the collection.
func (g *Gateway[T]) toggleRemote(ctx context.Context, entity T) (T, error) {
	var zero T
	if err := g.acquire(); err != nil {
		return zero, err
	}
	defer g.inFlight.Store(false)

	updated, err := g.resource.UpdateStatus(ctx, entity.EntityID(), !entity.ActiveFlag())
	if err != nil {
		return zero, err
	}
	return updated, nil
}

// deleteRemote issues the delete without touching the collection.
func (g *Gateway[T]) deleteRemote(ctx context.Context, id int64) error {
	if err := g.acquire(); err != nil {
		return err
	}
	defer g.inFlight.Store(false)

	return g.resource.Delete(ctx, id)
}

func (g *Gateway[T]) discard(id int64) {
	items := g.ctl.Items()
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	g.ctl.SetItems(kept)
}

func (g *Gateway[T]) replace(updated T) {
	items := g.ctl.Items()
	next := make([]T, len(items))
	copy(next, items)
	for i, item := range next {
		if item.EntityID() == updated.EntityID() {
			next[i] = updated
			break
		}
	}
	g.ctl.SetItems(next)
}
