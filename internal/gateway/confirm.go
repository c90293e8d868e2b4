package gateway

import (
	"context"

	"github.com/sh-bo/dms-cli/internal/api"
)

// MutationKind classifies a pending mutation for display.
type MutationKind int

const (
	KindToggleStatus MutationKind = iota
	KindDelete
)

func (k MutationKind) String() string {
	switch k {
	case KindToggleStatus:
		return "toggle status"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Pending is a mutation awaiting user confirmation.
type Pending[T api.Entity] struct {
	Kind   MutationKind
	Target T
}

// Gate intercepts destructive mutations and requires explicit
// confirmation before the gateway is invoked.
//
// State machine: Idle -> Confirming -> Idle, by either Confirm or
// Cancel. A second Request while Confirming overwrites the pending
// mutation (last request wins).
type Gate[T api.Entity] struct {
	gw         *Gateway[T]
	pending    *Pending[T]
	confirming bool
}

// NewGate builds a gate over the given gateway.
func NewGate[T api.Entity](gw *Gateway[T]) *Gate[T] {
	return &Gate[T]{gw: gw}
}

// Request stores the mutation and enters Confirming. Nothing executes yet.
func (g *Gate[T]) Request(kind MutationKind, target T) {
	g.pending = &Pending[T]{Kind: kind, Target: target}
	g.confirming = true
}

// Confirming reports whether a mutation is awaiting confirmation.
func (g *Gate[T]) Confirming() bool { return g.confirming }

// Pending returns the stored mutation, or nil when idle.
func (g *Gate[T]) Pending() *Pending[T] { return g.pending }

// Confirm executes the pending mutation through the gateway and folds
// the result into the collection. The gate returns to Idle regardless
// of the outcome. Callers sharing the controller across goroutines use
// Execute and Apply instead.
func (g *Gate[T]) Confirm(ctx context.Context) error {
	o, err := g.Execute(ctx)
	if err != nil {
		return err
	}
	g.gw.Apply(o)
	return nil
}

// Execute runs the pending mutation's remote call only; the collection
// is not touched, so Execute is safe off the goroutine that owns the
// controller. The returned Outcome is handed to Apply once control is
// back on that goroutine. The gate returns to Idle either way.
func (g *Gate[T]) Execute(ctx context.Context) (*Outcome[T], error) {
	p := g.pending
	g.pending = nil
	g.confirming = false
	if p == nil {
		return nil, nil
	}
	switch p.Kind {
	case KindToggleStatus:
		updated, err := g.gw.toggleRemote(ctx, p.Target)
		if err != nil {
			return nil, err
		}
		return &Outcome[T]{Kind: KindToggleStatus, Entity: updated, ID: updated.EntityID()}, nil
	case KindDelete:
		id := p.Target.EntityID()
		if err := g.gw.deleteRemote(ctx, id); err != nil {
			return nil, err
		}
		return &Outcome[T]{Kind: KindDelete, ID: id}, nil
	default:
		return nil, nil
	}
}

// Apply folds an Execute outcome into the collection.
func (g *Gate[T]) Apply(o *Outcome[T]) {
	g.gw.Apply(o)
}

// Cancel clears the pending mutation without executing it.
func (g *Gate[T]) Cancel() {
	g.pending = nil
	g.confirming = false
}
