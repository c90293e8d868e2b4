package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateStartsIdle(t *testing.T) {
	gw, _, _ := seeded()
	gate := NewGate(gw)

	assert.False(t, gate.Confirming())
	assert.Nil(t, gate.Pending())
}

func TestRequestEntersConfirming(t *testing.T) {
	gw, _, _ := seeded(branch(1, "mumbai", true))
	gate := NewGate(gw)

	gate.Request(KindDelete, branch(1, "mumbai", true))
	assert.True(t, gate.Confirming())
	require.NotNil(t, gate.Pending())
	assert.Equal(t, KindDelete, gate.Pending().Kind)
	assert.Equal(t, int64(1), gate.Pending().Target.ID)
}

func TestLastRequestWins(t *testing.T) {
	gw, ctl, _ := seeded(branch(1, "mumbai", true), branch(2, "delhi", true))
	gate := NewGate(gw)

	gate.Request(KindDelete, branch(1, "mumbai", true))
	gate.Request(KindToggleStatus, branch(2, "delhi", true))

	require.NoError(t, gate.Confirm(context.Background()))
	// Only the second request executed: nothing was deleted, delhi toggled.
	items := ctl.Items()
	require.Len(t, items, 2)
	assert.True(t, items[0].Active.Bool())
	assert.False(t, items[1].Active.Bool())
}

func TestCancelExecutesNothing(t *testing.T) {
	gw, ctl, res := seeded(branch(1, "mumbai", true))
	gate := NewGate(gw)

	gate.Request(KindDelete, branch(1, "mumbai", true))
	gate.Cancel()

	assert.False(t, gate.Confirming())
	assert.Nil(t, gate.Pending())
	assert.Equal(t, 0, res.callCount())
	assert.Len(t, ctl.Items(), 1)

	// Confirm after cancel is a no-op.
	require.NoError(t, gate.Confirm(context.Background()))
	assert.Equal(t, 0, res.callCount())
}

func TestConfirmDelete(t *testing.T) {
	gw, ctl, _ := seeded(branch(1, "mumbai", true), branch(2, "delhi", true))
	gate := NewGate(gw)

	gate.Request(KindDelete, branch(2, "delhi", true))
	require.NoError(t, gate.Confirm(context.Background()))

	assert.False(t, gate.Confirming())
	require.Len(t, ctl.Items(), 1)
	assert.Equal(t, "mumbai", ctl.Items()[0].Name)
}

func TestConfirmReturnsToIdleOnFailure(t *testing.T) {
	gw, ctl, res := seeded(branch(1, "mumbai", true))
	res.err = errors.New("boom")
	gate := NewGate(gw)

	gate.Request(KindDelete, branch(1, "mumbai", true))
	err := gate.Confirm(context.Background())
	require.Error(t, err)

	// Failure still clears the gate; the entity survives.
	assert.False(t, gate.Confirming())
	assert.Nil(t, gate.Pending())
	assert.Len(t, ctl.Items(), 1)
}

func TestExecuteDefersReconcileUntilApply(t *testing.T) {
	gw, ctl, res := seeded(branch(1, "mumbai", true), branch(2, "delhi", true))
	gate := NewGate(gw)

	gate.Request(KindDelete, branch(2, "delhi", true))
	outcome, err := gate.Execute(context.Background())
	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.Equal(t, KindDelete, outcome.Kind)
	assert.Equal(t, int64(2), outcome.ID)

	// The remote call ran but the collection is untouched until Apply.
	assert.Equal(t, 1, res.callCount())
	assert.Len(t, ctl.Items(), 2)

	gate.Apply(outcome)
	require.Len(t, ctl.Items(), 1)
	assert.Equal(t, "mumbai", ctl.Items()[0].Name)
}

func TestExecuteToggleCarriesServerEcho(t *testing.T) {
	gw, ctl, _ := seeded(branch(1, "mumbai", true))
	gate := NewGate(gw)

	gate.Request(KindToggleStatus, branch(1, "mumbai", true))
	outcome, err := gate.Execute(context.Background())
	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.Equal(t, KindToggleStatus, outcome.Kind)
	assert.False(t, outcome.Entity.Active.Bool())
	assert.True(t, ctl.Items()[0].Active.Bool())

	gate.Apply(outcome)
	assert.False(t, ctl.Items()[0].Active.Bool())
}

func TestApplyNilOutcomeIsNoop(t *testing.T) {
	gw, ctl, _ := seeded(branch(1, "mumbai", true))
	gate := NewGate(gw)

	gate.Apply(nil)
	assert.Len(t, ctl.Items(), 1)
}

func TestMutationKindString(t *testing.T) {
	assert.Equal(t, "toggle status", KindToggleStatus.String())
	assert.Equal(t, "delete", KindDelete.String())
	assert.Equal(t, "unknown", MutationKind(99).String())
}
