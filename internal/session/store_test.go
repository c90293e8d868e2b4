package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func adminSession() Session {
	return Session{
		Token:       "tok-1",
		UserID:      9,
		DisplayName: "Asha",
		Role:        "ADMIN",
	}
}

func TestLoadWithoutSession(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, adminSession()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", loaded.Token)
	assert.Equal(t, int64(9), loaded.UserID)
	assert.Equal(t, "Asha", loaded.DisplayName)
	assert.True(t, loaded.IsAdmin())
	assert.False(t, loaded.DocsPanelExpanded)
	assert.False(t, loaded.AdminPanelExpanded)
}

func TestSaveRequiresToken(t *testing.T) {
	store := newTestStore(t)
	err := store.Save(context.Background(), Session{Role: "USER"})
	assert.Error(t, err)
}

func TestSaveReplacesWholesale(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, adminSession()))

	// A second login replaces the single row; there is never more than
	// one session.
	next := Session{Token: "tok-2", UserID: 4, DisplayName: "Ravi", Role: "USER"}
	require.NoError(t, store.Save(ctx, next))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", loaded.Token)
	assert.Equal(t, "Ravi", loaded.DisplayName)
	assert.False(t, loaded.IsAdmin())
}

func TestSetPanels(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// No session yet: nothing to update.
	assert.ErrorIs(t, store.SetPanels(ctx, true, false), ErrNoSession)

	require.NoError(t, store.Save(ctx, adminSession()))
	require.NoError(t, store.SetPanels(ctx, true, true))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.DocsPanelExpanded)
	assert.True(t, loaded.AdminPanelExpanded)
	// Identity fields are untouched.
	assert.Equal(t, "tok-1", loaded.Token)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, adminSession()))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	// Clearing an already-empty store is fine.
	require.NoError(t, store.Clear(ctx))
}

func TestTokenSource(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	token, err := store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save(ctx, adminSession()))
	token, err = store.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, adminSession()))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", loaded.Token)
}
