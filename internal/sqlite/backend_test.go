package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

func attach(t *testing.T, dir string) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { _ = b.Detach() })
	return b
}

func TestBackend_Attach(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b := attach(t, dir)

	_, err := os.Stat(filepath.Join(dir, DatabaseFile))
	assert.NoError(t, err, "database file should be created")
	assert.Equal(t, filepath.Join(dir, DatabaseFile), b.Path())

	err = b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestBackend_AttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)

	_, err = b.GetTable(types.ItemsTable)
	assert.ErrorIs(t, err, types.ErrWorkspaceDetached)
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	items, err := b.GetTable(types.ItemsTable)
	require.NoError(t, err)

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "Detach is idempotent")
	assert.Empty(t, b.Path())

	_, err = b.GetTable(types.ItemsTable)
	assert.ErrorIs(t, err, types.ErrWorkspaceDetached)

	_, err = items.Get("roads")
	assert.ErrorIs(t, err, types.ErrWorkspaceDetached, "held tables fail after detach")
}

func TestBackend_GetTable(t *testing.T) {
	b := attach(t, t.TempDir())

	for _, name := range types.StandardTableNames {
		table, err := b.GetTable(name)
		assert.NoError(t, err, name)
		assert.NotNil(t, table, name)
	}

	_, err := b.GetTable("layers")
	assert.ErrorIs(t, err, types.ErrTableNotFound)
}

func TestBackend_DataSurvivesReattach(t *testing.T) {
	dir := t.TempDir()

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	strata, err := b.GetTable(types.StrataTable)
	require.NoError(t, err)
	_, err = strata.Set("", &types.StratumRecord{ItemID: "roads", StratumID: types.StratumUser, Trait: "name", Value: "Main roads"})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	b2 := attach(t, dir)
	strata, err = b2.GetTable(types.StrataTable)
	require.NoError(t, err)
	got, err := strata.Get(types.StratumKey("roads", types.StratumUser, "name"))
	require.NoError(t, err)
	assert.Equal(t, "Main roads", got.(*types.StratumRecord).Value)
}
