package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alexisbeaulieu97/todos/pkg/errors"
)

func openAll(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	file, err := Open(DriverFile, filepath.Join(dir, "prefs.json"))
	require.NoError(t, err)
	sqlite, err := Open(DriverSQLite, filepath.Join(dir, "prefs.db"))
	require.NoError(t, err)
	memory, err := Open(DriverMemory, "")
	require.NoError(t, err)

	stores := map[string]Store{
		DriverFile:   file,
		DriverSQLite: sqlite,
		DriverMemory: memory,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStoreGetMissingKey(t *testing.T) {
	for name, store := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			value, ok, err := store.Get(context.Background(), "darkMode")
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, "", value)
		})
	}
}

func TestStoreSetThenGet(t *testing.T) {
	ctx := context.Background()
	for name, store := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "darkMode", "true"))
			require.NoError(t, store.Set(ctx, "darkMode", "false"))

			value, ok, err := store.Get(ctx, "darkMode")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "false", value)
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("redis", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "darkMode", "true"))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")

	second, err := NewFileStore(path)
	require.NoError(t, err)
	value, ok, err := second.Get(ctx, "darkMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)
}

func TestFileStoreRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileStore(path)
	require.Error(t, err)

	var storageErr *apperrors.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, DriverFile, storageErr.Driver)
}

func TestFileStoreEmptyDocumentIsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, ok, err := store.Get(context.Background(), "darkMode")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreKeepsStateWhenWriteFails(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "darkMode", "false"))

	// A directory squatting on the temp path makes the write fail.
	require.NoError(t, os.Mkdir(path+".tmp", 0755))

	err = store.Set(ctx, "darkMode", "true")
	require.Error(t, err)

	value, _, err := store.Get(ctx, "darkMode")
	require.NoError(t, err)
	assert.Equal(t, "false", value)
}

func TestSQLiteStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "darkMode", "true"))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	value, ok, err := second.Get(ctx, "darkMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewMemoryStore().Set(ctx, "darkMode", "true")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
