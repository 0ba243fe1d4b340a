package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	stores := map[string]Store{}
	for _, backend := range Backends() {
		s, err := Open(backend, t.TempDir())
		require.NoError(t, err, backend)
		t.Cleanup(func() { s.Close() })
		stores[backend] = s
	}
	return stores
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get("slot.json")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put("slot.json", []byte(`[1]`)))
			got, err := s.Get("slot.json")
			require.NoError(t, err)
			assert.Equal(t, `[1]`, string(got))

			require.NoError(t, s.Put("slot.json", []byte(`[]`)))
			got, err = s.Get("slot.json")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))

			require.NoError(t, s.Delete("slot.json"))
			_, err = s.Get("slot.json")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, s.Delete("slot.json"), "deleting twice is fine")
		})
	}
}

func TestInvalidKeys(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "  ", "a/b", `a\b`, "..", "."} {
				_, err := s.Get(key)
				assert.ErrorIs(t, err, ErrInvalidKey, "get %q", key)
				assert.ErrorIs(t, s.Put(key, nil), ErrInvalidKey, "put %q", key)
				assert.ErrorIs(t, s.Delete(key), ErrInvalidKey, "delete %q", key)
			}
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("redis", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}

func TestFileStoreLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put("tasks.json", []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files are cleaned up")
	assert.Equal(t, "tasks.json", entries[0].Name())
	assert.Equal(t, filepath.Join(dir, "tasks.json"), s.Path("tasks.json"))
}

func TestFileStoreUnreadable(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	// a directory where the slot file should be
	require.NoError(t, os.Mkdir(filepath.Join(dir, "slot"), 0755))
	_, err = s.Get("slot")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", SQLiteFile)
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("k", []byte("v")))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}
