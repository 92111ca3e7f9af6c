package storage

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("auth-storage.json", []byte(`{"state":{}}`)))
	data, err := store.Read("auth-storage.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{}}`, string(data))

	info, err := os.Stat(store.Path("auth-storage.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.Delete("auth-storage.json"))
	_, err = store.Read("auth-storage.json")
	assert.ErrorIs(t, err, ErrNotExist)
	assert.NoError(t, store.Delete("auth-storage.json"))
}

func TestLocalStorageRejectsEscapingNames(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Save("../outside.json", []byte("x")))
	_, err = store.Read("/etc/passwd")
	assert.Error(t, err)
}
