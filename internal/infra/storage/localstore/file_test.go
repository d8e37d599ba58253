package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SetGetRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booking_data.json")
	store := NewFileStore(path)

	_, ok, err := store.Get(KeyToken)
	require.NoError(t, err)
	assert.False(t, ok, "missing file reads as empty store")

	require.NoError(t, store.Set(KeyToken, "abc"))
	require.NoError(t, store.Set(KeySearchedCity, "Recife"))

	value, ok, err := store.Get(KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", value)

	require.NoError(t, store.Remove(KeyToken))
	_, ok, err = store.Get(KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)

	// другие ключи не задеты
	city, ok, err := store.Get(KeySearchedCity)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Recife", city)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booking_data.json")

	first := NewFileStore(path)
	require.NoError(t, first.Set(KeyUserData, `{"id":"u1"}`))

	second := NewFileStore(path)
	value, ok, err := second.Get(KeyUserData)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"u1"}`, value)
}

func TestFileStore_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booking_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileStore(path)
	_, _, err := store.Get(KeyToken)
	assert.ErrorIs(t, err, ErrReadStore)
}

func TestFileStore_RemoveMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booking_data.json")
	store := NewFileStore(path)

	assert.NoError(t, store.Remove("nothing"))
}

func TestGetSetJSON(t *testing.T) {
	store := NewMemoryStore()

	type payload struct {
		Name string `json:"name"`
	}

	found, err := GetJSON(store, "missing", &payload{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(store, "p", payload{Name: "quadra"}))

	var out payload
	found, err = GetJSON(store, "p", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "quadra", out.Name)

	require.NoError(t, store.Set("bad", "{broken"))
	_, err = GetJSON(store, "bad", &out)
	assert.ErrorIs(t, err, ErrCorruptedValue)
}
