package kv

import (
	"path/filepath"
	"testing"

	pebbledb "github.com/cockroachdb/pebble"
	"github.com/stretchr/testify/require"
)

func openBackends(t *testing.T) map[string]Storage {
	t.Helper()
	dir := t.TempDir()

	ldb, err := NewLeveldb(filepath.Join(dir, "leveldb"), false)
	require.Nil(t, err)
	pdb, err := NewPebble(filepath.Join(dir, "pebble"), &pebbledb.Options{}, pebbledb.NoSync)
	require.Nil(t, err)
	rdb, err := NewRosedb(filepath.Join(dir, "rosedb"), false)
	require.Nil(t, err)

	return map[string]Storage{
		"memory":  NewMemory(),
		"leveldb": ldb,
		"pebble":  pdb,
		"rosedb":  rdb,
	}
}

func TestStorageBackends(t *testing.T) {
	for name, s := range openBackends(t) {
		s := s
		t.Run("test "+name, func(t *testing.T) {
			key := []byte("token-state")
			value := []byte(`{"total_supply":"100"}`)

			// absent key reads as <nil, nil>
			v, err := s.Get(key)
			require.Nil(t, err)
			require.Nil(t, v)
			has, err := s.Has(key)
			require.Nil(t, err)
			require.False(t, has)

			require.Nil(t, s.Put(key, value))
			v, err = s.Get(key)
			require.Nil(t, err)
			require.Equal(t, value, v)
			has, err = s.Has(key)
			require.Nil(t, err)
			require.True(t, has)

			// overwrite wins
			next := []byte(`{"total_supply":"250"}`)
			require.Nil(t, s.Put(key, next))
			v, err = s.Get(key)
			require.Nil(t, err)
			require.Equal(t, next, v)

			require.Nil(t, s.Delete(key))
			v, err = s.Get(key)
			require.Nil(t, err)
			require.Nil(t, v)

			require.Nil(t, s.Close())
		})
	}
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	t.Parallel()
	s := NewMemory()
	require.Nil(t, s.Put([]byte("k"), []byte("abc")))

	v, err := s.Get([]byte("k"))
	require.Nil(t, err)
	v[0] = 'z'

	again, err := s.Get([]byte("k"))
	require.Nil(t, err)
	require.Equal(t, []byte("abc"), again)
}
