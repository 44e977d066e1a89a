package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tallyledger/tally/internal/host"
	"github.com/tallyledger/tally/internal/storagemgr/kv"
	"github.com/tallyledger/tally/pkg/types"
)

func TestStore(t *testing.T) {
	t.Parallel()

	env := host.NewLocalEnv(kv.NewMemory(), testDeployer)
	store := NewStore(env, NewStateCache(4))

	exist, _, err := store.Get()
	require.Nil(t, err)
	require.False(t, exist)

	has, err := store.Has()
	require.Nil(t, err)
	require.False(t, has)

	state := NewState(testMetadata(), testDeployer)
	require.Nil(t, state.Mint(testAlice, types.NewU128(77)))
	require.Nil(t, store.Put(state))

	has, err = store.Has()
	require.Nil(t, err)
	require.True(t, has)

	exist, loaded, err := store.Get()
	require.Nil(t, err)
	require.True(t, exist)
	require.Equal(t, state, loaded)

	// the whole ledger lives under the one fixed key
	raw, err := env.GetState([]byte(StateKey))
	require.Nil(t, err)
	require.NotNil(t, raw)
}

func TestStoreGetDecodesFreshCopy(t *testing.T) {
	t.Parallel()

	env := host.NewLocalEnv(kv.NewMemory(), testDeployer)
	store := NewStore(env, NewStateCache(4))

	state := NewState(testMetadata(), testDeployer)
	require.Nil(t, store.Put(state))

	_, first, err := store.Get()
	require.Nil(t, err)
	require.Nil(t, first.Mint(testAlice, types.NewU128(5)))

	_, second, err := store.Get()
	require.Nil(t, err)
	require.True(t, second.BalanceOf(testAlice).IsZero())
}
