package app

import (
	"fmt"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/tallyledger/tally/internal/genesis"
	"github.com/tallyledger/tally/internal/noticelog"
	"github.com/tallyledger/tally/pkg/fileutil"
	"github.com/tallyledger/tally/pkg/repo"
	"github.com/tallyledger/tally/pkg/types"
)

// the tests share the global storage manager, so they must not run in parallel

func TestTallyLifecycle(t *testing.T) {
	root := t.TempDir()
	rep, err := repo.Load(root)
	require.Nil(t, err)
	rep.Config.Monitor.Enable = false

	tally, err := NewTally(rep)
	require.Nil(t, err)
	require.Nil(t, tally.Start())

	ok, err := genesis.IsInitialized(tally.Env)
	require.Nil(t, err)
	require.False(t, ok)

	require.Nil(t, genesis.Initialize(rep.GenesisConfig, tally.Env, tally.Token))

	supply, err := tally.Token.TotalSupply()
	require.Nil(t, err)
	require.Equal(t, "3000000000000000000000000", supply.String())

	alice := ethcommon.HexToAddress(repo.DefaultAccountAddrs[0])
	bob := ethcommon.HexToAddress(repo.DefaultAccountAddrs[1])
	tally.Env.SetCaller(alice)
	require.Nil(t, tally.Token.Transfer(bob, types.NewU128(7)))

	require.Nil(t, tally.Stop())

	// the transfer notice must have been drained into the audit db
	audit, err := noticelog.Open(rep.AuditDBPath())
	require.Nil(t, err)
	defer audit.Close()
	records, err := audit.List(10)
	require.Nil(t, err)
	require.Len(t, records, 1)
	require.Equal(t, fmt.Sprintf("Transferred 7 tokens from %s to %s", alice, bob), records[0].Text)
	require.Equal(t, alice.String(), records[0].Caller)
}

func TestTallyAuditDisabled(t *testing.T) {
	root := t.TempDir()
	rep, err := repo.Load(root)
	require.Nil(t, err)
	rep.Config.Monitor.Enable = false
	rep.Config.Audit.Enable = false

	tally, err := NewTally(rep)
	require.Nil(t, err)
	require.Nil(t, genesis.Initialize(rep.GenesisConfig, tally.Env, tally.Token))
	require.Nil(t, tally.Stop())

	require.False(t, fileutil.Exist(rep.AuditDBPath()))
}

func TestNewTallyBadKvType(t *testing.T) {
	root := t.TempDir()
	rep, err := repo.Load(root)
	require.Nil(t, err)
	rep.Config.Storage.KvType = "bolt"

	_, err = NewTally(rep)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "unknow kv type")
}
