package token

import (
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/tallyledger/tally/internal/host"
	"github.com/tallyledger/tally/internal/ledger"
	"github.com/tallyledger/tally/internal/storagemgr/kv"
	"github.com/tallyledger/tally/pkg/loggers"
	"github.com/tallyledger/tally/pkg/types"
)

var (
	deployer = ethcommon.HexToAddress("0xc7F999b83Af6DF9e67d0a37Ee7e900bF38b3D013")
	alice    = ethcommon.HexToAddress("0x79a1215469FaB6f9c63c1816b45183AD3624bE34")
	bob      = ethcommon.HexToAddress("0x97c8B516D19edBf575D72a172Af7F418BE498C37")
	carol    = ethcommon.HexToAddress("0xc0Ff2e0b3189132D815b8eb325bE17285AC898f8")
)

func testConfig() Config {
	return Config{
		Metadata: ledger.Metadata{Name: "Tally", Symbol: "TLY", Decimals: 18},
		Accounts: []ethcommon.Address{alice, bob},
		Amounts:  []types.U128{types.NewU128(1000), types.NewU128(500)},
	}
}

// newTestToken returns an initialized token over an in-memory environment,
// with the deployer as the current caller.
func newTestToken(t *testing.T) (*FToken, *host.LocalEnv) {
	t.Helper()
	env := host.NewLocalEnv(kv.NewMemory(), deployer)
	ft := New(loggers.Logger(loggers.Token))
	ft.SetContext(env)
	require.Nil(t, ft.Initialize(testConfig()))
	return ft, env
}

// newBareToken returns a token whose state slot was never written.
func newBareToken() (*FToken, *host.LocalEnv) {
	env := host.NewLocalEnv(kv.NewMemory(), deployer)
	ft := New(loggers.Logger(loggers.Token))
	ft.SetContext(env)
	return ft, env
}

func rawState(t *testing.T, env *host.LocalEnv) []byte {
	t.Helper()
	raw, err := env.GetState([]byte(ledger.StateKey))
	require.Nil(t, err)
	return raw
}
