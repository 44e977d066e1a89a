package token

import (
	"fmt"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/tallyledger/tally/internal/ledger"
	"github.com/tallyledger/tally/pkg/events"
	"github.com/tallyledger/tally/pkg/repo"
	"github.com/tallyledger/tally/pkg/types"
)

func TestInitialize(t *testing.T) {
	t.Parallel()
	ft, _ := newTestToken(t)

	name, err := ft.Name()
	require.Nil(t, err)
	require.Equal(t, "Tally", name)
	symbol, err := ft.Symbol()
	require.Nil(t, err)
	require.Equal(t, "TLY", symbol)
	decimals, err := ft.Decimals()
	require.Nil(t, err)
	require.Equal(t, uint8(18), decimals)
	icon, err := ft.Icon()
	require.Nil(t, err)
	require.Nil(t, icon)

	supply, err := ft.TotalSupply()
	require.Nil(t, err)
	require.Equal(t, uint64(1500), supply.Uint64())

	balance, err := ft.BalanceOf(alice)
	require.Nil(t, err)
	require.Equal(t, uint64(1000), balance.Uint64())
	balance, err = ft.BalanceOf(bob)
	require.Nil(t, err)
	require.Equal(t, uint64(500), balance.Uint64())
	balance, err = ft.BalanceOf(carol)
	require.Nil(t, err)
	require.True(t, balance.IsZero())

	callers, err := ft.AuthorizedCallers()
	require.Nil(t, err)
	require.Equal(t, []string{deployer.String()}, callers)
}

func TestInitializeNotDeployer(t *testing.T) {
	t.Parallel()
	ft, env := newBareToken()
	env.SetCaller(alice)

	err := ft.Initialize(testConfig())
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ErrUnauthorized.Error())
	require.Nil(t, rawState(t, env))
}

func TestInitializeTwice(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)
	before := rawState(t, env)

	err := ft.Initialize(testConfig())
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ErrAlreadyInitialized.Error())
	require.Equal(t, before, rawState(t, env))
}

func TestInitializeLengthMismatch(t *testing.T) {
	t.Parallel()
	ft, env := newBareToken()

	config := testConfig()
	config.Amounts = config.Amounts[:1]
	err := ft.Initialize(config)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ErrLengthMismatch.Error())
	require.Nil(t, rawState(t, env))
}

func TestInitializeInvalidMetadata(t *testing.T) {
	t.Parallel()
	ft, env := newBareToken()

	config := testConfig()
	config.Metadata.Symbol = ""
	err := ft.Initialize(config)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrInvalidMetadata.Error())
	require.Nil(t, rawState(t, env))
}

func TestInitializeDuplicateAccounts(t *testing.T) {
	t.Parallel()
	ft, _ := newBareToken()

	// the first occurrence wins, later duplicates are skipped
	err := ft.Initialize(Config{
		Metadata: ledger.Metadata{Name: "Tally", Symbol: "TLY", Decimals: 18},
		Accounts: []ethcommon.Address{alice, bob, alice},
		Amounts:  []types.U128{types.NewU128(100), types.NewU128(50), types.NewU128(999)},
	})
	require.Nil(t, err)

	balance, err := ft.BalanceOf(alice)
	require.Nil(t, err)
	require.Equal(t, uint64(100), balance.Uint64())
	supply, err := ft.TotalSupply()
	require.Nil(t, err)
	require.Equal(t, uint64(150), supply.Uint64())
}

func TestInitializeZeroAmounts(t *testing.T) {
	t.Parallel()
	ft, _ := newBareToken()

	// genesis may seed empty accounts even though mint rejects zero
	err := ft.Initialize(Config{
		Metadata: ledger.Metadata{Name: "Tally", Symbol: "TLY", Decimals: 18},
		Accounts: []ethcommon.Address{alice, bob},
		Amounts:  []types.U128{types.U128{}, types.U128{}},
	})
	require.Nil(t, err)

	supply, err := ft.TotalSupply()
	require.Nil(t, err)
	require.True(t, supply.IsZero())
	balance, err := ft.BalanceOf(alice)
	require.Nil(t, err)
	require.True(t, balance.IsZero())
}

func TestInitializeSupplyOverflow(t *testing.T) {
	t.Parallel()
	ft, env := newBareToken()

	err := ft.Initialize(Config{
		Metadata: ledger.Metadata{Name: "Tally", Symbol: "TLY", Decimals: 18},
		Accounts: []ethcommon.Address{alice, bob},
		Amounts:  []types.U128{types.MaxU128(), types.NewU128(1)},
	})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrArithmeticOverflow.Error())
	require.Nil(t, rawState(t, env))
}

func TestNotInitialized(t *testing.T) {
	t.Parallel()
	ft, _ := newBareToken()

	require.Contains(t, ft.Mint(alice, types.NewU128(1)).Error(), ErrNotInitialized.Error())
	require.Contains(t, ft.Transfer(bob, types.NewU128(1)).Error(), ErrNotInitialized.Error())
	require.Contains(t, ft.TransferFrom(alice, bob, types.NewU128(1)).Error(), ErrNotInitialized.Error())
	require.Contains(t, ft.Approve(bob, types.NewU128(1)).Error(), ErrNotInitialized.Error())
	require.Contains(t, ft.IncreaseAllowance(bob, types.NewU128(1)).Error(), ErrNotInitialized.Error())
	require.Contains(t, ft.DecreaseAllowance(bob, types.NewU128(1)).Error(), ErrNotInitialized.Error())
	require.Contains(t, ft.AddAuthorizedCaller(alice).Error(), ErrNotInitialized.Error())

	// getters fail the same way
	_, err := ft.Name()
	require.Contains(t, err.Error(), ErrNotInitialized.Error())
	_, err = ft.TotalSupply()
	require.Contains(t, err.Error(), ErrNotInitialized.Error())
	_, err = ft.BalanceOf(alice)
	require.Contains(t, err.Error(), ErrNotInitialized.Error())
	_, err = ft.Allowance(alice, bob)
	require.Contains(t, err.Error(), ErrNotInitialized.Error())
}

func TestMint(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)

	ch := make(chan events.Notice, 1)
	sub := env.SubscribeNotices(ch)
	defer sub.Unsubscribe()

	require.Nil(t, ft.Mint(carol, types.NewU128(100)))

	balance, err := ft.BalanceOf(carol)
	require.Nil(t, err)
	require.Equal(t, uint64(100), balance.Uint64())
	supply, err := ft.TotalSupply()
	require.Nil(t, err)
	require.Equal(t, uint64(1600), supply.Uint64())

	notice := <-ch
	require.Equal(t, deployer, notice.Caller)
	require.Equal(t, fmt.Sprintf("Minted 100 tokens for %s", carol), notice.Text)
}

func TestMintUnauthorized(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)
	before := rawState(t, env)

	env.SetCaller(alice)
	err := ft.Mint(carol, types.NewU128(100))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ErrUnauthorized.Error())
	require.Equal(t, before, rawState(t, env))

	// authorization precedes the amount check
	err = ft.Mint(carol, types.U128{})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ErrUnauthorized.Error())

	// once admitted to the minter set, the same caller can mint
	env.SetCaller(deployer)
	require.Nil(t, ft.AddAuthorizedCaller(alice))
	env.SetCaller(alice)
	require.Nil(t, ft.Mint(carol, types.NewU128(100)))
	balance, err := ft.BalanceOf(carol)
	require.Nil(t, err)
	require.Equal(t, uint64(100), balance.Uint64())
}

func TestMintZeroAmount(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)
	before := rawState(t, env)

	err := ft.Mint(carol, types.U128{})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrInvalidOperation.Error())
	require.Equal(t, before, rawState(t, env))
}

func TestMintOverflow(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)
	before := rawState(t, env)

	err := ft.Mint(carol, types.MaxU128())
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrArithmeticOverflow.Error())
	require.Equal(t, before, rawState(t, env))
}

func TestTransfer(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)

	ch := make(chan events.Notice, 1)
	sub := env.SubscribeNotices(ch)
	defer sub.Unsubscribe()

	env.SetCaller(alice)
	require.Nil(t, ft.Transfer(bob, types.NewU128(400)))

	balance, err := ft.BalanceOf(alice)
	require.Nil(t, err)
	require.Equal(t, uint64(600), balance.Uint64())
	balance, err = ft.BalanceOf(bob)
	require.Nil(t, err)
	require.Equal(t, uint64(900), balance.Uint64())
	supply, err := ft.TotalSupply()
	require.Nil(t, err)
	require.Equal(t, uint64(1500), supply.Uint64())

	notice := <-ch
	require.Equal(t, alice, notice.Caller)
	require.Equal(t, fmt.Sprintf("Transferred 400 tokens from %s to %s", alice, bob), notice.Text)
}

func TestTransferRejections(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)
	before := rawState(t, env)

	env.SetCaller(alice)

	err := ft.Transfer(bob, types.U128{})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrInvalidOperation.Error())

	err = ft.Transfer(alice, types.NewU128(10))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrInvalidOperation.Error())

	err = ft.Transfer(bob, types.NewU128(1001))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrInsufficientBalance.Error())

	// a sender with no balance entry fails the same way
	env.SetCaller(carol)
	err = ft.Transfer(bob, types.NewU128(1))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrInsufficientBalance.Error())

	require.Equal(t, before, rawState(t, env))
}

func TestTransferFrom(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)

	env.SetCaller(alice)
	require.Nil(t, ft.Approve(bob, types.NewU128(300)))

	env.SetCaller(bob)
	require.Nil(t, ft.TransferFrom(alice, carol, types.NewU128(200)))

	balance, err := ft.BalanceOf(alice)
	require.Nil(t, err)
	require.Equal(t, uint64(800), balance.Uint64())
	balance, err = ft.BalanceOf(carol)
	require.Nil(t, err)
	require.Equal(t, uint64(200), balance.Uint64())
	remaining, err := ft.Allowance(alice, bob)
	require.Nil(t, err)
	require.Equal(t, uint64(100), remaining.Uint64())

	// the rest of the grant spends down to a zero entry
	require.Nil(t, ft.TransferFrom(alice, carol, types.NewU128(100)))
	remaining, err = ft.Allowance(alice, bob)
	require.Nil(t, err)
	require.True(t, remaining.IsZero())

	// the exhausted entry still exists, so the failure is too-small
	err = ft.TransferFrom(alice, carol, types.NewU128(1))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrAllowanceTooSmall.Error())
}

func TestTransferFromNoAllowance(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)

	// alice granted nothing to anyone
	env.SetCaller(bob)
	err := ft.TransferFrom(alice, carol, types.NewU128(1))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrNoAllowance.Error())

	// alice granted to bob, not to carol
	env.SetCaller(alice)
	require.Nil(t, ft.Approve(bob, types.NewU128(50)))
	env.SetCaller(carol)
	err = ft.TransferFrom(alice, bob, types.NewU128(1))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrNoAllowance.Error())

	env.SetCaller(bob)
	err = ft.TransferFrom(alice, carol, types.NewU128(51))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrAllowanceTooSmall.Error())
}

func TestTransferFromKeepsAllowanceOnFailedTransfer(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)

	env.SetCaller(alice)
	require.Nil(t, ft.Approve(bob, types.NewU128(300)))
	// alice then moves her whole balance away
	require.Nil(t, ft.Transfer(bob, types.NewU128(1000)))
	before := rawState(t, env)

	env.SetCaller(bob)
	err := ft.TransferFrom(alice, carol, types.NewU128(200))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrInsufficientBalance.Error())

	// the spent allowance was not persisted
	remaining, err := ft.Allowance(alice, bob)
	require.Nil(t, err)
	require.Equal(t, uint64(300), remaining.Uint64())
	require.Equal(t, before, rawState(t, env))

	// a self-transfer through an allowance is rejected the same way
	err = ft.TransferFrom(alice, alice, types.NewU128(10))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrInvalidOperation.Error())
	require.Equal(t, before, rawState(t, env))
}

func TestApprove(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)

	env.SetCaller(alice)
	require.Nil(t, ft.Approve(bob, types.NewU128(300)))
	granted, err := ft.Allowance(alice, bob)
	require.Nil(t, err)
	require.Equal(t, uint64(300), granted.Uint64())

	// approve overwrites rather than accumulates
	require.Nil(t, ft.Approve(bob, types.NewU128(40)))
	granted, err = ft.Allowance(alice, bob)
	require.Nil(t, err)
	require.Equal(t, uint64(40), granted.Uint64())

	// zero resets the grant
	require.Nil(t, ft.Approve(bob, types.U128{}))
	granted, err = ft.Allowance(alice, bob)
	require.Nil(t, err)
	require.True(t, granted.IsZero())
}

func TestApproveRejections(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)
	before := rawState(t, env)

	env.SetCaller(alice)
	err := ft.Approve(alice, types.NewU128(10))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrInvalidOperation.Error())

	env.SetCaller(carol)
	err = ft.Approve(bob, types.NewU128(10))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ErrNoBalance.Error())

	require.Equal(t, before, rawState(t, env))
}

func TestApproveEmitsNoNotice(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)

	ch := make(chan events.Notice, 1)
	sub := env.SubscribeNotices(ch)
	defer sub.Unsubscribe()

	env.SetCaller(alice)
	require.Nil(t, ft.Approve(bob, types.NewU128(10)))

	select {
	case notice := <-ch:
		t.Fatalf("unexpected notice: %s", notice.Text)
	default:
	}
}

func TestIncreaseAllowance(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)

	// creates the entry when absent
	env.SetCaller(alice)
	require.Nil(t, ft.IncreaseAllowance(bob, types.NewU128(30)))
	granted, err := ft.Allowance(alice, bob)
	require.Nil(t, err)
	require.Equal(t, uint64(30), granted.Uint64())

	require.Nil(t, ft.IncreaseAllowance(bob, types.NewU128(12)))
	granted, err = ft.Allowance(alice, bob)
	require.Nil(t, err)
	require.Equal(t, uint64(42), granted.Uint64())
}

func TestDecreaseAllowance(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)

	env.SetCaller(alice)
	require.Nil(t, ft.Approve(bob, types.NewU128(100)))
	require.Nil(t, ft.DecreaseAllowance(bob, types.NewU128(60)))
	granted, err := ft.Allowance(alice, bob)
	require.Nil(t, err)
	require.Equal(t, uint64(40), granted.Uint64())

	err = ft.DecreaseAllowance(bob, types.NewU128(41))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrAllowanceTooSmall.Error())

	// unlike increase, decrease never creates the entry
	err = ft.DecreaseAllowance(carol, types.NewU128(1))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrNoAllowance.Error())
}

func TestAllowanceRejections(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)
	before := rawState(t, env)

	env.SetCaller(alice)
	for name, op := range map[string]func(ethcommon.Address, types.U128) error{
		"increase": ft.IncreaseAllowance,
		"decrease": ft.DecreaseAllowance,
	} {
		t.Run(name, func(t *testing.T) {
			err := op(bob, types.U128{})
			require.NotNil(t, err)
			require.Contains(t, err.Error(), ledger.ErrInvalidOperation.Error())

			err = op(alice, types.NewU128(1))
			require.NotNil(t, err)
			require.Contains(t, err.Error(), ledger.ErrInvalidOperation.Error())
		})
	}

	env.SetCaller(carol)
	err := ft.IncreaseAllowance(bob, types.NewU128(1))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ErrNoBalance.Error())

	require.Equal(t, before, rawState(t, env))
}

func TestAddAuthorizedCaller(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)

	ch := make(chan events.Notice, 1)
	sub := env.SubscribeNotices(ch)
	defer sub.Unsubscribe()

	require.Nil(t, ft.AddAuthorizedCaller(alice))
	callers, err := ft.AuthorizedCallers()
	require.Nil(t, err)
	require.Len(t, callers, 2)

	notice := <-ch
	require.Equal(t, deployer, notice.Caller)
	require.Equal(t, fmt.Sprintf("Authorized caller: %s has been added successfully", alice), notice.Text)

	err = ft.AddAuthorizedCaller(alice)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ledger.ErrAlreadyAuthorized.Error())
}

func TestAddAuthorizedCallerNotDeployer(t *testing.T) {
	t.Parallel()
	ft, env := newTestToken(t)
	before := rawState(t, env)

	env.SetCaller(alice)
	err := ft.AddAuthorizedCaller(alice)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ErrUnauthorized.Error())
	require.Equal(t, before, rawState(t, env))
}

func TestGenerateConfig(t *testing.T) {
	t.Parallel()

	genesis := repo.DefaultGenesisConfig()
	config, err := GenerateConfig(genesis)
	require.Nil(t, err)
	require.Equal(t, repo.DefaultTokenName, config.Metadata.Name)
	require.Len(t, config.Accounts, len(genesis.Accounts))
	require.Len(t, config.Amounts, len(genesis.Amounts))
	require.Nil(t, config.Metadata.Icon)

	genesis.Token.Icon = "https://tally.example/icon.png"
	config, err = GenerateConfig(genesis)
	require.Nil(t, err)
	require.NotNil(t, config.Metadata.Icon)
	require.Equal(t, "https://tally.example/icon.png", *config.Metadata.Icon)

	genesis.Deployer = "not-an-address"
	_, err = GenerateConfig(genesis)
	require.NotNil(t, err)
}
