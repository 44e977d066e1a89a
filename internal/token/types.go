package token

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/tallyledger/tally/internal/ledger"
	"github.com/tallyledger/tally/pkg/repo"
	"github.com/tallyledger/tally/pkg/types"
)

var (
	// ErrNotInitialized is returned by every operation, getters included,
	// until Initialize has run.
	ErrNotInitialized = errors.New("token not initialized")

	ErrAlreadyInitialized = errors.New("token already initialized")

	// ErrUnauthorized is returned when the caller lacks the right to
	// initialize, mint or extend the minter set.
	ErrUnauthorized = errors.New("caller is not authorized")

	ErrLengthMismatch = errors.New("accounts and amounts length mismatch")

	// ErrNoBalance is returned when an account without any balance tries
	// to manage allowances.
	ErrNoBalance = errors.New("caller has no balance")
)

const (
	initializeMethod          = "initialize"
	mintMethod                = "mint"
	transferMethod            = "transfer"
	transferFromMethod        = "transfer_from"
	approveMethod             = "approve"
	increaseAllowanceMethod   = "increase_allowance"
	decreaseAllowanceMethod   = "decrease_allowance"
	addAuthorizedCallerMethod = "add_authorized_caller"
)

// Config carries everything Initialize needs to seed a fresh token.
type Config struct {
	Metadata ledger.Metadata
	Accounts []ethcommon.Address
	Amounts  []types.U128
}

// GenerateConfig maps a genesis file onto an initialization config.
func GenerateConfig(genesis *repo.GenesisConfig) (Config, error) {
	if err := genesis.Validate(); err != nil {
		return Config{}, err
	}

	meta := ledger.Metadata{
		Name:     genesis.Token.Name,
		Symbol:   genesis.Token.Symbol,
		Decimals: genesis.Token.Decimals,
	}
	if genesis.Token.Icon != "" {
		icon := genesis.Token.Icon
		meta.Icon = &icon
	}

	return Config{
		Metadata: meta,
		Accounts: lo.Map(genesis.Accounts, func(addr string, _ int) ethcommon.Address {
			return ethcommon.HexToAddress(addr)
		}),
		Amounts: genesis.Amounts,
	}, nil
}
