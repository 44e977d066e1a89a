package token

import (
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tallyledger/tally/internal/host"
	"github.com/tallyledger/tally/internal/ledger"
	"github.com/tallyledger/tally/pkg/types"
)

// FToken is the fungible token contract. Calls run strictly serially: every
// operation loads the full state, mutates it in memory and writes it back at
// most once, so a failed operation never changes stored state.
type FToken struct {
	env    host.Env
	store  *ledger.Store
	cache  *ledger.StateCache
	logger logrus.FieldLogger
}

func New(logger logrus.FieldLogger) *FToken {
	return &FToken{
		cache:  ledger.NewStateCache(16),
		logger: logger,
	}
}

// SetContext binds the execution environment for the calls that follow.
func (ft *FToken) SetContext(env host.Env) {
	ft.env = env
	ft.store = ledger.NewStore(env, ft.cache)
}

func (ft *FToken) loadState() (*ledger.State, error) {
	exist, state, err := ft.store.Get()
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, ErrNotInitialized
	}
	return state, nil
}

// Initialize seeds the token. Only the deployer may call it, and only once.
// A duplicate account keeps its first occurrence; later ones are skipped.
func (ft *FToken) Initialize(config Config) (err error) {
	done := trackOp(initializeMethod)
	defer func() { done(err) }()

	if ft.env.Caller() != ft.env.Deployer() {
		return errors.Wrap(ErrUnauthorized, "only the deployer can initialize")
	}
	exist, err := ft.store.Has()
	if err != nil {
		return err
	}
	if exist {
		return ErrAlreadyInitialized
	}
	if err := config.Metadata.Validate(); err != nil {
		return err
	}
	if len(config.Accounts) != len(config.Amounts) {
		return errors.Wrapf(ErrLengthMismatch, "%d accounts, %d amounts", len(config.Accounts), len(config.Amounts))
	}

	state := ledger.NewState(config.Metadata, ft.env.Deployer())
	for i, account := range config.Accounts {
		if _, ok := state.Balances[account.String()]; ok {
			continue
		}
		if err := state.Mint(account, config.Amounts[i]); err != nil {
			return err
		}
	}
	if err = ft.store.Put(state); err != nil {
		return err
	}
	ft.logger.WithFields(logrus.Fields{
		"name":     config.Metadata.Name,
		"symbol":   config.Metadata.Symbol,
		"accounts": len(state.Balances),
		"supply":   state.TotalSupply.String(),
	}).Info("Token initialized")
	observeSupply(state)
	return nil
}

// Mint credits amount to recipient and grows the total supply. Only
// authorized callers may mint, and the amount must be non-zero.
func (ft *FToken) Mint(recipient ethcommon.Address, amount types.U128) (err error) {
	done := trackOp(mintMethod)
	defer func() { done(err) }()

	state, err := ft.loadState()
	if err != nil {
		return err
	}
	if !state.IsAuthorized(ft.env.Caller()) {
		return errors.Wrapf(ErrUnauthorized, "%s cannot mint", ft.env.Caller())
	}
	if amount.IsZero() {
		return errors.Wrap(ledger.ErrInvalidOperation, "mint amount must be positive")
	}
	if err = state.Mint(recipient, amount); err != nil {
		return err
	}
	if err = ft.store.Put(state); err != nil {
		return err
	}
	ft.env.EmitNotice(fmt.Sprintf("Minted %s tokens for %s", amount, recipient))
	observeSupply(state)
	return nil
}

// Transfer moves amount from the caller to recipient.
func (ft *FToken) Transfer(recipient ethcommon.Address, amount types.U128) (err error) {
	done := trackOp(transferMethod)
	defer func() { done(err) }()

	state, err := ft.loadState()
	if err != nil {
		return err
	}
	if amount.IsZero() {
		return errors.Wrap(ledger.ErrInvalidOperation, "transfer amount must be positive")
	}
	sender := ft.env.Caller()
	if err = state.Transfer(sender, recipient, amount); err != nil {
		return err
	}
	if err = ft.store.Put(state); err != nil {
		return err
	}
	ft.env.EmitNotice(fmt.Sprintf("Transferred %s tokens from %s to %s", amount, sender, recipient))
	return nil
}

// TransferFrom moves amount from sender to recipient on the strength of an
// allowance the sender granted the caller. The allowance is spent before the
// balances move, so either check can reject the call without touching state.
func (ft *FToken) TransferFrom(sender, recipient ethcommon.Address, amount types.U128) (err error) {
	done := trackOp(transferFromMethod)
	defer func() { done(err) }()

	state, err := ft.loadState()
	if err != nil {
		return err
	}
	if amount.IsZero() {
		return errors.Wrap(ledger.ErrInvalidOperation, "transfer amount must be positive")
	}
	spender := ft.env.Caller()
	if err = state.SpendAllowance(sender, spender, amount); err != nil {
		return err
	}
	if err = state.Transfer(sender, recipient, amount); err != nil {
		return err
	}
	if err = ft.store.Put(state); err != nil {
		return err
	}
	ft.env.EmitNotice(fmt.Sprintf("Transferred %s tokens from %s to %s", amount, sender, recipient))
	return nil
}

// Approve sets the caller's grant for spender to exactly amount. A zero
// amount is allowed and resets the grant.
func (ft *FToken) Approve(spender ethcommon.Address, amount types.U128) (err error) {
	done := trackOp(approveMethod)
	defer func() { done(err) }()

	state, err := ft.loadState()
	if err != nil {
		return err
	}
	owner := ft.env.Caller()
	if owner == spender {
		return errors.Wrap(ledger.ErrInvalidOperation, "cannot approve yourself")
	}
	if state.BalanceOf(owner).IsZero() {
		return errors.Wrapf(ErrNoBalance, "%s", owner)
	}
	state.SetAllowance(owner, spender, amount)
	return ft.store.Put(state)
}

// IncreaseAllowance grows the caller's grant for spender, creating it when
// absent.
func (ft *FToken) IncreaseAllowance(spender ethcommon.Address, amount types.U128) (err error) {
	done := trackOp(increaseAllowanceMethod)
	defer func() { done(err) }()

	state, err := ft.loadState()
	if err != nil {
		return err
	}
	if amount.IsZero() {
		return errors.Wrap(ledger.ErrInvalidOperation, "allowance delta must be positive")
	}
	owner := ft.env.Caller()
	if owner == spender {
		return errors.Wrap(ledger.ErrInvalidOperation, "cannot approve yourself")
	}
	if state.BalanceOf(owner).IsZero() {
		return errors.Wrapf(ErrNoBalance, "%s", owner)
	}
	if err = state.IncreaseAllowance(owner, spender, amount); err != nil {
		return err
	}
	return ft.store.Put(state)
}

// DecreaseAllowance shrinks the caller's grant for spender. The grant must
// already exist and cover the delta.
func (ft *FToken) DecreaseAllowance(spender ethcommon.Address, amount types.U128) (err error) {
	done := trackOp(decreaseAllowanceMethod)
	defer func() { done(err) }()

	state, err := ft.loadState()
	if err != nil {
		return err
	}
	if amount.IsZero() {
		return errors.Wrap(ledger.ErrInvalidOperation, "allowance delta must be positive")
	}
	owner := ft.env.Caller()
	if owner == spender {
		return errors.Wrap(ledger.ErrInvalidOperation, "cannot approve yourself")
	}
	if state.BalanceOf(owner).IsZero() {
		return errors.Wrapf(ErrNoBalance, "%s", owner)
	}
	if err = state.SpendAllowance(owner, spender, amount); err != nil {
		return err
	}
	return ft.store.Put(state)
}

// AddAuthorizedCaller admits addr to the minter set. Only the deployer may
// extend the set.
func (ft *FToken) AddAuthorizedCaller(addr ethcommon.Address) (err error) {
	done := trackOp(addAuthorizedCallerMethod)
	defer func() { done(err) }()

	state, err := ft.loadState()
	if err != nil {
		return err
	}
	if ft.env.Caller() != ft.env.Deployer() {
		return errors.Wrap(ErrUnauthorized, "only the deployer can authorize callers")
	}
	if err = state.AddAuthorizedCaller(addr); err != nil {
		return err
	}
	if err = ft.store.Put(state); err != nil {
		return err
	}
	ft.env.EmitNotice(fmt.Sprintf("Authorized caller: %s has been added successfully", addr))
	return nil
}

func (ft *FToken) Metadata() (ledger.Metadata, error) {
	state, err := ft.loadState()
	if err != nil {
		return ledger.Metadata{}, err
	}
	return state.Metadata, nil
}

func (ft *FToken) Name() (string, error) {
	meta, err := ft.Metadata()
	if err != nil {
		return "", err
	}
	return meta.Name, nil
}

func (ft *FToken) Symbol() (string, error) {
	meta, err := ft.Metadata()
	if err != nil {
		return "", err
	}
	return meta.Symbol, nil
}

func (ft *FToken) Decimals() (uint8, error) {
	meta, err := ft.Metadata()
	if err != nil {
		return 0, err
	}
	return meta.Decimals, nil
}

func (ft *FToken) Icon() (*string, error) {
	meta, err := ft.Metadata()
	if err != nil {
		return nil, err
	}
	return meta.Icon, nil
}

func (ft *FToken) TotalSupply() (types.U128, error) {
	state, err := ft.loadState()
	if err != nil {
		return types.U128{}, err
	}
	observeSupply(state)
	return state.TotalSupply, nil
}

func (ft *FToken) BalanceOf(addr ethcommon.Address) (types.U128, error) {
	state, err := ft.loadState()
	if err != nil {
		return types.U128{}, err
	}
	return state.BalanceOf(addr), nil
}

func (ft *FToken) Allowance(owner, spender ethcommon.Address) (types.U128, error) {
	state, err := ft.loadState()
	if err != nil {
		return types.U128{}, err
	}
	return state.AllowanceOf(owner, spender), nil
}

// AuthorizedCallers lists the minter set in sorted order.
func (ft *FToken) AuthorizedCallers() ([]string, error) {
	state, err := ft.loadState()
	if err != nil {
		return nil, err
	}
	return state.AuthorizedCallers, nil
}
