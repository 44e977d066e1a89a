package ledger

import (
	"encoding/json"
	"sort"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/tallyledger/tally/pkg/types"
)

// MaxDecimals bounds the display precision a token may declare.
const MaxDecimals = 18

// Metadata describes the token itself. It is fixed at initialization and
// never changes afterwards.
type Metadata struct {
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Decimals uint8   `json:"decimals"`
	Icon     *string `json:"icon,omitempty"`
}

func (m *Metadata) Validate() error {
	if m.Name == "" {
		return errors.Wrap(ErrInvalidMetadata, "name must not be empty")
	}
	if m.Symbol == "" {
		return errors.Wrap(ErrInvalidMetadata, "symbol must not be empty")
	}
	if m.Decimals > MaxDecimals {
		return errors.Wrapf(ErrInvalidMetadata, "decimals %d exceeds %d", m.Decimals, MaxDecimals)
	}
	return nil
}

// State is the whole token ledger. Operations load it from a single storage
// slot, mutate it in memory and write it back at most once, so a failed
// operation leaves the stored blob untouched.
//
// Account keys are EIP-55 checksummed addresses. encoding/json writes struct
// fields in declaration order and map keys sorted, so equal states always
// encode to identical bytes.
type State struct {
	Metadata          Metadata              `json:"metadata"`
	Balances          map[string]types.U128 `json:"balances"`
	Allowances        map[string]*Approvals `json:"allowances"`
	TotalSupply       types.U128            `json:"total_supply"`
	AuthorizedCallers []string              `json:"authorized_callers"`
}

// NewState returns an empty ledger whose minter set holds only the deployer.
func NewState(meta Metadata, deployer ethcommon.Address) *State {
	return &State{
		Metadata:          meta,
		Balances:          make(map[string]types.U128),
		Allowances:        make(map[string]*Approvals),
		AuthorizedCallers: []string{deployer.String()},
	}
}

func (s *State) BalanceOf(addr ethcommon.Address) types.U128 {
	return s.Balances[addr.String()]
}

// Mint credits recipient and grows the total supply by the same amount.
// Nothing is mutated unless both additions fit in 128 bits.
func (s *State) Mint(recipient ethcommon.Address, amount types.U128) error {
	supply, overflow := s.TotalSupply.AddOverflow(amount)
	if overflow {
		return errors.Wrap(ErrArithmeticOverflow, "total supply")
	}
	credited, overflow := s.BalanceOf(recipient).AddOverflow(amount)
	if overflow {
		return errors.Wrapf(ErrArithmeticOverflow, "balance of %s", recipient)
	}
	s.TotalSupply = supply
	s.Balances[recipient.String()] = credited
	return nil
}

// Transfer moves amount from sender to recipient.
func (s *State) Transfer(sender, recipient ethcommon.Address, amount types.U128) error {
	if sender == recipient {
		return errors.Wrap(ErrInvalidOperation, "sender and recipient are the same")
	}
	remaining, underflow := s.BalanceOf(sender).SubUnderflow(amount)
	if underflow {
		return errors.Wrapf(ErrInsufficientBalance, "account %s", sender)
	}
	credited, overflow := s.BalanceOf(recipient).AddOverflow(amount)
	if overflow {
		return errors.Wrapf(ErrArithmeticOverflow, "balance of %s", recipient)
	}
	s.Balances[sender.String()] = remaining
	s.Balances[recipient.String()] = credited
	return nil
}

func (s *State) IsAuthorized(caller ethcommon.Address) bool {
	return lo.Contains(s.AuthorizedCallers, caller.String())
}

// AddAuthorizedCaller admits addr to the minter set. The set is kept sorted
// so the encoded state stays byte-stable across add orders.
func (s *State) AddAuthorizedCaller(addr ethcommon.Address) error {
	if s.IsAuthorized(addr) {
		return errors.Wrapf(ErrAlreadyAuthorized, "%s", addr)
	}
	s.AuthorizedCallers = append(s.AuthorizedCallers, addr.String())
	sort.Strings(s.AuthorizedCallers)
	return nil
}

// Copy returns a deep copy, so cached states can be handed out safely.
func (s *State) Copy() *State {
	cp := &State{
		Metadata:          s.Metadata,
		Balances:          make(map[string]types.U128, len(s.Balances)),
		Allowances:        make(map[string]*Approvals, len(s.Allowances)),
		TotalSupply:       s.TotalSupply,
		AuthorizedCallers: make([]string, len(s.AuthorizedCallers)),
	}
	if s.Metadata.Icon != nil {
		icon := *s.Metadata.Icon
		cp.Metadata.Icon = &icon
	}
	for addr, balance := range s.Balances {
		cp.Balances[addr] = balance
	}
	for owner, approvals := range s.Allowances {
		cp.Allowances[owner] = approvals.Copy()
	}
	copy(cp.AuthorizedCallers, s.AuthorizedCallers)
	return cp
}

func (s *State) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

func UnmarshalState(data []byte) (*State, error) {
	state := &State{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal token state")
	}
	if state.Balances == nil {
		state.Balances = make(map[string]types.U128)
	}
	if state.Allowances == nil {
		state.Allowances = make(map[string]*Approvals)
	}
	return state, nil
}
