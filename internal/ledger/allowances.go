package ledger

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/tallyledger/tally/pkg/types"
)

// Approvals holds the spending grants one owner has handed out, keyed by
// spender address.
type Approvals struct {
	Spenders map[string]types.U128 `json:"spenders"`
}

func newApprovals() *Approvals {
	return &Approvals{Spenders: make(map[string]types.U128)}
}

func (a *Approvals) Copy() *Approvals {
	cp := newApprovals()
	for spender, amount := range a.Spenders {
		cp.Spenders[spender] = amount
	}
	return cp
}

// AllowanceOf reports the granted amount, zero when no entry exists.
func (s *State) AllowanceOf(owner, spender ethcommon.Address) types.U128 {
	approvals, ok := s.Allowances[owner.String()]
	if !ok {
		return types.U128{}
	}
	return approvals.Spenders[spender.String()]
}

// SetAllowance overwrites the grant, creating the owner entry when absent.
func (s *State) SetAllowance(owner, spender ethcommon.Address, amount types.U128) {
	approvals, ok := s.Allowances[owner.String()]
	if !ok {
		approvals = newApprovals()
		s.Allowances[owner.String()] = approvals
	}
	approvals.Spenders[spender.String()] = amount
}

// IncreaseAllowance grows the grant, creating it when absent.
func (s *State) IncreaseAllowance(owner, spender ethcommon.Address, amount types.U128) error {
	grown, overflow := s.AllowanceOf(owner, spender).AddOverflow(amount)
	if overflow {
		return errors.Wrapf(ErrArithmeticOverflow, "allowance of %s for %s", owner, spender)
	}
	s.SetAllowance(owner, spender, grown)
	return nil
}

// SpendAllowance shrinks an existing grant. Unlike IncreaseAllowance it never
// creates entries: a missing owner or spender entry is ErrNoAllowance, and a
// grant spent down to zero stays in place as a zero-valued entry.
func (s *State) SpendAllowance(owner, spender ethcommon.Address, amount types.U128) error {
	approvals, ok := s.Allowances[owner.String()]
	if !ok {
		return errors.Wrapf(ErrNoAllowance, "%s has no allowance entries", owner)
	}
	granted, ok := approvals.Spenders[spender.String()]
	if !ok {
		return errors.Wrapf(ErrNoAllowance, "no allowance for %s", spender)
	}
	remaining, underflow := granted.SubUnderflow(amount)
	if underflow {
		return errors.Wrapf(ErrAllowanceTooSmall, "%s can spend at most %s", spender, granted)
	}
	approvals.Spenders[spender.String()] = remaining
	return nil
}
