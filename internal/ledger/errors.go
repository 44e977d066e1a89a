package ledger

import "github.com/pkg/errors"

var (
	// ErrArithmeticOverflow is returned when a balance, allowance or the
	// total supply would exceed the 128-bit range.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")

	// ErrInsufficientBalance is returned when a sender's balance cannot
	// cover the transfer amount.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidOperation is returned for self-transfers and self-approvals.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrNoAllowance is returned when no allowance entry exists for the
	// owner or for the spender under that owner.
	ErrNoAllowance = errors.New("no allowance")

	// ErrAllowanceTooSmall is returned when an allowance entry exists but
	// cannot cover the requested amount.
	ErrAllowanceTooSmall = errors.New("allowance too small")

	ErrAlreadyAuthorized = errors.New("address already authorized")

	ErrInvalidMetadata = errors.New("invalid token metadata")
)
