package host

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
)

//go:generate mockgen -destination mock_host/mock_host.go -package mock_host -source env.go

// Env is the execution environment a contract call runs in: the identity of
// the caller, the identity of the deployer, and the persistent state the
// contract owns.
type Env interface {
	// Caller returns the account on whose behalf the current call runs.
	Caller() ethcommon.Address

	// Deployer returns the account that deployed the contract.
	Deployer() ethcommon.Address

	// GetState reads a raw value. A nil slice with a nil error means the
	// key was never written.
	GetState(key []byte) ([]byte, error)

	// SetState writes a raw value under key.
	SetState(key []byte, value []byte) error

	// EmitNotice publishes a human-readable record of a completed operation.
	EmitNotice(text string)
}
