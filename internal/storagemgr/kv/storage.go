package kv

// Storage is the kv store surface the ledger runs on. Get returns <nil, nil>
// when the key is absent, so callers never need a backend-specific not-found
// check.
type Storage interface {
	Put(key, value []byte) error
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Delete(key []byte) error
	Close() error
}
