package kv

import (
	pebbledb "github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
)

type pebble struct {
	db *pebbledb.DB
	wo *pebbledb.WriteOptions
}

func NewPebble(path string, options *pebbledb.Options, wo *pebbledb.WriteOptions) (Storage, error) {
	db, err := pebbledb.Open(path, options)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open pebble at %s", path)
	}
	return &pebble{
		db: db,
		wo: wo,
	}, nil
}

func (p *pebble) Put(key, value []byte) error {
	return p.db.Set(key, value, p.wo)
}

func (p *pebble) Get(key []byte) ([]byte, error) {
	v, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebbledb.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	// the returned slice is only valid until closer.Close()
	value := make([]byte, len(v))
	copy(value, v)
	if err := closer.Close(); err != nil {
		return nil, err
	}
	return value, nil
}

func (p *pebble) Has(key []byte) (bool, error) {
	v, err := p.Get(key)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

func (p *pebble) Delete(key []byte) error {
	return p.db.Delete(key, p.wo)
}

func (p *pebble) Close() error {
	return p.db.Close()
}
