package kv

import (
	"github.com/pkg/errors"
	"github.com/rosedblabs/rosedb/v2"
)

type rosedbKV struct {
	db *rosedb.DB
}

func NewRosedb(path string, sync bool) (Storage, error) {
	options := rosedb.DefaultOptions
	options.DirPath = path
	options.Sync = sync
	options.SegmentSize = 50 * 1024 * 1024
	db, err := rosedb.Open(options)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open rosedb at %s", path)
	}
	return &rosedbKV{
		db: db,
	}, nil
}

func (r *rosedbKV) Put(key, value []byte) error {
	return r.db.Put(key, value)
}

func (r *rosedbKV) Get(key []byte) ([]byte, error) {
	v, err := r.db.Get(key)
	if err != nil {
		if errors.Is(err, rosedb.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

func (r *rosedbKV) Has(key []byte) (bool, error) {
	return r.db.Exist(key)
}

func (r *rosedbKV) Delete(key []byte) error {
	return r.db.Delete(key)
}

func (r *rosedbKV) Close() error {
	return r.db.Close()
}
