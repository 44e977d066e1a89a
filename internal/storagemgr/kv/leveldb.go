package kv

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

type ldb struct {
	db *leveldb.DB
	wo *opt.WriteOptions
}

func NewLeveldb(path string, sync bool) (Storage, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open leveldb at %s", path)
	}
	return &ldb{
		db: db,
		wo: &opt.WriteOptions{Sync: sync},
	}, nil
}

func (l *ldb) Put(key, value []byte) error {
	return l.db.Put(key, value, l.wo)
}

func (l *ldb) Get(key []byte) ([]byte, error) {
	v, err := l.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

func (l *ldb) Has(key []byte) (bool, error) {
	return l.db.Has(key, nil)
}

func (l *ldb) Delete(key []byte) error {
	return l.db.Delete(key, l.wo)
}

func (l *ldb) Close() error {
	return l.db.Close()
}
