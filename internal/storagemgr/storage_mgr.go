package storagemgr

import (
	"fmt"
	"runtime"
	"sync"

	pebbledb "github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"

	"github.com/tallyledger/tally/internal/storagemgr/kv"
	"github.com/tallyledger/tally/pkg/loggers"
	"github.com/tallyledger/tally/pkg/repo"
)

const (
	Ledger = "ledger"
)

var globalStorageMgr = &storageMgr{
	storageBuilderMap: make(map[string]func(p string) (kv.Storage, error)),
	storages:          make(map[string]kv.Storage),
	lock:              new(sync.Mutex),
}

func init() {
	memoryBuilder := func(p string) (kv.Storage, error) {
		return kv.NewMemory(), nil
	}

	// only for test
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypeLeveldb] = memoryBuilder
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypePebble] = memoryBuilder
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypeRosedb] = memoryBuilder
	globalStorageMgr.storageBuilderMap[""] = memoryBuilder
}

type storageMgr struct {
	storageBuilderMap map[string]func(p string) (kv.Storage, error)
	storages          map[string]kv.Storage
	defaultKVType     string
	lock              *sync.Mutex
}

var defaultPebbleOptions = &pebbledb.Options{
	// MemTableStopWritesThreshold is max number of the existent MemTables(including the frozen one).
	// This manner is the same with leveldb, including a frozen memory table and another live one.
	MemTableStopWritesThreshold: 2,

	MaxConcurrentCompactions: func() int { return runtime.NumCPU() },

	// Per-level options. Options for at least one level must be specified. The
	// options for the last level are used for all subsequent levels.
	Levels: []pebbledb.LevelOptions{
		{TargetFileSize: 2 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
		{TargetFileSize: 2 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
		{TargetFileSize: 4 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
		{TargetFileSize: 4 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
		{TargetFileSize: 8 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
		{TargetFileSize: 8 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
		{TargetFileSize: 16 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
	},
}

func (m *storageMgr) open(typ string, p string) (kv.Storage, error) {
	builder, ok := m.storageBuilderMap[typ]
	if !ok {
		return nil, fmt.Errorf("unknow kv type %s, expect leveldb or pebble or rosedb", typ)
	}
	return builder(p)
}

func Initialize(defaultKVType string, defaultKvCacheSize int, sync bool) error {
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypeLeveldb] = func(p string) (kv.Storage, error) {
		return kv.NewLeveldb(p, sync)
	}
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypePebble] = func(p string) (kv.Storage, error) {
		defaultPebbleOptions.Cache = pebbledb.NewCache(int64(defaultKvCacheSize * 1024 * 1024))
		defaultPebbleOptions.MemTableSize = uint64(defaultKvCacheSize * 1024 * 1024 / 4)
		defaultPebbleOptions.Logger = loggers.Logger(loggers.Storage)
		return kv.NewPebble(p, defaultPebbleOptions, &pebbledb.WriteOptions{Sync: sync})
	}
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypeRosedb] = func(p string) (kv.Storage, error) {
		return kv.NewRosedb(p, sync)
	}
	_, ok := globalStorageMgr.storageBuilderMap[defaultKVType]
	if !ok {
		return fmt.Errorf("unknow kv type %s, expect leveldb or pebble or rosedb", defaultKVType)
	}
	globalStorageMgr.defaultKVType = defaultKVType
	return nil
}

func Open(p string) (kv.Storage, error) {
	return OpenSpecifyType(globalStorageMgr.defaultKVType, p)
}

func OpenSpecifyType(typ string, p string) (kv.Storage, error) {
	globalStorageMgr.lock.Lock()
	defer globalStorageMgr.lock.Unlock()
	s, ok := globalStorageMgr.storages[p]
	if !ok {
		var err error
		s, err = globalStorageMgr.open(typ, p)
		if err != nil {
			return nil, err
		}
		globalStorageMgr.storages[p] = s
	}
	return s, nil
}
