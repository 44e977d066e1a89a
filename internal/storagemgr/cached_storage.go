package storagemgr

import (
	"github.com/VictoriaMetrics/fastcache"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tallyledger/tally/internal/storagemgr/kv"
)

var (
	kvCacheHitCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tally",
		Subsystem: "storage",
		Name:      "kv_cache_hit_total",
		Help:      "The total number of kv cache hits",
	})

	kvCacheMissCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tally",
		Subsystem: "storage",
		Name:      "kv_cache_miss_total",
		Help:      "The total number of kv cache misses",
	})
)

func init() {
	prometheus.MustRegister(kvCacheHitCounter)
	prometheus.MustRegister(kvCacheMissCounter)
}

// CachedStorage keeps hot keys in an in-process cache in front of the
// backing store. Writes go through to the store before the cache is updated.
type CachedStorage struct {
	kv.Storage
	cache *fastcache.Cache
}

func NewCachedStorage(s kv.Storage, megabytesLimit int) kv.Storage {
	if megabytesLimit <= 0 {
		megabytesLimit = 16
	}
	return &CachedStorage{
		Storage: s,
		cache:   fastcache.New(megabytesLimit * 1024 * 1024),
	}
}

func (c *CachedStorage) Get(key []byte) ([]byte, error) {
	value, ok := c.cache.HasGet(nil, key)
	if ok {
		kvCacheHitCounter.Inc()
		return value, nil
	}
	v, err := c.Storage.Get(key)
	if err != nil {
		return nil, err
	}
	kvCacheMissCounter.Inc()
	if v != nil {
		c.cache.Set(key, v)
	}
	return v, nil
}

func (c *CachedStorage) Has(key []byte) (bool, error) {
	if c.cache.Has(key) {
		kvCacheHitCounter.Inc()
		return true, nil
	}
	kvCacheMissCounter.Inc()
	return c.Storage.Has(key)
}

func (c *CachedStorage) Put(key, value []byte) error {
	if len(value) == 0 {
		value = nil
	}
	if err := c.Storage.Put(key, value); err != nil {
		return err
	}
	c.cache.Set(key, value)
	return nil
}

func (c *CachedStorage) Delete(key []byte) error {
	c.cache.Del(key)
	return c.Storage.Delete(key)
}

func (c *CachedStorage) Close() error {
	c.cache.Reset()
	return c.Storage.Close()
}
