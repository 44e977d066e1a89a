package kv

import "sync"

type memory struct {
	lock sync.RWMutex
	data map[string][]byte
}

func NewMemory() Storage {
	return &memory{
		data: make(map[string][]byte),
	}
}

func (m *memory) Put(key, value []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *memory) Get(key []byte) ([]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	v, ok := m.data[string(key)]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *memory) Has(key []byte) (bool, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, ok := m.data[string(key)]
	return ok, nil
}

func (m *memory) Delete(key []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.data, string(key))
	return nil
}

func (m *memory) Close() error {
	return nil
}
