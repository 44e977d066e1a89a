package host

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// StateSlot is a typed view over one raw state key. The first byte of the
// stored value records existence, so a slot can be cleared without deleting
// the underlying key.
type StateSlot[V any] struct {
	env      Env
	slotName string
}

func NewStateSlot[V any](env Env, slotName string) *StateSlot[V] {
	return &StateSlot[V]{
		env:      env,
		slotName: slotName,
	}
}

func (s *StateSlot[V]) stateKey() []byte {
	return []byte(s.slotName)
}

func (s *StateSlot[V]) Get() (exist bool, v V, err error) {
	data, err := s.env.GetState(s.stateKey())
	if err != nil {
		return false, v, err
	}
	if len(data) == 0 || data[0] == 0 {
		return false, v, nil
	}
	if err := json.Unmarshal(data[1:], &v); err != nil {
		return false, v, err
	}
	return true, v, nil
}

func (s *StateSlot[V]) MustGet() (v V, err error) {
	exist, v, err := s.Get()
	if err != nil {
		return v, err
	}
	if !exist {
		return v, errors.Errorf("slot[%s] not exist", s.slotName)
	}
	return v, nil
}

func (s *StateSlot[V]) Has() (bool, error) {
	data, err := s.env.GetState(s.stateKey())
	if err != nil {
		return false, err
	}
	return !(len(data) == 0 || data[0] == 0), nil
}

func (s *StateSlot[V]) Put(v V) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.env.SetState(s.stateKey(), append([]byte{1}, data...))
}

func (s *StateSlot[V]) Delete() error {
	return s.env.SetState(s.stateKey(), []byte{0})
}
