package ledger

import (
	"github.com/pkg/errors"

	"github.com/tallyledger/tally/internal/host"
)

// StateKey is the single storage slot the whole token state lives under.
const StateKey = "tally-ft"

// Store reads and writes the token state blob through a host environment.
type Store struct {
	env   host.Env
	cache *StateCache
}

func NewStore(env host.Env, cache *StateCache) *Store {
	return &Store{env: env, cache: cache}
}

// Get loads the current state. exist is false when the slot was never
// written, which is how an uninitialized token presents itself.
func (s *Store) Get() (exist bool, state *State, err error) {
	blob, err := s.env.GetState([]byte(StateKey))
	if err != nil {
		return false, nil, errors.Wrap(err, "failed to read token state")
	}
	if blob == nil {
		return false, nil, nil
	}
	state, err = s.cache.Decode(blob)
	if err != nil {
		return false, nil, err
	}
	return true, state, nil
}

func (s *Store) Has() (bool, error) {
	blob, err := s.env.GetState([]byte(StateKey))
	if err != nil {
		return false, errors.Wrap(err, "failed to read token state")
	}
	return blob != nil, nil
}

// Put writes the state back to its slot.
func (s *Store) Put(state *State) error {
	blob, err := state.Marshal()
	if err != nil {
		return errors.Wrap(err, "failed to marshal token state")
	}
	if err := s.env.SetState([]byte(StateKey), blob); err != nil {
		return errors.Wrap(err, "failed to write token state")
	}
	s.cache.Add(blob, state)
	return nil
}
