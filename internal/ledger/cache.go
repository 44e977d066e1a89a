package ledger

import (
	"crypto/sha256"

	lru "github.com/hashicorp/golang-lru/v2"
)

// StateCache memoizes decoded states keyed by the digest of their encoding,
// saving the JSON decode when the stored blob has not changed since the
// previous operation.
type StateCache struct {
	entries *lru.Cache[[32]byte, *State]
}

func NewStateCache(size int) *StateCache {
	if size <= 0 {
		size = 16
	}
	entries, _ := lru.New[[32]byte, *State](size)
	return &StateCache{entries: entries}
}

// Decode returns a private copy of the state encoded in blob.
func (c *StateCache) Decode(blob []byte) (*State, error) {
	digest := sha256.Sum256(blob)
	if cached, ok := c.entries.Get(digest); ok {
		return cached.Copy(), nil
	}
	state, err := UnmarshalState(blob)
	if err != nil {
		return nil, err
	}
	c.entries.Add(digest, state.Copy())
	return state, nil
}

// Add caches state under the digest of blob, so the read following a write
// skips the decode.
func (c *StateCache) Add(blob []byte, state *State) {
	c.entries.Add(sha256.Sum256(blob), state.Copy())
}
