package services

import (
	"encoding/json"

	"github.com/Dosada05/tournament-pairing/brackets"
	"github.com/Dosada05/tournament-pairing/models"
)

// roundEntry is what the pairing cache holds: a round and the revision of the
// tournament row it belongs to.
type roundEntry struct {
	Revision int64           `json:"revision"`
	Round    json.RawMessage `json:"round"`
}

// readEntry returns the cached round for key if it was written at revision.
func readEntry(c brackets.PairingCache, key string, revision int64) ([]byte, bool) {
	data, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	var e roundEntry
	if err := json.Unmarshal(data, &e); err != nil || e.Revision != revision || len(e.Round) == 0 {
		return nil, false
	}
	return e.Round, true
}

func writeEntry(c brackets.PairingCache, revision int64, r *models.Round) {
	round, err := json.Marshal(r)
	if err != nil {
		return
	}
	data, err := json.Marshal(roundEntry{Revision: revision, Round: round})
	if err != nil {
		return
	}
	c.Set(r.Key, data)
}

// cachedRound is the round of t that belongs in the pairing cache, if any.
func cachedRound(t *models.Tournament) *models.Round {
	r := t.Round
	if t.Status != models.StatusInProgress || r == nil || r.Tiebreak || r.Key == "" {
		return nil
	}
	return r
}

// roundCache is the engine's view of the pairing cache during one
// transaction. Reads see the entries of the loaded revision; writes are held
// until flush.
type roundCache struct {
	inner    brackets.PairingCache
	revision int64
	// nil value = удалено
	pending map[string][]byte
}

func newRoundCache(inner brackets.PairingCache, revision int64) *roundCache {
	return &roundCache{inner: inner, revision: revision, pending: make(map[string][]byte)}
}

func (c *roundCache) Get(key string) ([]byte, bool) {
	if data, ok := c.pending[key]; ok {
		return data, data != nil
	}
	return readEntry(c.inner, key, c.revision)
}

func (c *roundCache) Set(key string, data []byte) {
	c.pending[key] = data
}

func (c *roundCache) Delete(key string) {
	c.pending[key] = nil
}

// flush applies the held writes once the transaction committed. t must carry
// the revision the update returned.
func (c *roundCache) flush(t *models.Tournament) {
	r := cachedRound(t)
	for key := range c.pending {
		if r == nil || key != r.Key {
			c.inner.Delete(key)
		}
	}
	c.pending = make(map[string][]byte)
	if r != nil {
		writeEntry(c.inner, t.Revision, r)
	}
}
