package brackets

import (
	"sync"

	"github.com/Dosada05/tournament-pairing/models"
)

// scriptedSource replays a fixed list of values, reduced into range.
type scriptedSource struct {
	vals []int
	i    int
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

// memCache is a map-backed PairingCache that also counts deletes.
type memCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	deletes []string
}

func newMemCache() *memCache {
	return &memCache{items: map[string][]byte{}}
}

func (c *memCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *memCache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
}

func (c *memCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	c.deletes = append(c.deletes, key)
}

type recorder struct {
	events []Event
}

func (r *recorder) Notify(e Event) { r.events = append(r.events, e) }

func (r *recorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func comp(name, team string, wins, losses int) *models.Competitor {
	return &models.Competitor{Name: name, Team: team, Wins: wins, Losses: losses}
}

func tournamentOf(threshold int, cs ...*models.Competitor) *models.Tournament {
	t := models.NewTournament("test", threshold)
	t.ID = 7
	t.Competitors = cs
	return t
}

func names(cs []*models.Competitor) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

// appearances counts how often each name shows up in a pairing set, byes
// included.
func appearances(ps []models.Pairing) map[string]int {
	seen := map[string]int{}
	for _, p := range ps {
		seen[p.Comp1]++
		if !p.IsBye() {
			seen[p.Comp2]++
		}
	}
	return seen
}
