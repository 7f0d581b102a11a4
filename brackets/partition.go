package brackets

import (
	"sort"

	"github.com/Dosada05/tournament-pairing/models"
)

// LossBracket groups the active competitors that share a loss count.
type LossBracket struct {
	Losses      int
	Competitors []*models.Competitor
}

type Partitioning struct {
	// Ranked holds every active competitor, wins descending then losses ascending.
	Ranked []*models.Competitor
	// Brackets is ordered by ascending loss count. Empty when HeadToHead is set.
	Brackets []LossBracket
	// HeadToHead is set when exactly two competitors remain; they meet directly.
	HeadToHead bool
}

// Partition splits the active part of the roster into loss brackets.
func Partition(competitors []*models.Competitor, threshold int, rng RandomSource) Partitioning {
	active := models.ActiveCompetitors(competitors, threshold)

	fresh := true
	for _, c := range active {
		if c.Wins != 0 || c.Losses != 0 {
			fresh = false
			break
		}
	}
	// Round 1: nobody has a record yet, so insertion order must not leak into
	// bracket formation.
	if fresh {
		Shuffle(active, rng)
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Wins != active[j].Wins {
			return active[i].Wins > active[j].Wins
		}
		return active[i].Losses < active[j].Losses
	})

	result := Partitioning{Ranked: active}
	if len(active) == 2 {
		result.HeadToHead = true
		return result
	}

	groups := make(map[int][]*models.Competitor)
	for _, c := range active {
		groups[c.Losses] = append(groups[c.Losses], c)
	}

	// A lone unbeaten competitor would otherwise sit in a bracket of one and
	// never play; in multi-loss formats they join the one-loss bracket.
	if threshold > 2 && len(groups[0]) == 1 {
		groups[1] = append(groups[1], groups[0][0])
		delete(groups, 0)
	}

	losses := make([]int, 0, len(groups))
	for l := range groups {
		losses = append(losses, l)
	}
	sort.Ints(losses)

	result.Brackets = make([]LossBracket, 0, len(losses))
	for _, l := range losses {
		result.Brackets = append(result.Brackets, LossBracket{Losses: l, Competitors: groups[l]})
	}
	return result
}

// GeneratePairings computes a full round: partition, then match every
// bracket and concatenate the results in bracket order.
func GeneratePairings(competitors []*models.Competitor, threshold int, rng RandomSource) []models.Pairing {
	part := Partition(competitors, threshold, rng)
	if part.HeadToHead {
		return []models.Pairing{{Comp1: part.Ranked[0].Name, Comp2: part.Ranked[1].Name}}
	}

	pairings := make([]models.Pairing, 0, len(part.Ranked)/2+len(part.Brackets))
	for _, b := range part.Brackets {
		pairings = append(pairings, Match(b.Competitors, rng)...)
	}
	return pairings
}
