package brackets

import "github.com/Dosada05/tournament-pairing/models"

const (
	maxTrials       = 100
	baseTrials      = 10
	trialsPerMember = 5
	maxImprovements = 10
)

// Match pairs the members of one loss bracket, keeping teammates apart where
// the randomized search can manage it. An odd bracket gives its bye to the
// member with the most wins; the bye pairing is always last.
func Match(group []*models.Competitor, rng RandomSource) []models.Pairing {
	working := append([]*models.Competitor(nil), group...)

	var byeRecipient *models.Competitor
	if len(working) > 1 && len(working)%2 != 0 {
		idx := 0
		for i, c := range working {
			if c.Wins >= working[idx].Wins {
				idx = i
			}
		}
		byeRecipient = working[idx]
		working = append(working[:idx], working[idx+1:]...)
	}

	pairings := construct(working, rng)
	improve(pairings, teamIndex(group))

	if byeRecipient != nil {
		pairings = append(pairings, models.Pairing{Comp1: byeRecipient.Name, Comp2: models.Bye})
	}
	return pairings
}

// construct runs the randomized greedy trials and returns the pairing list
// of the trial with the fewest same-team matches.
func construct(working []*models.Competitor, rng RandomSource) []models.Pairing {
	if len(working) < 2 {
		return []models.Pairing{}
	}

	trials := min(maxTrials, baseTrials+len(working)*trialsPerMember)
	var (
		best          []models.Pairing
		bestConflicts = -1
	)
	trial := make([]*models.Competitor, len(working))
	for t := 0; t < trials; t++ {
		copy(trial, working)
		Shuffle(trial, rng)
		pairs, conflicts := greedyPairs(trial)
		if bestConflicts < 0 || conflicts < bestConflicts {
			best, bestConflicts = pairs, conflicts
			if conflicts == 0 {
				break
			}
		}
	}
	return best
}

func greedyPairs(order []*models.Competitor) ([]models.Pairing, int) {
	remaining := append([]*models.Competitor(nil), order...)
	pairs := make([]models.Pairing, 0, len(order)/2+1)
	conflicts := 0

	for len(remaining) > 1 {
		a := remaining[0]
		remaining = remaining[1:]

		idx := -1
		for i, c := range remaining {
			if c.Team != a.Team {
				idx = i
				break
			}
		}
		if idx == -1 {
			idx = 0
			conflicts++
		}
		b := remaining[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		pairs = append(pairs, models.Pairing{Comp1: a.Name, Comp2: b.Name})
	}
	// Unreachable when the caller took the bye out of an odd bracket.
	if len(remaining) == 1 {
		pairs = append(pairs, models.Pairing{Comp1: remaining[0].Name, Comp2: models.Bye})
	}
	return pairs, conflicts
}

// improve applies first-improvement swaps between match pairs until no swap
// lowers the conflict score or the step budget runs out.
func improve(pairs []models.Pairing, teamOf map[string]string) {
	steps := min(maxImprovements, 2*len(pairs))
	for ; steps > 0; steps-- {
		if !improveOnce(pairs, teamOf) {
			return
		}
	}
}

func improveOnce(ps []models.Pairing, teamOf map[string]string) bool {
	for i := range ps {
		if ps[i].IsBye() {
			continue
		}
		for j := i + 1; j < len(ps); j++ {
			if ps[j].IsBye() {
				continue
			}
			a1, a2 := ps[i].Comp1, ps[i].Comp2
			b1, b2 := ps[j].Comp1, ps[j].Comp2
			before := ConflictScore(ps[i], teamOf) + ConflictScore(ps[j], teamOf)

			alt1i := models.Pairing{Comp1: a1, Comp2: b1}
			alt1j := models.Pairing{Comp1: a2, Comp2: b2}
			if ConflictScore(alt1i, teamOf)+ConflictScore(alt1j, teamOf) < before {
				ps[i], ps[j] = alt1i, alt1j
				return true
			}

			alt2i := models.Pairing{Comp1: a1, Comp2: b2}
			alt2j := models.Pairing{Comp1: b1, Comp2: a2}
			if ConflictScore(alt2i, teamOf)+ConflictScore(alt2j, teamOf) < before {
				ps[i], ps[j] = alt2i, alt2j
				return true
			}
		}
	}
	return false
}

// ConflictScore is 1 when both sides of p belong to the same non-empty team.
func ConflictScore(p models.Pairing, teamOf map[string]string) int {
	if p.IsBye() {
		return 0
	}
	t1, t2 := teamOf[p.Comp1], teamOf[p.Comp2]
	if t1 == "" || t2 == "" {
		return 0
	}
	if t1 == t2 {
		return 1
	}
	return 0
}

// CountConflicts totals the same-team matches in a pairing set.
func CountConflicts(pairings []models.Pairing, competitors []*models.Competitor) int {
	teamOf := teamIndex(competitors)
	n := 0
	for _, p := range pairings {
		n += ConflictScore(p, teamOf)
	}
	return n
}

func teamIndex(competitors []*models.Competitor) map[string]string {
	m := make(map[string]string, len(competitors))
	for _, c := range competitors {
		m[c.Name] = c.Team
	}
	return m
}
