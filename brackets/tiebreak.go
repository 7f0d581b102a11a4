package brackets

import (
	"sort"

	"github.com/Dosada05/tournament-pairing/models"
)

// RankCompetitors orders the whole roster by final standing: fewest losses
// first, then most wins. The input slice is left untouched.
func RankCompetitors(competitors []*models.Competitor) []*models.Competitor {
	ranked := append([]*models.Competitor(nil), competitors...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Losses != ranked[j].Losses {
			return ranked[i].Losses < ranked[j].Losses
		}
		return ranked[i].Wins > ranked[j].Wins
	})
	return ranked
}

// FindSecondThirdTie reports the competitors ranked 2nd and 3rd when their
// records are identical.
func FindSecondThirdTie(competitors []*models.Competitor) (second, third *models.Competitor, ok bool) {
	ranked := RankCompetitors(competitors)
	if len(ranked) < 3 {
		return nil, nil, false
	}
	second, third = ranked[1], ranked[2]
	if second.Wins == third.Wins && second.Losses == third.Losses {
		return second, third, true
	}
	return nil, nil, false
}

func TiebreakPairing(second, third *models.Competitor) models.Pairing {
	return models.Pairing{Comp1: second.Name, Comp2: third.Name}
}
