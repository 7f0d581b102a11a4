package brackets

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Dosada05/tournament-pairing/models"
)

// AddCompetitor appends a new 0-0 competitor. While a round is being played
// the pairings are recomputed for the new roster.
func (l *Lifecycle) AddCompetitor(t *models.Tournament, name, team string) (*models.Competitor, error) {
	name, team = strings.TrimSpace(name), strings.TrimSpace(team)
	if name == "" || name == models.Bye {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if t.Competitor(name) != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCompetitor, name)
	}

	c := &models.Competitor{Name: name, Team: team}
	t.Competitors = append(t.Competitors, c)
	l.rosterChanged(t)
	return c, nil
}

// RemoveCompetitor drops name from the roster. Results already applied to
// former opponents stay as they are.
func (l *Lifecycle) RemoveCompetitor(t *models.Tournament, name string) error {
	name = strings.TrimSpace(name)
	idx := -1
	for i, c := range t.Competitors {
		if c.Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrUnknownCompetitor, name)
	}
	if t.Status == models.StatusTiebreak && t.Round != nil && len(t.Round.Pairings) > 0 && t.Round.Pairings[0].Involves(name) {
		return fmt.Errorf("%w: %s is playing the tiebreak", ErrInvalidState, name)
	}

	t.Competitors = append(t.Competitors[:idx:idx], t.Competitors[idx+1:]...)
	l.rosterChanged(t)
	return nil
}

// SetThreshold changes the elimination threshold. The new value is used from
// the next pairing generation on; during a round that is immediately.
func (l *Lifecycle) SetThreshold(t *models.Tournament, threshold int) error {
	if threshold < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
	}
	if threshold == t.Threshold {
		return nil
	}
	t.Threshold = threshold
	if t.Status == models.StatusInProgress {
		l.ensureRound(t)
	}
	l.notify(t, Event{Type: EventThresholdChanged})
	return nil
}

// ReplaceRoster swaps in a whole roster, typically from a CSV import. Names
// must be unique and non-empty; negative records are clamped to zero. The
// current round is discarded.
func (l *Lifecycle) ReplaceRoster(t *models.Tournament, competitors []*models.Competitor) error {
	roster := make([]*models.Competitor, 0, len(competitors))
	seen := make(map[string]struct{}, len(competitors))
	for _, in := range competitors {
		c := in.Clone()
		c.Name = strings.TrimSpace(c.Name)
		c.Team = strings.TrimSpace(c.Team)
		if c.Name == "" || c.Name == models.Bye {
			return fmt.Errorf("%w: %q", ErrInvalidName, c.Name)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateCompetitor, c.Name)
		}
		seen[c.Name] = struct{}{}
		c.Wins = max(c.Wins, 0)
		c.Losses = max(c.Losses, 0)
		roster = append(roster, c)
	}

	if t.Status == models.StatusTiebreak {
		t.Status = models.StatusFinished
	}
	l.dropRound(t)
	t.Competitors = roster
	l.rosterChanged(t)
	return nil
}

// AddSampleTeams fills the roster with teams×perTeam demo competitors named
// "Competitor N (team)". Names already on the roster are skipped.
func (l *Lifecycle) AddSampleTeams(t *models.Tournament, teams, perTeam int) int {
	added := 0
	for team := 1; team <= teams; team++ {
		for i := 1; i <= perTeam; i++ {
			n := (team-1)*perTeam + i
			name := fmt.Sprintf("Competitor %d (%d)", n, team)
			if t.Competitor(name) != nil {
				continue
			}
			t.Competitors = append(t.Competitors, &models.Competitor{
				Name: name,
				Team: fmt.Sprintf("Team %d", team),
			})
			added++
		}
	}
	if added > 0 {
		l.rosterChanged(t)
	}
	return added
}

// ResetScores zeroes every record and returns the tournament to not_started
// with the roster intact.
func (l *Lifecycle) ResetScores(t *models.Tournament) {
	for _, c := range t.Competitors {
		c.Wins, c.Losses, c.Place = 0, 0, nil
	}
	l.resetState(t)
}

// Reset erases the roster as well.
func (l *Lifecycle) Reset(t *models.Tournament) {
	l.resetState(t)
	t.Competitors = []*models.Competitor{}
}

func (l *Lifecycle) resetState(t *models.Tournament) {
	l.dropRound(t)
	t.Status = models.StatusNotStarted
	t.RoundNumber = 0
	t.TiebreakResolved = false
	l.notify(t, Event{Type: EventTournamentReset})
}

func (l *Lifecycle) rosterChanged(t *models.Tournament) {
	if t.Status == models.StatusInProgress {
		l.ensureRound(t)
	}
	l.notify(t, Event{Type: EventRosterChanged})
}

// CanFinalize reports whether the round on the board can be closed.
func CanFinalize(t *models.Tournament) bool {
	switch t.Status {
	case models.StatusInProgress, models.StatusTiebreak:
		return t.Round.Complete()
	}
	return false
}

// CanTiebreak reports whether StartTiebreak would succeed.
func CanTiebreak(t *models.Tournament) bool {
	if t.Status != models.StatusFinished || t.TiebreakResolved {
		return false
	}
	_, _, ok := FindSecondThirdTie(t.Competitors)
	return ok
}

// TeamPoints sums wins minus losses per team. Competitors without a team are
// left out.
func TeamPoints(t *models.Tournament) []models.TeamPoints {
	totals := make(map[string]int)
	for _, c := range t.Competitors {
		if c.Team == "" {
			continue
		}
		totals[c.Team] += c.Wins - c.Losses
	}

	out := make([]models.TeamPoints, 0, len(totals))
	for team, pts := range totals {
		out = append(out, models.TeamPoints{Team: team, Points: pts})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Team < out[j].Team
	})
	return out
}

// Standings ranks the full roster. Once places have been handed out they take
// priority, unplaced competitors following in record order.
func Standings(t *models.Tournament) []models.Standing {
	usePlace := t.Status == models.StatusFinished || t.Status == models.StatusTiebreak

	ranked := append([]*models.Competitor(nil), t.Competitors...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if usePlace && (a.Place != nil || b.Place != nil) {
			if a.Place == nil {
				return false
			}
			if b.Place == nil {
				return true
			}
			if *a.Place != *b.Place {
				return *a.Place < *b.Place
			}
		}
		if a.Losses != b.Losses {
			return a.Losses < b.Losses
		}
		return a.Wins > b.Wins
	})

	out := make([]models.Standing, len(ranked))
	for i, c := range ranked {
		out[i] = models.Standing{
			Rank:   i + 1,
			Name:   c.Name,
			Team:   c.Team,
			Wins:   c.Wins,
			Losses: c.Losses,
			Place:  c.Place,
			Active: c.IsActive(t.Threshold),
		}
	}
	return out
}

// StandingsFilter narrows a standings table without changing ranks.
type StandingsFilter struct {
	ActiveOnly bool
	Team       string
}

func FilterStandings(standings []models.Standing, f StandingsFilter) []models.Standing {
	if !f.ActiveOnly && f.Team == "" {
		return standings
	}
	out := make([]models.Standing, 0, len(standings))
	for _, s := range standings {
		if f.ActiveOnly && !s.Active {
			continue
		}
		if f.Team != "" && s.Team != f.Team {
			continue
		}
		out = append(out, s)
	}
	return out
}
