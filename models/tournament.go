package models

import "time"

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	StatusNotStarted TournamentStatus = "not_started"
	StatusInProgress TournamentStatus = "in_progress"
	StatusFinished   TournamentStatus = "finished"
	StatusTiebreak   TournamentStatus = "tiebreak"
)

// DefaultThreshold is the double-elimination default used when a tournament
// is created without an explicit threshold.
const DefaultThreshold = 2

// Tournament is the complete state of one elimination event. It is owned by
// the caller and handed to every engine operation.
type Tournament struct {
	ID               int64            `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	Status           TournamentStatus `json:"status" db:"status"`
	RoundNumber      int              `json:"round_number" db:"round_number"`
	Threshold        int              `json:"threshold" db:"threshold"`
	TiebreakResolved bool             `json:"tiebreak_resolved" db:"tiebreak_resolved"`
	// Revision grows by one with every committed update.
	Revision         int64            `json:"revision" db:"revision"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`

	Competitors []*Competitor `json:"competitors,omitempty" db:"-"`
	Round       *Round        `json:"round,omitempty" db:"current_round"`
}

func NewTournament(name string, threshold int) *Tournament {
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	return &Tournament{
		Name:        name,
		Status:      StatusNotStarted,
		Threshold:   threshold,
		Competitors: []*Competitor{},
	}
}

func (t *Tournament) ActiveCount() int {
	n := 0
	for _, c := range t.Competitors {
		if c.IsActive(t.Threshold) {
			n++
		}
	}
	return n
}

func (t *Tournament) Competitor(name string) *Competitor {
	return FindCompetitor(t.Competitors, name)
}

// Clone returns a deep copy, used to stage mutations before they are committed.
func (t *Tournament) Clone() *Tournament {
	cp := *t
	cp.Competitors = make([]*Competitor, len(t.Competitors))
	for i, c := range t.Competitors {
		cp.Competitors[i] = c.Clone()
	}
	cp.Round = t.Round.Clone()
	return &cp
}
