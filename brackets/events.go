package brackets

import "github.com/Dosada05/tournament-pairing/models"

type EventType string

const (
	EventRoundStarted       EventType = "ROUND_STARTED"
	EventSelectionApplied   EventType = "SELECTION_APPLIED"
	EventSelectionReverted  EventType = "SELECTION_REVERTED"
	EventRoundFinalized     EventType = "ROUND_FINALIZED"
	EventTournamentFinished EventType = "TOURNAMENT_FINISHED"
	EventTiebreakStarted    EventType = "TIEBREAK_STARTED"
	EventTiebreakResolved   EventType = "TIEBREAK_RESOLVED"
	EventRosterChanged      EventType = "ROSTER_CHANGED"
	EventThresholdChanged   EventType = "THRESHOLD_CHANGED"
	EventTournamentReset    EventType = "TOURNAMENT_RESET"
)

// Event describes a state transition that has already been applied.
type Event struct {
	Type         EventType               `json:"type"`
	TournamentID int64                   `json:"tournament_id"`
	Status       models.TournamentStatus `json:"status"`
	RoundNumber  int                     `json:"round_number"`
	Index        int                     `json:"index,omitempty"`
	Pairing      *models.Pairing         `json:"pairing,omitempty"`
	Champion     string                  `json:"champion,omitempty"`
}

// Observer is told about transitions after they happen. The engine never
// waits on or depends on what an observer does.
type Observer interface {
	Notify(Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) Notify(e Event) { f(e) }
