package brackets

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Dosada05/tournament-pairing/models"
)

// PairingCache stores the current round under a key derived from the roster
// names and the threshold. The method set matches httpcache.Cache.
type PairingCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, data []byte)
	Delete(key string)
}

// Lifecycle drives a tournament through its rounds. It holds no tournament
// state of its own; every method works on the *models.Tournament it is given
// and either applies the whole transition or returns an error untouched.
type Lifecycle struct {
	Rand      RandomSource
	Generator PairingGenerator
	// Cache is optional; without it pairings are recomputed whenever the
	// tournament carries none for the current key.
	Cache    PairingCache
	Observer Observer
}

func NewLifecycle(rng RandomSource, cache PairingCache, observer Observer) *Lifecycle {
	if rng == nil {
		rng = NewRandomSource(0)
	}
	return &Lifecycle{
		Rand:      rng,
		Generator: NewLossBracketGenerator(),
		Cache:     cache,
		Observer:  observer,
	}
}

// PairingsKey identifies the inputs a round's pairings depend on.
func PairingsKey(t *models.Tournament) string {
	names := make([]string, len(t.Competitors))
	for i, c := range t.Competitors {
		names[i] = c.Name
	}
	sort.Strings(names)
	key, _ := json.Marshal(struct {
		Names     []string `json:"names"`
		Threshold int      `json:"threshold"`
	}{names, t.Threshold})
	return string(key)
}

// Begin starts round 1.
func (l *Lifecycle) Begin(t *models.Tournament) error {
	if t.Status != models.StatusNotStarted {
		return fmt.Errorf("%w: cannot begin a tournament that is %s", ErrInvalidState, t.Status)
	}
	if n := t.ActiveCount(); n < 2 {
		return fmt.Errorf("%w: %d active", ErrInvalidStart, n)
	}
	if stalled(t.Competitors, t.Threshold, nil) {
		return fmt.Errorf("%w: round 1", ErrRoundStalled)
	}

	for _, c := range t.Competitors {
		c.Place = nil
	}
	t.Status = models.StatusInProgress
	t.RoundNumber = 1
	t.TiebreakResolved = false
	l.dropRound(t)
	l.cacheDelete(PairingsKey(t))
	l.ensureRound(t)

	l.notify(t, Event{Type: EventRoundStarted})
	return nil
}

// CurrentRound returns the round being played, computing or restoring it
// from the cache when the roster or threshold changed since it was built.
func (l *Lifecycle) CurrentRound(t *models.Tournament) *models.Round {
	if t.Status == models.StatusInProgress {
		l.ensureRound(t)
	}
	return t.Round
}

// SelectWinner records winner for the pairing at index and applies the
// result to both records immediately. Repeating an applied selection is a
// no-op.
func (l *Lifecycle) SelectWinner(t *models.Tournament, index int, winner string) error {
	p, err := l.pairingAt(t, index)
	if err != nil {
		return err
	}
	if winner != p.Comp1 && winner != p.Comp2 {
		return fmt.Errorf("%w: %q is not in %s vs %s", ErrInvalidWinner, winner, p.Comp1, p.Comp2)
	}
	if p.HasWinner() {
		if p.Selected == winner && p.Applied {
			return nil
		}
		if p.Selected != winner {
			return fmt.Errorf("%w: pairing %d already won by %s", ErrAlreadySelected, index, p.Selected)
		}
	}

	w := t.Competitor(winner)
	loserName := p.Comp1
	if winner == p.Comp1 {
		loserName = p.Comp2
	}
	lo := t.Competitor(loserName)
	if w == nil {
		return fmt.Errorf("%w: %s", ErrUnknownCompetitor, winner)
	}
	if lo == nil {
		return fmt.Errorf("%w: %s", ErrUnknownCompetitor, loserName)
	}

	w.Wins++
	lo.Losses++
	p.Selected = winner
	p.Applied = true
	l.storeRound(t)

	applied := *p
	l.notify(t, Event{Type: EventSelectionApplied, Index: index, Pairing: &applied})
	return nil
}

// RevertSelection clears the pairing's winner and undoes the applied result.
// Records never drop below zero.
func (l *Lifecycle) RevertSelection(t *models.Tournament, index int) error {
	p, err := l.pairingAt(t, index)
	if err != nil {
		return err
	}
	if !p.HasWinner() {
		return fmt.Errorf("%w: pairing %d", ErrNothingToRevert, index)
	}

	if p.Applied {
		if w := t.Competitor(p.Selected); w != nil && w.Wins > 0 {
			w.Wins--
		}
		if lo := t.Competitor(p.Loser()); lo != nil && lo.Losses > 0 {
			lo.Losses--
		}
	}
	p.Selected = ""
	p.Applied = false
	l.storeRound(t)

	reverted := *p
	l.notify(t, Event{Type: EventSelectionReverted, Index: index, Pairing: &reverted})
	return nil
}

// FinalizeRound closes the current round and either starts the next one or
// finishes the tournament. During a tiebreak it resolves the tiebreak.
func (l *Lifecycle) FinalizeRound(t *models.Tournament) error {
	if t.Status == models.StatusTiebreak {
		return l.FinalizeTiebreak(t)
	}
	if t.Status != models.StatusInProgress {
		return fmt.Errorf("%w: no round in progress", ErrInvalidState)
	}
	l.ensureRound(t)
	if !t.Round.Complete() {
		return ErrIncompleteRound
	}
	if stalled(t.Competitors, t.Threshold, pendingLosses(t)) {
		return fmt.Errorf("%w: round %d", ErrRoundStalled, t.RoundNumber+1)
	}

	// Results are applied on selection; anything selected but not yet
	// applied (restored from an older snapshot) is committed here.
	for i := range t.Round.Pairings {
		p := &t.Round.Pairings[i]
		if p.IsBye() || p.Applied {
			continue
		}
		w, lo := t.Competitor(p.Selected), t.Competitor(p.Loser())
		if w != nil && lo != nil {
			w.Wins++
			lo.Losses++
		}
		p.Applied = true
	}

	l.dropRound(t)
	l.notify(t, Event{Type: EventRoundFinalized})

	active := models.ActiveCompetitors(t.Competitors, t.Threshold)
	if len(active) > 1 {
		t.RoundNumber++
		l.ensureRound(t)
		l.notify(t, Event{Type: EventRoundStarted})
		return nil
	}

	t.Status = models.StatusFinished
	var champion string
	// With nobody left active there is no champion to place.
	if len(active) == 1 {
		active[0].Place = models.IntPtr(1)
		champion = active[0].Name
	}
	l.notify(t, Event{Type: EventTournamentFinished, Champion: champion})
	return nil
}

// StartTiebreak sets up the single extra match between the tied 2nd and 3rd
// placed competitors.
func (l *Lifecycle) StartTiebreak(t *models.Tournament) error {
	if t.Status != models.StatusFinished {
		return fmt.Errorf("%w: tournament is %s", ErrTiebreakUnavailable, t.Status)
	}
	if t.TiebreakResolved {
		return fmt.Errorf("%w: already resolved", ErrTiebreakUnavailable)
	}
	second, third, ok := FindSecondThirdTie(t.Competitors)
	if !ok {
		return fmt.Errorf("%w: ranks 2 and 3 are not tied", ErrTiebreakUnavailable)
	}

	t.Status = models.StatusTiebreak
	t.Round = &models.Round{
		Number:   t.RoundNumber,
		Pairings: []models.Pairing{TiebreakPairing(second, third)},
		Tiebreak: true,
	}
	l.notify(t, Event{Type: EventTiebreakStarted, Pairing: &t.Round.Pairings[0]})
	return nil
}

// FinalizeTiebreak places the tiebreak winner 2nd and the loser 3rd.
func (l *Lifecycle) FinalizeTiebreak(t *models.Tournament) error {
	if t.Status != models.StatusTiebreak || t.Round == nil || len(t.Round.Pairings) == 0 {
		return fmt.Errorf("%w: no tiebreak in progress", ErrInvalidState)
	}
	p := t.Round.Pairings[0]
	if !p.HasWinner() {
		return ErrIncompleteRound
	}
	w, lo := t.Competitor(p.Selected), t.Competitor(p.Loser())
	if w == nil || lo == nil {
		return fmt.Errorf("%w: tiebreak competitor left the roster", ErrUnknownCompetitor)
	}

	w.Place = models.IntPtr(2)
	lo.Place = models.IntPtr(3)
	t.Status = models.StatusFinished
	t.TiebreakResolved = true
	t.Round = nil

	l.notify(t, Event{Type: EventTiebreakResolved, Pairing: &p})
	return nil
}

// pendingLosses counts the losses of selections not yet applied to records.
func pendingLosses(t *models.Tournament) map[string]int {
	extra := make(map[string]int)
	for _, p := range t.Round.Pairings {
		if p.IsBye() || p.Applied || !p.HasWinner() {
			continue
		}
		if t.Competitor(p.Selected) != nil && t.Competitor(p.Loser()) != nil {
			extra[p.Loser()]++
		}
	}
	return extra
}

// stalled reports whether a round generated now would hold no match while
// more than two competitors are still active: every loss bracket is a single
// competitor. Two survivors always meet head to head.
func stalled(competitors []*models.Competitor, threshold int, extra map[string]int) bool {
	seen := make(map[int]struct{})
	active := 0
	for _, c := range competitors {
		losses := c.Losses + extra[c.Name]
		if losses >= threshold {
			continue
		}
		if _, ok := seen[losses]; ok {
			return false
		}
		seen[losses] = struct{}{}
		active++
	}
	return active > 2
}

func (l *Lifecycle) pairingAt(t *models.Tournament, index int) (*models.Pairing, error) {
	switch t.Status {
	case models.StatusInProgress:
		l.ensureRound(t)
	case models.StatusTiebreak:
	default:
		return nil, fmt.Errorf("%w: no round in progress", ErrInvalidState)
	}
	if t.Round == nil || index < 0 || index >= len(t.Round.Pairings) {
		return nil, fmt.Errorf("%w: index %d", ErrPairingNotFound, index)
	}
	p := &t.Round.Pairings[index]
	if p.IsBye() {
		return nil, ErrByeNotSelectable
	}
	return p, nil
}

// ensureRound makes t.Round match the current roster and threshold, reusing
// a cached round when one exists for the same key and round number.
func (l *Lifecycle) ensureRound(t *models.Tournament) {
	key := PairingsKey(t)
	if t.Round != nil && !t.Round.Tiebreak && t.Round.Key == key && t.Round.Number == t.RoundNumber {
		return
	}
	// The cache holds a single slot per tournament; a stale key must not be
	// revived later.
	if t.Round != nil && t.Round.Key != key {
		l.cacheDelete(t.Round.Key)
	}

	if r := l.loadRound(t, key); r != nil {
		t.Round = r
		return
	}

	gen := l.Generator
	if gen == nil {
		gen = NewLossBracketGenerator()
	}
	t.Round = &models.Round{
		Number: t.RoundNumber,
		Key:    key,
		Pairings: gen.GeneratePairings(GeneratePairingsParams{
			Competitors: t.Competitors,
			Threshold:   t.Threshold,
			Rand:        l.Rand,
		}),
	}
	l.storeRound(t)
}

func (l *Lifecycle) loadRound(t *models.Tournament, key string) *models.Round {
	if l.Cache == nil {
		return nil
	}
	data, ok := l.Cache.Get(key)
	if !ok {
		return nil
	}
	var r models.Round
	if err := json.Unmarshal(data, &r); err != nil {
		return nil
	}
	if r.Key != key || r.Number != t.RoundNumber || r.Tiebreak {
		return nil
	}
	for _, p := range r.Pairings {
		if p.Comp1 == p.Comp2 || t.Competitor(p.Comp1) == nil || (!p.IsBye() && t.Competitor(p.Comp2) == nil) {
			return nil
		}
	}
	return &r
}

func (l *Lifecycle) storeRound(t *models.Tournament) {
	if l.Cache == nil || t.Round == nil || t.Round.Tiebreak {
		return
	}
	data, err := json.Marshal(t.Round)
	if err != nil {
		return
	}
	l.Cache.Set(t.Round.Key, data)
}

func (l *Lifecycle) dropRound(t *models.Tournament) {
	if t.Round != nil && !t.Round.Tiebreak {
		l.cacheDelete(t.Round.Key)
	}
	t.Round = nil
}

func (l *Lifecycle) cacheDelete(key string) {
	if l.Cache != nil && key != "" {
		l.Cache.Delete(key)
	}
}

func (l *Lifecycle) notify(t *models.Tournament, e Event) {
	if l.Observer == nil {
		return
	}
	e.TournamentID = t.ID
	e.Status = t.Status
	e.RoundNumber = t.RoundNumber
	l.Observer.Notify(e)
}
