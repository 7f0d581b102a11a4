package models

// Bye is the sentinel opponent of a competitor who advances without a match.
const Bye = "BYE"

type Pairing struct {
	Comp1    string `json:"comp1"`
	Comp2    string `json:"comp2"`
	Selected string `json:"selected,omitempty"`
	Applied  bool   `json:"applied"`
}

func (p Pairing) IsBye() bool {
	return p.Comp2 == Bye
}

func (p Pairing) HasWinner() bool {
	return p.Selected != ""
}

// Loser returns the competitor opposite to Selected, or "" when no winner
// has been declared.
func (p Pairing) Loser() string {
	switch p.Selected {
	case "":
		return ""
	case p.Comp1:
		return p.Comp2
	default:
		return p.Comp1
	}
}

func (p Pairing) Involves(name string) bool {
	return p.Comp1 == name || p.Comp2 == name
}

// Round is the pairing set currently being played. Key records the roster
// composition and threshold the pairings were computed for.
type Round struct {
	Number   int       `json:"number"`
	Pairings []Pairing `json:"pairings"`
	Key      string    `json:"key,omitempty"`
	Tiebreak bool      `json:"tiebreak,omitempty"`
}

// Complete reports whether every non-bye pairing has a declared winner.
func (r *Round) Complete() bool {
	if r == nil {
		return false
	}
	for _, p := range r.Pairings {
		if !p.IsBye() && !p.HasWinner() {
			return false
		}
	}
	return true
}

func (r *Round) Clone() *Round {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Pairings = append([]Pairing(nil), r.Pairings...)
	return &cp
}
