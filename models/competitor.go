package models

// Competitor is a single roster entry. Name is the primary key within a
// tournament; renaming a competitor is the same as removing and re-adding it.
type Competitor struct {
	Name   string `json:"name" db:"name"`
	Team   string `json:"team" db:"team"`
	Wins   int    `json:"wins" db:"wins"`
	Losses int    `json:"losses" db:"losses"`
	Place  *int   `json:"place,omitempty" db:"place"`
}

// IsActive reports whether the competitor is still in the tournament under
// the given elimination threshold.
func (c *Competitor) IsActive(threshold int) bool {
	return c.Losses < threshold
}

func (c *Competitor) Clone() *Competitor {
	cp := *c
	if c.Place != nil {
		p := *c.Place
		cp.Place = &p
	}
	return &cp
}

func ActiveCompetitors(competitors []*Competitor, threshold int) []*Competitor {
	active := make([]*Competitor, 0, len(competitors))
	for _, c := range competitors {
		if c.IsActive(threshold) {
			active = append(active, c)
		}
	}
	return active
}

func FindCompetitor(competitors []*Competitor, name string) *Competitor {
	for _, c := range competitors {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func IntPtr(v int) *int {
	return &v
}
