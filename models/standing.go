package models

type Standing struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Team   string `json:"team,omitempty"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Place  *int   `json:"place,omitempty"`
	Active bool   `json:"active"`
}

// TeamPoints is the sum of (wins - losses) over every member of a team.
type TeamPoints struct {
	Team   string `json:"team"`
	Points int    `json:"points"`
}
