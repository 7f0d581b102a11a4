// Package rosterio reads and writes rosters in the CSV layout organizers
// exchange: a Name,Team,Wins,Losses header followed by one competitor per row.
package rosterio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Dosada05/tournament-pairing/models"
)

var ErrInvalidCSV = errors.New("roster csv needs a header and at least one row")

const header = "Name,Team,Wins,Losses"

// Write emits the roster with names and teams always quoted.
func Write(w io.Writer, competitors []*models.Competitor) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(header + "\n"); err != nil {
		return err
	}
	for _, c := range competitors {
		if _, err := fmt.Fprintf(bw, "%s,%s,%d,%d\n", quote(c.Name), quote(c.Team), c.Wins, c.Losses); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Read parses a roster. The first non-blank line is treated as the header.
// Rows with fewer than four fields are skipped and unparsable numbers read as
// zero.
func Read(r io.Reader) ([]*models.Competitor, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}
	// encoding/csv already drops empty lines.
	if len(records) < 2 {
		return nil, ErrInvalidCSV
	}

	out := make([]*models.Competitor, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 4 {
			continue
		}
		out = append(out, &models.Competitor{
			Name:   strings.TrimSpace(rec[0]),
			Team:   strings.TrimSpace(rec[1]),
			Wins:   leadingInt(rec[2]),
			Losses: leadingInt(rec[3]),
		})
	}
	return out, nil
}

// leadingInt parses an optional sign and the digits that follow it, so "3 wins"
// reads as 3 and "abc" as 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
