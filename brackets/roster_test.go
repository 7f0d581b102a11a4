package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-pairing/models"
)

func TestAddCompetitor(t *testing.T) {
	l := NewLifecycle(NewRandomSource(1), nil, nil)
	tr := tournamentOf(2)

	c, err := l.AddCompetitor(tr, "  Alice ", " Red ")
	require.NoError(t, err)
	assert.Equal(t, &models.Competitor{Name: "Alice", Team: "Red"}, c)

	_, err = l.AddCompetitor(tr, "Alice", "")
	require.ErrorIs(t, err, ErrDuplicateCompetitor)

	for _, bad := range []string{"", "   ", models.Bye} {
		_, err = l.AddCompetitor(tr, bad, "")
		require.ErrorIs(t, err, ErrInvalidName, "%q", bad)
	}
	assert.Len(t, tr.Competitors, 1)
}

func TestRemoveCompetitor(t *testing.T) {
	l := NewLifecycle(NewRandomSource(1), nil, nil)
	tr := tournamentOf(2, comp("A", "", 0, 0), comp("B", "", 0, 0), comp("C", "", 0, 0))

	require.ErrorIs(t, l.RemoveCompetitor(tr, "Z"), ErrUnknownCompetitor)
	require.NoError(t, l.RemoveCompetitor(tr, "B"))
	assert.Equal(t, []string{"A", "C"}, names(tr.Competitors))
}

func TestRemoveTiebreakPlayerRejected(t *testing.T) {
	l := NewLifecycle(NewRandomSource(1), nil, nil)
	tr := tournamentOf(2, comp("A", "", 3, 1), comp("B", "", 2, 1), comp("C", "", 2, 1))
	tr.Status = models.StatusFinished
	require.NoError(t, l.StartTiebreak(tr))

	require.ErrorIs(t, l.RemoveCompetitor(tr, "B"), ErrInvalidState)
	require.NoError(t, l.RemoveCompetitor(tr, "A"))
}

func TestSetThreshold(t *testing.T) {
	rec := &recorder{}
	l := NewLifecycle(NewRandomSource(1), nil, rec)
	tr := tournamentOf(2, comp("A", "", 0, 1), comp("B", "", 0, 0))

	require.ErrorIs(t, l.SetThreshold(tr, 0), ErrInvalidThreshold)
	require.NoError(t, l.SetThreshold(tr, 2))
	assert.Empty(t, rec.events, "unchanged threshold is a no-op")

	require.NoError(t, l.SetThreshold(tr, 1))
	assert.Equal(t, 1, tr.Threshold)
	assert.Equal(t, 1, tr.ActiveCount())
	assert.Equal(t, []EventType{EventThresholdChanged}, rec.types())
}

func TestReplaceRoster(t *testing.T) {
	l := NewLifecycle(NewRandomSource(1), nil, nil)
	tr := tournamentOf(2, comp("Old", "", 0, 0))

	in := []*models.Competitor{comp(" A ", "Red", -2, 1), comp("B", "", 3, -1)}
	require.NoError(t, l.ReplaceRoster(tr, in))
	assert.Equal(t, []*models.Competitor{comp("A", "Red", 0, 1), comp("B", "", 3, 0)}, tr.Competitors)
	assert.Equal(t, " A ", in[0].Name, "input is copied, not adopted")

	err := l.ReplaceRoster(tr, []*models.Competitor{comp("X", "", 0, 0), comp("X", "", 1, 0)})
	require.ErrorIs(t, err, ErrDuplicateCompetitor)
	err = l.ReplaceRoster(tr, []*models.Competitor{comp("", "", 0, 0)})
	require.ErrorIs(t, err, ErrInvalidName)
	assert.Equal(t, []string{"A", "B"}, names(tr.Competitors), "rejected roster leaves the old one in place")
}

func TestResetScoresAndReset(t *testing.T) {
	cache := newMemCache()
	l := NewLifecycle(NewRandomSource(1), cache, nil)
	tr := fourPlayers(2)
	require.NoError(t, l.Begin(tr))
	require.NoError(t, l.SelectWinner(tr, 0, tr.Round.Pairings[0].Comp1))
	key := tr.Round.Key

	l.ResetScores(tr)
	assert.Equal(t, models.StatusNotStarted, tr.Status)
	assert.Zero(t, tr.RoundNumber)
	assert.Nil(t, tr.Round)
	assert.Len(t, tr.Competitors, 4)
	for _, c := range tr.Competitors {
		assert.Zero(t, c.Wins)
		assert.Zero(t, c.Losses)
		assert.Nil(t, c.Place)
	}
	_, ok := cache.Get(key)
	assert.False(t, ok)

	require.NoError(t, l.Begin(tr))
	l.Reset(tr)
	assert.Empty(t, tr.Competitors)
	assert.Equal(t, models.StatusNotStarted, tr.Status)
	require.ErrorIs(t, l.Begin(tr), ErrInvalidStart)
}

func TestAddSampleTeams(t *testing.T) {
	l := NewLifecycle(NewRandomSource(1), nil, nil)
	tr := tournamentOf(2)

	assert.Equal(t, 15, l.AddSampleTeams(tr, 3, 5))
	assert.Equal(t, "Competitor 1 (1)", tr.Competitors[0].Name)
	assert.Equal(t, "Team 1", tr.Competitors[0].Team)
	assert.Equal(t, "Competitor 15 (3)", tr.Competitors[14].Name)
	assert.Equal(t, "Team 3", tr.Competitors[14].Team)

	assert.Zero(t, l.AddSampleTeams(tr, 3, 5))
}

func TestTeamPoints(t *testing.T) {
	tr := tournamentOf(2,
		comp("A", "Red", 3, 1),
		comp("B", "Red", 0, 2),
		comp("C", "Blue", 2, 0),
		comp("D", "", 5, 0),
		comp("E", "Green", 1, 1),
		comp("F", "Amber", 1, 1),
	)

	assert.Equal(t, []models.TeamPoints{
		{Team: "Blue", Points: 2},
		{Team: "Amber", Points: 0},
		{Team: "Green", Points: 0},
		{Team: "Red", Points: 0},
	}, TeamPoints(tr))
}

func TestStandings(t *testing.T) {
	tr := tournamentOf(2,
		comp("A", "Red", 1, 1),
		comp("B", "Blue", 3, 0),
		comp("C", "Red", 2, 1),
		comp("D", "Blue", 0, 2),
	)

	order := func(ss []models.Standing) []string {
		out := make([]string, len(ss))
		for i, s := range ss {
			out[i] = s.Name
		}
		return out
	}

	ss := Standings(tr)
	assert.Equal(t, []string{"B", "C", "A", "D"}, order(ss))
	assert.Equal(t, 1, ss[0].Rank)
	assert.False(t, ss[3].Active)

	// Places only count once the tournament is over.
	tr.Competitors[0].Place = models.IntPtr(1)
	assert.Equal(t, []string{"B", "C", "A", "D"}, order(Standings(tr)))
	tr.Status = models.StatusFinished
	assert.Equal(t, []string{"A", "B", "C", "D"}, order(Standings(tr)))

	filtered := FilterStandings(Standings(tr), StandingsFilter{Team: "Blue"})
	assert.Equal(t, []string{"B", "D"}, order(filtered))
	assert.Equal(t, 2, filtered[0].Rank, "filtering keeps absolute ranks")

	active := FilterStandings(Standings(tr), StandingsFilter{ActiveOnly: true})
	assert.Equal(t, []string{"A", "B", "C"}, order(active))
}
