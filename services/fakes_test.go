package services

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/tournament-pairing/brackets"
	"github.com/Dosada05/tournament-pairing/models"
	"github.com/Dosada05/tournament-pairing/repositories"
	"github.com/Dosada05/tournament-pairing/storage"
)

type fakeTournamentRepo struct {
	mu         sync.Mutex
	nextID     int64
	rows       map[int64]*models.Tournament
	updates    int
	roundReads int
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{nextID: 1, rows: map[int64]*models.Tournament{}}
}

func (r *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	row := t.Clone()
	row.Competitors = nil
	r.rows[t.ID] = row
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int64) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	t := row.Clone()
	t.Round = nil
	return t, nil
}

func (r *fakeTournamentRepo) GetRound(ctx context.Context, exec repositories.SQLExecutor, id int64) (*models.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	r.roundReads++
	return row.Round.Clone(), nil
}

func (r *fakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Tournament, 0, len(r.rows))
	for _, row := range r.rows {
		if filter.Status != nil && row.Status != *filter.Status {
			continue
		}
		out = append(out, *row.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if filter.Offset < len(out) {
		out = out[filter.Offset:]
	} else {
		out = out[:0]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *fakeTournamentRepo) Update(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	r.updates++
	t.Revision = r.rows[t.ID].Revision + 1
	t.UpdatedAt = time.Now()
	row := t.Clone()
	row.Competitors = nil
	r.rows[t.ID] = row
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeTournamentRepo) snapshot() (restore func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make(map[int64]*models.Tournament, len(r.rows))
	for id, row := range r.rows {
		rows[id] = row.Clone()
	}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.rows = rows
	}
}

func (r *fakeTournamentRepo) stored(id int64) *models.Tournament {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id].Clone()
}

type fakeCompetitorRepo struct {
	mu         sync.Mutex
	rosters    map[int64][]*models.Competitor
	replaceErr error
}

func newFakeCompetitorRepo() *fakeCompetitorRepo {
	return &fakeCompetitorRepo{rosters: map[int64][]*models.Competitor{}}
}

func (r *fakeCompetitorRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, id int64) ([]*models.Competitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Competitor, 0, len(r.rosters[id]))
	for _, c := range r.rosters[id] {
		out = append(out, c.Clone())
	}
	return out, nil
}

func (r *fakeCompetitorRepo) ReplaceAll(ctx context.Context, exec repositories.SQLExecutor, id int64, competitors []*models.Competitor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replaceErr != nil {
		return r.replaceErr
	}
	roster := make([]*models.Competitor, len(competitors))
	for i, c := range competitors {
		roster[i] = c.Clone()
	}
	r.rosters[id] = roster
	return nil
}

func (r *fakeCompetitorRepo) snapshot() (restore func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rosters := make(map[int64][]*models.Competitor, len(r.rosters))
	for id, roster := range r.rosters {
		cp := make([]*models.Competitor, len(roster))
		for i, c := range roster {
			cp[i] = c.Clone()
		}
		rosters[id] = cp
	}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.rosters = rosters
	}
}

// fakeTx runs the unit of work against the fakes and restores their
// contents when it fails, the way a rolled back transaction would.
func fakeTx(tournaments *fakeTournamentRepo, competitors *fakeCompetitorRepo) TxRunner {
	return func(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
		restoreTournaments := tournaments.snapshot()
		restoreCompetitors := competitors.snapshot()
		if err := fn(nil); err != nil {
			restoreTournaments()
			restoreCompetitors()
			return err
		}
		return nil
	}
}

type eventLog struct {
	mu     sync.Mutex
	events []brackets.Event
}

func (l *eventLog) Notify(e brackets.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) types() []brackets.EventType {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]brackets.EventType, len(l.events))
	for i, e := range l.events {
		out[i] = e.Type
	}
	return out
}

type fakeUploader struct {
	mu   sync.Mutex
	puts map[string][]byte
}

func (u *fakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.puts[key] = data
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}
