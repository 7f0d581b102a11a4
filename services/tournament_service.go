package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tournament-pairing/brackets"
	"github.com/Dosada05/tournament-pairing/cache"
	"github.com/Dosada05/tournament-pairing/models"
	"github.com/Dosada05/tournament-pairing/repositories"
	"github.com/Dosada05/tournament-pairing/rosterio"
	"github.com/Dosada05/tournament-pairing/storage"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	maxSampleSize    = 1000
)

// Status is the tournament together with what the organizer can do next.
type Status struct {
	Tournament  *models.Tournament `json:"tournament"`
	ActiveCount int                `json:"active_count"`
	CanFinalize bool               `json:"can_finalize"`
	CanTiebreak bool               `json:"can_tiebreak"`
	Champion    string             `json:"champion,omitempty"`
}

type CreateTournamentInput struct {
	Name      string `json:"name"`
	Threshold *int   `json:"threshold,omitempty"`
}

type ListTournamentsInput struct {
	Status *models.TournamentStatus
	Limit  int
	Offset int
}

type AddCompetitorInput struct {
	Name string `json:"name"`
	Team string `json:"team"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*Status, error)
	Get(ctx context.Context, id int64) (*Status, error)
	List(ctx context.Context, input ListTournamentsInput) ([]models.Tournament, error)
	Delete(ctx context.Context, id int64) error

	AddCompetitor(ctx context.Context, id int64, input AddCompetitorInput) (*models.Competitor, error)
	RemoveCompetitor(ctx context.Context, id int64, name string) (*Status, error)
	AddSampleTeams(ctx context.Context, id int64, teams, perTeam int) (*Status, error)
	ImportRoster(ctx context.Context, id int64, r io.Reader) (*Status, error)
	ExportRoster(ctx context.Context, id int64, w io.Writer) error
	PublishRoster(ctx context.Context, id int64) (*storage.UploadResult, error)
	PublishStandings(ctx context.Context, id int64) (*storage.UploadResult, error)
	SetThreshold(ctx context.Context, id int64, threshold int) (*Status, error)

	Begin(ctx context.Context, id int64) (*Status, error)
	CurrentRound(ctx context.Context, id int64) (*models.Round, error)
	SelectWinner(ctx context.Context, id int64, index int, winner string) (*models.Round, error)
	RevertSelection(ctx context.Context, id int64, index int) (*models.Round, error)
	FinalizeRound(ctx context.Context, id int64) (*Status, error)
	StartTiebreak(ctx context.Context, id int64) (*Status, error)
	ResetScores(ctx context.Context, id int64) (*Status, error)
	Reset(ctx context.Context, id int64) (*Status, error)

	Standings(ctx context.Context, id int64, filter brackets.StandingsFilter) ([]models.Standing, error)
	TeamPoints(ctx context.Context, id int64) ([]models.TeamPoints, error)
}

// TournamentServiceDeps collects the collaborators of the tournament service.
// Cache, Observer and Exporter are optional.
type TournamentServiceDeps struct {
	Tx               TxRunner
	TournamentRepo   repositories.TournamentRepository
	CompetitorRepo   repositories.CompetitorRepository
	Cache            cache.Cache
	Rand             brackets.RandomSource
	Observer         brackets.Observer
	Exporter         *storage.Exporter
	DefaultThreshold int
	Logger           *slog.Logger
}

type tournamentService struct {
	tx               TxRunner
	tournamentRepo   repositories.TournamentRepository
	competitorRepo   repositories.CompetitorRepository
	pairingCache     cache.Cache
	rng              brackets.RandomSource
	observer         brackets.Observer
	exporter         *storage.Exporter
	defaultThreshold int
	logger           *slog.Logger
	locks            *tournamentLocks
}

func NewTournamentService(deps TournamentServiceDeps) TournamentService {
	rng := deps.Rand
	if rng == nil {
		rng = brackets.NewRandomSource(0)
	}
	threshold := deps.DefaultThreshold
	if threshold < 1 {
		threshold = models.DefaultThreshold
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		tx:               deps.Tx,
		tournamentRepo:   deps.TournamentRepo,
		competitorRepo:   deps.CompetitorRepo,
		pairingCache:     deps.Cache,
		rng:              rng,
		observer:         deps.Observer,
		exporter:         deps.Exporter,
		defaultThreshold: threshold,
		logger:           logger,
		locks:            newTournamentLocks(),
	}
}

// scopedCache is the pairing cache namespace of one tournament, nil when no
// cache is configured.
func (s *tournamentService) scopedCache(id int64) brackets.PairingCache {
	if s.pairingCache == nil {
		return nil
	}
	return cache.Namespace(s.pairingCache, cache.TournamentPrefix(id))
}

// lifecycle builds an engine whose cache writes and events are held until
// the commit.
func (s *tournamentService) lifecycle(rc *roundCache, buf *eventBuffer) *brackets.Lifecycle {
	var pc brackets.PairingCache
	if rc != nil {
		pc = rc
	}
	return brackets.NewLifecycle(s.rng, pc, buf)
}

func (s *tournamentService) load(ctx context.Context, exec repositories.SQLExecutor, id int64) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, exec, id)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	competitors, err := s.competitorRepo.ListByTournament(ctx, exec, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster of tournament %d: %w", id, err)
	}
	t.Competitors = competitors
	if err := s.attachRound(ctx, exec, t); err != nil {
		return nil, err
	}
	return t, nil
}

// read loads the tournament outside any transaction, fetching the row and the
// roster concurrently.
func (s *tournamentService) read(ctx context.Context, id int64) (*models.Tournament, error) {
	var (
		t           *models.Tournament
		competitors []*models.Competitor
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		t, err = s.tournamentRepo.GetByID(gCtx, nil, id)
		return handleRepositoryError(err)
	})
	g.Go(func() error {
		var err error
		competitors, err = s.competitorRepo.ListByTournament(gCtx, nil, id)
		if err != nil {
			return fmt.Errorf("failed to load roster of tournament %d: %w", id, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	t.Competitors = competitors
	if err := s.attachRound(ctx, nil, t); err != nil {
		return nil, err
	}
	return t, nil
}

// attachRound sets t.Round. While a round is played the pairing cache is
// tried first; on a miss the stored round is read and put into the cache.
func (s *tournamentService) attachRound(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament) error {
	if t.Status != models.StatusInProgress && t.Status != models.StatusTiebreak {
		return nil
	}
	pc := s.scopedCache(t.ID)
	key := brackets.PairingsKey(t)
	if pc != nil && t.Status == models.StatusInProgress {
		if data, ok := readEntry(pc, key, t.Revision); ok {
			var r models.Round
			if err := json.Unmarshal(data, &r); err == nil && r.Key == key && r.Number == t.RoundNumber && !r.Tiebreak {
				t.Round = &r
				return nil
			}
		}
	}

	r, err := s.tournamentRepo.GetRound(ctx, exec, t.ID)
	if err != nil {
		return handleRepositoryError(err)
	}
	t.Round = r
	if pc != nil && t.Status == models.StatusInProgress && !roundIsStale(t) {
		writeEntry(pc, t.Revision, r)
	}
	return nil
}

// mutate runs one engine transition: load, apply, persist in a single
// transaction, then publish the buffered events.
func (s *tournamentService) mutate(ctx context.Context, id int64, op string, fn func(l *brackets.Lifecycle, t *models.Tournament) error) (*models.Tournament, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	buf := &eventBuffer{}
	var (
		t  *models.Tournament
		rc *roundCache
	)
	err := s.tx(ctx, func(exec repositories.SQLExecutor) error {
		var err error
		t, err = s.load(ctx, exec, id)
		if err != nil {
			return err
		}
		if pc := s.scopedCache(id); pc != nil {
			rc = newRoundCache(pc, t.Revision)
		}
		if err := fn(s.lifecycle(rc, buf), t); err != nil {
			return err
		}
		if err := s.tournamentRepo.Update(ctx, exec, t); err != nil {
			return handleRepositoryError(err)
		}
		if err := s.competitorRepo.ReplaceAll(ctx, exec, id, t.Competitors); err != nil {
			return handleRepositoryError(err)
		}
		return nil
	})
	if err != nil {
		if !isClientError(err) {
			s.logger.ErrorContext(ctx, "tournament operation failed",
				slog.String("op", op), slog.Int64("tournament_id", id), slog.Any("error", err))
		}
		return nil, err
	}

	// t.Revision уже новая после Update
	if rc != nil {
		rc.flush(t)
	}
	buf.flush(s.observer)
	s.logger.InfoContext(ctx, "tournament updated",
		slog.String("op", op),
		slog.Int64("tournament_id", id),
		slog.String("status", string(t.Status)),
		slog.Int("round", t.RoundNumber),
		slog.Int("competitors", len(t.Competitors)),
	)
	return t, nil
}

func statusOf(t *models.Tournament) *Status {
	return &Status{
		Tournament:  t,
		ActiveCount: t.ActiveCount(),
		CanFinalize: brackets.CanFinalize(t),
		CanTiebreak: brackets.CanTiebreak(t),
		Champion:    championOf(t),
	}
}

func (s *tournamentService) mutateStatus(ctx context.Context, id int64, op string, fn func(l *brackets.Lifecycle, t *models.Tournament) error) (*Status, error) {
	t, err := s.mutate(ctx, id, op, fn)
	if err != nil {
		return nil, err
	}
	return statusOf(t), nil
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*Status, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	threshold := s.defaultThreshold
	if input.Threshold != nil {
		if *input.Threshold < 1 {
			return nil, fmt.Errorf("%w: got %d", brackets.ErrInvalidThreshold, *input.Threshold)
		}
		threshold = *input.Threshold
	}

	t := models.NewTournament(name, threshold)
	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		s.logger.ErrorContext(ctx, "failed to create tournament", slog.String("name", name), slog.Any("error", err))
		return nil, err
	}
	s.logger.InfoContext(ctx, "tournament created", slog.Int64("tournament_id", t.ID), slog.Int("threshold", t.Threshold))
	return statusOf(t), nil
}

func (s *tournamentService) Get(ctx context.Context, id int64) (*Status, error) {
	t, err := s.read(ctx, id)
	if err != nil {
		return nil, err
	}
	return statusOf(t), nil
}

func (s *tournamentService) List(ctx context.Context, input ListTournamentsInput) ([]models.Tournament, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}
	return s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{
		Status: input.Status,
		Limit:  limit,
		Offset: offset,
	})
}

// Delete removes the tournament with its roster and forgets its cached round.
func (s *tournamentService) Delete(ctx context.Context, id int64) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	t, err := s.read(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		return handleRepositoryError(err)
	}
	if pc := s.scopedCache(id); pc != nil && t.Status == models.StatusInProgress {
		pc.Delete(brackets.PairingsKey(t))
	}
	s.logger.InfoContext(ctx, "tournament deleted", slog.Int64("tournament_id", id))
	return nil
}

func (s *tournamentService) AddCompetitor(ctx context.Context, id int64, input AddCompetitorInput) (*models.Competitor, error) {
	var added *models.Competitor
	_, err := s.mutate(ctx, id, "add_competitor", func(l *brackets.Lifecycle, t *models.Tournament) error {
		c, err := l.AddCompetitor(t, input.Name, input.Team)
		if err != nil {
			return err
		}
		added = c.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (s *tournamentService) RemoveCompetitor(ctx context.Context, id int64, name string) (*Status, error) {
	return s.mutateStatus(ctx, id, "remove_competitor", func(l *brackets.Lifecycle, t *models.Tournament) error {
		return l.RemoveCompetitor(t, name)
	})
}

func (s *tournamentService) AddSampleTeams(ctx context.Context, id int64, teams, perTeam int) (*Status, error) {
	if teams < 1 || perTeam < 1 || teams*perTeam > maxSampleSize {
		return nil, fmt.Errorf("%w: %d teams of %d", ErrInvalidSampleSize, teams, perTeam)
	}
	return s.mutateStatus(ctx, id, "add_sample_teams", func(l *brackets.Lifecycle, t *models.Tournament) error {
		l.AddSampleTeams(t, teams, perTeam)
		return nil
	})
}

// ImportRoster replaces the roster with the competitors read from a CSV
// export.
func (s *tournamentService) ImportRoster(ctx context.Context, id int64, r io.Reader) (*Status, error) {
	competitors, err := rosterio.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	return s.mutateStatus(ctx, id, "import_roster", func(l *brackets.Lifecycle, t *models.Tournament) error {
		return l.ReplaceRoster(t, competitors)
	})
}

func (s *tournamentService) ExportRoster(ctx context.Context, id int64, w io.Writer) error {
	t, err := s.read(ctx, id)
	if err != nil {
		return err
	}
	return rosterio.Write(w, t.Competitors)
}

func (s *tournamentService) PublishRoster(ctx context.Context, id int64) (*storage.UploadResult, error) {
	if s.exporter == nil {
		return nil, ErrExportDisabled
	}
	t, err := s.read(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.exporter.ExportRoster(ctx, id, t.Competitors)
	if err != nil {
		s.logger.ErrorContext(ctx, "roster export failed", slog.Int64("tournament_id", id), slog.Any("error", err))
		return nil, err
	}
	s.logger.InfoContext(ctx, "roster exported", slog.Int64("tournament_id", id), slog.String("key", res.Key))
	return res, nil
}

func (s *tournamentService) PublishStandings(ctx context.Context, id int64) (*storage.UploadResult, error) {
	if s.exporter == nil {
		return nil, ErrExportDisabled
	}
	t, err := s.read(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.exporter.ExportStandings(ctx, t, brackets.Standings(t), brackets.TeamPoints(t))
	if err != nil {
		s.logger.ErrorContext(ctx, "standings export failed", slog.Int64("tournament_id", id), slog.Any("error", err))
		return nil, err
	}
	s.logger.InfoContext(ctx, "standings exported", slog.Int64("tournament_id", id), slog.String("key", res.Key))
	return res, nil
}

func (s *tournamentService) SetThreshold(ctx context.Context, id int64, threshold int) (*Status, error) {
	return s.mutateStatus(ctx, id, "set_threshold", func(l *brackets.Lifecycle, t *models.Tournament) error {
		return l.SetThreshold(t, threshold)
	})
}

func (s *tournamentService) Begin(ctx context.Context, id int64) (*Status, error) {
	return s.mutateStatus(ctx, id, "begin", func(l *brackets.Lifecycle, t *models.Tournament) error {
		return l.Begin(t)
	})
}

// CurrentRound returns the round on the board. A round that no longer matches
// the stored roster is rebuilt and saved first.
func (s *tournamentService) CurrentRound(ctx context.Context, id int64) (*models.Round, error) {
	t, err := s.read(ctx, id)
	if err != nil {
		return nil, err
	}
	if !roundIsStale(t) {
		return t.Round, nil
	}
	t, err = s.mutate(ctx, id, "refresh_round", func(l *brackets.Lifecycle, t *models.Tournament) error {
		l.CurrentRound(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t.Round, nil
}

func roundIsStale(t *models.Tournament) bool {
	if t.Status != models.StatusInProgress {
		return false
	}
	r := t.Round
	return r == nil || r.Tiebreak || r.Number != t.RoundNumber || r.Key != brackets.PairingsKey(t)
}

func (s *tournamentService) SelectWinner(ctx context.Context, id int64, index int, winner string) (*models.Round, error) {
	t, err := s.mutate(ctx, id, "select_winner", func(l *brackets.Lifecycle, t *models.Tournament) error {
		return l.SelectWinner(t, index, winner)
	})
	if err != nil {
		return nil, err
	}
	return t.Round, nil
}

func (s *tournamentService) RevertSelection(ctx context.Context, id int64, index int) (*models.Round, error) {
	t, err := s.mutate(ctx, id, "revert_selection", func(l *brackets.Lifecycle, t *models.Tournament) error {
		return l.RevertSelection(t, index)
	})
	if err != nil {
		return nil, err
	}
	return t.Round, nil
}

func (s *tournamentService) FinalizeRound(ctx context.Context, id int64) (*Status, error) {
	return s.mutateStatus(ctx, id, "finalize_round", func(l *brackets.Lifecycle, t *models.Tournament) error {
		return l.FinalizeRound(t)
	})
}

func (s *tournamentService) StartTiebreak(ctx context.Context, id int64) (*Status, error) {
	return s.mutateStatus(ctx, id, "start_tiebreak", func(l *brackets.Lifecycle, t *models.Tournament) error {
		return l.StartTiebreak(t)
	})
}

func (s *tournamentService) ResetScores(ctx context.Context, id int64) (*Status, error) {
	return s.mutateStatus(ctx, id, "reset_scores", func(l *brackets.Lifecycle, t *models.Tournament) error {
		l.ResetScores(t)
		return nil
	})
}

func (s *tournamentService) Reset(ctx context.Context, id int64) (*Status, error) {
	return s.mutateStatus(ctx, id, "reset", func(l *brackets.Lifecycle, t *models.Tournament) error {
		l.Reset(t)
		return nil
	})
}

func (s *tournamentService) Standings(ctx context.Context, id int64, filter brackets.StandingsFilter) ([]models.Standing, error) {
	t, err := s.read(ctx, id)
	if err != nil {
		return nil, err
	}
	return brackets.FilterStandings(brackets.Standings(t), filter), nil
}

func (s *tournamentService) TeamPoints(ctx context.Context, id int64) ([]models.TeamPoints, error) {
	t, err := s.read(ctx, id)
	if err != nil {
		return nil, err
	}
	return brackets.TeamPoints(t), nil
}
