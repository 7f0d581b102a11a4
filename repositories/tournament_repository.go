package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-pairing/models"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrCorruptRound       = errors.New("stored round is not valid json")
)

type ListTournamentsFilter struct {
	Status *models.TournamentStatus
	Limit  int
	Offset int
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id int64) (*models.Tournament, error)
	// GetRound reads the stored round; nil when none is being played.
	GetRound(ctx context.Context, exec SQLExecutor, id int64) (*models.Round, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	// Update persists the mutable tournament state: status, round number,
	// threshold, tiebreak flag and the round being played. It bumps Revision.
	Update(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	Delete(ctx context.Context, id int64) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// current_round is read separately through GetRound.
const tournamentColumns = `id, name, status, round_number, threshold, tiebreak_resolved, revision, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTournament(row rowScanner) (*models.Tournament, error) {
	t := &models.Tournament{}
	if err := row.Scan(
		&t.ID, &t.Name, &t.Status, &t.RoundNumber, &t.Threshold, &t.TiebreakResolved,
		&t.Revision, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeRound(id int64, data []byte) (*models.Round, error) {
	if len(data) == 0 {
		return nil, nil
	}
	round := &models.Round{}
	if err := json.Unmarshal(data, round); err != nil {
		return nil, fmt.Errorf("%w: tournament %d: %v", ErrCorruptRound, id, err)
	}
	return round, nil
}

func encodeRound(round *models.Round) (interface{}, error) {
	if round == nil {
		return nil, nil
	}
	data, err := json.Marshal(round)
	if err != nil {
		return nil, fmt.Errorf("failed to encode current round: %w", err)
	}
	return data, nil
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	executor := r.getExecutor(nil)
	query := `
		INSERT INTO tournaments (name, status, round_number, threshold, tiebreak_resolved)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, revision, created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		t.Name, t.Status, t.RoundNumber, t.Threshold, t.TiebreakResolved,
	).Scan(&t.ID, &t.Revision, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

// GetByID loads the tournament row without its roster. Passing a transaction
// locks the row until the transaction ends.
func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int64) (*models.Tournament, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`
	if _, inTx := executor.(*sql.Tx); inTx {
		query += ` FOR UPDATE`
	}

	t, err := scanTournament(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) GetRound(ctx context.Context, exec SQLExecutor, id int64) (*models.Round, error) {
	executor := r.getExecutor(exec)
	var data []byte
	err := executor.QueryRowContext(ctx, `SELECT current_round FROM tournaments WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load round of tournament %d: %w", id, err)
	}
	return decodeRound(id, data)
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	executor := r.getExecutor(nil)
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, *filter.Status)
		argID++
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		t, scanErr := scanTournament(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	executor := r.getExecutor(exec)
	round, err := encodeRound(t.Round)
	if err != nil {
		return err
	}

	query := `
		UPDATE tournaments SET
			status = $1,
			round_number = $2,
			threshold = $3,
			tiebreak_resolved = $4,
			current_round = $5,
			revision = revision + 1,
			updated_at = NOW()
		WHERE id = $6
		RETURNING revision, updated_at`

	err = executor.QueryRowContext(ctx, query,
		t.Status, t.RoundNumber, t.Threshold, t.TiebreakResolved, round, t.ID,
	).Scan(&t.Revision, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to update tournament %d: %w", t.ID, err)
	}
	return nil
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int64) error {
	executor := r.getExecutor(nil)
	result, err := executor.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
