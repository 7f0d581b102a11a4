package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Dosada05/tournament-pairing/models"
)

var ErrCompetitorConflict = errors.New("competitor name already used in this tournament")

type CompetitorRepository interface {
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int64) ([]*models.Competitor, error)
	// ReplaceAll rewrites the whole roster, preserving slice order.
	ReplaceAll(ctx context.Context, exec SQLExecutor, tournamentID int64, competitors []*models.Competitor) error
}

type postgresCompetitorRepository struct {
	db *sql.DB
}

func NewPostgresCompetitorRepository(db *sql.DB) CompetitorRepository {
	return &postgresCompetitorRepository{db: db}
}

func (r *postgresCompetitorRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresCompetitorRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int64) ([]*models.Competitor, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT name, team, wins, losses, place
		FROM competitors
		WHERE tournament_id = $1
		ORDER BY position`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitors for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	competitors := make([]*models.Competitor, 0)
	for rows.Next() {
		var c models.Competitor
		var place sql.NullInt64
		if err := rows.Scan(&c.Name, &c.Team, &c.Wins, &c.Losses, &place); err != nil {
			return nil, fmt.Errorf("failed to scan competitor: %w", err)
		}
		if place.Valid {
			c.Place = models.IntPtr(int(place.Int64))
		}
		competitors = append(competitors, &c)
	}
	return competitors, rows.Err()
}

func (r *postgresCompetitorRepository) ReplaceAll(ctx context.Context, exec SQLExecutor, tournamentID int64, competitors []*models.Competitor) (err error) {
	executor := r.getExecutor(exec)

	tx, isExternalTx := executor.(*sql.Tx)
	if !isExternalTx {
		tx, err = r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("ReplaceAll failed to begin transaction: %w", err)
		}
		defer func() {
			if p := recover(); p != nil {
				tx.Rollback()
				panic(p)
			} else if err != nil {
				tx.Rollback()
			} else {
				err = tx.Commit()
			}
		}()
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM competitors WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("ReplaceAll failed to clear roster: %w", err)
	}
	if len(competitors) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO competitors (tournament_id, position, name, team, wins, losses, place)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		return fmt.Errorf("ReplaceAll failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, c := range competitors {
		var place interface{}
		if c.Place != nil {
			place = *c.Place
		}
		if _, err = stmt.ExecContext(ctx, tournamentID, i, c.Name, c.Team, c.Wins, c.Losses, place); err != nil {
			return handleCompetitorError(err, c.Name)
		}
	}
	return nil
}

func handleCompetitorError(err error, name string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrCompetitorConflict, name)
	}
	return fmt.Errorf("failed to insert competitor %s: %w", name, err)
}
