package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/Dosada05/tournament-pairing/brackets"
	"github.com/Dosada05/tournament-pairing/models"
	"github.com/Dosada05/tournament-pairing/repositories"
)

// TxRunner runs fn inside one database transaction. fn receives the executor
// every repository call of the unit of work must use.
type TxRunner func(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error

// NewSQLTxRunner commits when fn succeeds and rolls back on error or panic.
func NewSQLTxRunner(db *sql.DB) TxRunner {
	return func(ctx context.Context, fn func(exec repositories.SQLExecutor) error) (txErr error) {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer func() {
			if p := recover(); p != nil {
				_ = tx.Rollback()
				panic(p)
			} else if txErr != nil {
				if rbErr := tx.Rollback(); rbErr != nil {
					txErr = fmt.Errorf("transaction processing error: %w (rollback also failed: %v)", txErr, rbErr)
				}
			} else if cErr := tx.Commit(); cErr != nil {
				txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
			}
		}()
		return fn(tx)
	}
}

// handleRepositoryError переводит ошибки репозиториев в ошибки сервиса.
func handleRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrCompetitorConflict):
		return fmt.Errorf("%w: %v", ErrCompetitorConflict, err)
	}
	return err
}

// isClientError reports whether err was caused by the request rather than
// by the infrastructure.
func isClientError(err error) bool {
	for _, target := range []error{
		ErrTournamentNotFound, ErrValidationFailed, ErrTournamentNameRequired, ErrInvalidSampleSize,
		ErrCompetitorConflict, ErrExportDisabled,
		brackets.ErrInvalidStart, brackets.ErrDuplicateCompetitor, brackets.ErrUnknownCompetitor,
		brackets.ErrIncompleteRound, brackets.ErrInvalidWinner, brackets.ErrTiebreakUnavailable,
		brackets.ErrInvalidState, brackets.ErrPairingNotFound, brackets.ErrByeNotSelectable,
		brackets.ErrAlreadySelected, brackets.ErrNothingToRevert, brackets.ErrInvalidThreshold,
		brackets.ErrInvalidName, brackets.ErrRoundStalled,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// tournamentLocks serializes operations on the same tournament. Entries are
// dropped once nobody holds or waits for them.
type tournamentLocks struct {
	mu    sync.Mutex
	locks map[int64]*tournamentLock
}

type tournamentLock struct {
	sync.Mutex
	refs int
}

func newTournamentLocks() *tournamentLocks {
	return &tournamentLocks{locks: make(map[int64]*tournamentLock)}
}

func (l *tournamentLocks) Lock(id int64) (unlock func()) {
	l.mu.Lock()
	lk, ok := l.locks[id]
	if !ok {
		lk = &tournamentLock{}
		l.locks[id] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.Lock()
	return func() {
		lk.Unlock()
		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *tournamentLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// eventBuffer holds engine events until the transition is committed.
type eventBuffer struct {
	events []brackets.Event
}

func (b *eventBuffer) Notify(e brackets.Event) {
	b.events = append(b.events, e)
}

func (b *eventBuffer) flush(o brackets.Observer) {
	if o == nil {
		return
	}
	for _, e := range b.events {
		o.Notify(e)
	}
	b.events = nil
}

func championOf(t *models.Tournament) string {
	if t.Status != models.StatusFinished && t.Status != models.StatusTiebreak {
		return ""
	}
	for _, c := range t.Competitors {
		if c.Place != nil && *c.Place == 1 {
			return c.Name
		}
	}
	return ""
}
