// Package session implements the ReviewSession repository using PostgreSQL.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/llyli-app/llyli-backend/internal/adapter/postgres"
	"github.com/llyli-app/llyli-backend/internal/domain"
)

// Repo provides review session persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const sessionColumns = `id, user_id, started_at, ended_at, words_reviewed, correct_count`

const createSQL = `
INSERT INTO review_sessions (id, user_id, started_at)
VALUES ($1, $2, $3)
RETURNING ` + sessionColumns

const getByIDSQL = `
SELECT ` + sessionColumns + `
FROM review_sessions
WHERE id = $1 AND user_id = $2`

const getActiveSQL = `
SELECT ` + sessionColumns + `
FROM review_sessions
WHERE user_id = $1 AND ended_at IS NULL
ORDER BY started_at DESC
LIMIT 1`

const addCountsSQL = `
UPDATE review_sessions
SET words_reviewed = words_reviewed + $2,
    correct_count = correct_count + $3
WHERE id = $1 AND ended_at IS NULL`

const endSQL = `
UPDATE review_sessions
SET ended_at = $3
WHERE id = $1 AND user_id = $2 AND ended_at IS NULL
RETURNING ` + sessionColumns

const closeStaleSQL = `
UPDATE review_sessions
SET ended_at = started_at
WHERE ended_at IS NULL AND started_at < $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a session by primary key filtered by user_id.
// Returns domain.ErrNotFound if the session does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.ReviewSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, sessionID, userID)

	session, err := scanSession(row)
	if err != nil {
		return nil, mapError(err, "session", sessionID)
	}

	return session, nil
}

// GetActive returns the newest open session for a user.
// Returns domain.ErrNotFound if no open session exists.
func (r *Repo) GetActive(ctx context.Context, userID uuid.UUID) (*domain.ReviewSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getActiveSQL, userID)

	session, err := scanSession(row)
	if err != nil {
		return nil, mapError(err, "session", uuid.Nil)
	}

	return session, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new review session and returns the persisted domain.ReviewSession.
func (r *Repo) Create(ctx context.Context, session *domain.ReviewSession) (*domain.ReviewSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	startedAt := session.StartedAt.UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, createSQL, session.ID, session.UserID, startedAt)

	created, err := scanSession(row)
	if err != nil {
		return nil, mapError(err, "session", session.ID)
	}

	return created, nil
}

// AddCounts increments the session counters by the size of a submitted
// batch in one statement, so concurrent submissions never lose updates.
// Only open sessions are counted; a missing or closed session returns
// domain.ErrNotFound.
func (r *Repo) AddCounts(ctx context.Context, sessionID uuid.UUID, reviewed, correct int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, addCountsSQL, sessionID, reviewed, correct)
	if err != nil {
		return mapError(err, "session", sessionID)
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}

	return nil
}

// End closes an open session by stamping ended_at.
// Returns domain.ErrNotFound if the session does not exist, belongs to
// another user, or is already closed.
func (r *Repo) End(ctx context.Context, userID, sessionID uuid.UUID, endedAt time.Time) (*domain.ReviewSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, endSQL, sessionID, userID, endedAt.UTC().Truncate(time.Microsecond))

	ended, err := scanSession(row)
	if err != nil {
		return nil, mapError(err, "session", sessionID)
	}

	return ended, nil
}

// CloseStale closes every open session started before the cutoff, across
// all users, and returns how many were closed. Stale sessions get
// ended_at = started_at since the true end time is unknown.
func (r *Repo) CloseStale(ctx context.Context, before time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, closeStaleSQL, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("close stale sessions: %w", err)
	}

	return int(ct.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanSession scans a single session row from pgx.Row.
func scanSession(row pgx.Row) (*domain.ReviewSession, error) {
	var s domain.ReviewSession

	if err := row.Scan(&s.ID, &s.UserID, &s.StartedAt, &s.EndedAt, &s.WordsReviewed, &s.CorrectCount); err != nil {
		return nil, err
	}

	return &s, nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
