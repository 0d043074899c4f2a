// Package word implements the Word repository using PostgreSQL.
// Static queries use raw SQL constants; the filtered listing is built
// dynamically with squirrel.
package word

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/llyli-app/llyli-backend/internal/adapter/postgres"
	"github.com/llyli-app/llyli-backend/internal/domain"
)

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new word repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const wordColumns = `id, user_id, original_text, translation, language, category, audio_url,
       stability, difficulty, retrievability, next_review_date, last_review_date,
       review_count, lapse_count, consecutive_correct_sessions, last_correct_session_id,
       mastery_status, created_at, updated_at`

const createSQL = `
INSERT INTO words (id, user_id, original_text, translation, language, category, audio_url,
                   stability, difficulty, retrievability, next_review_date,
                   mastery_status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
RETURNING ` + wordColumns

const getByIDSQL = `
SELECT ` + wordColumns + `
FROM words
WHERE id = $1 AND user_id = $2`

const getByIDsForUpdateSQL = `
SELECT ` + wordColumns + `
FROM words
WHERE user_id = $1 AND id = ANY($2::uuid[])
ORDER BY id
FOR UPDATE`

// A word is due when it was never reviewed, its scheduled date has passed,
// or its live retrievability dropped below the requested retention.
// pow() yields NULL for never-reviewed rows (last_review_date IS NULL),
// which the first disjunct absorbs.
const getDueWordsSQL = `
SELECT ` + wordColumns + `
FROM words
WHERE user_id = $1
  AND (
    review_count = 0
    OR next_review_date <= $2
    OR pow(1 + GREATEST(EXTRACT(EPOCH FROM ($2::timestamptz - last_review_date)) / 86400.0, 0)
               / (9 * stability), -1) < $3
  )
ORDER BY next_review_date ASC`

const applyReviewSQL = `
UPDATE words
SET stability = $3,
    difficulty = $4,
    retrievability = $5,
    next_review_date = $6,
    last_review_date = $7,
    review_count = $8,
    lapse_count = $9,
    consecutive_correct_sessions = $10,
    last_correct_session_id = CASE
        WHEN $11 THEN NULL
        WHEN $12::uuid IS NOT NULL THEN $12::uuid
        ELSE last_correct_session_id
    END,
    mastery_status = $13,
    updated_at = $7
WHERE id = $1 AND user_id = $2
RETURNING ` + wordColumns

const deleteSQL = `
DELETE FROM words WHERE id = $1 AND user_id = $2`

const countStatsSQL = `
SELECT count(*),
       count(*) FILTER (WHERE mastery_status = 'ready_to_use'),
       count(*) FILTER (WHERE mastery_status = 'learning'),
       count(*) FILTER (WHERE review_count = 0),
       count(*) FILTER (WHERE review_count > 0 AND next_review_date <= $2),
       count(*) FILTER (WHERE lapse_count >= 3)
FROM words
WHERE user_id = $1`

const categoriesSQL = `
SELECT DISTINCT category
FROM words
WHERE user_id = $1 AND category <> ''
ORDER BY category`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a word by primary key filtered by user_id.
// Returns domain.ErrNotFound if the word does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, wordID uuid.UUID) (*domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, wordID, userID)

	w, err := scanWord(row)
	if err != nil {
		return nil, mapError(err, "word", wordID)
	}

	return w, nil
}

// GetByIDsForUpdate returns words by IDs with row locks held for the
// duration of the enclosing transaction. Rows are locked in id order so
// concurrent batches cannot deadlock. Missing IDs are silently absent
// from the result; the caller compares lengths.
func (r *Repo) GetByIDsForUpdate(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) ([]domain.Word, error) {
	if len(wordIDs) == 0 {
		return []domain.Word{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByIDsForUpdateSQL, userID, wordIDs)
	if err != nil {
		return nil, fmt.Errorf("get words for update: %w", err)
	}
	defer rows.Close()

	words, err := scanWords(rows)
	if err != nil {
		return nil, fmt.Errorf("get words for update: %w", err)
	}

	return words, nil
}

// GetDueWords returns words that need review at the given time, ordered by
// next_review_date ascending. Retrievability is computed live from the
// stored FSRS state rather than read from the cached column.
func (r *Repo) GetDueWords(ctx context.Context, userID uuid.UUID, now time.Time, retention float64) ([]domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getDueWordsSQL, userID, now, retention)
	if err != nil {
		return nil, fmt.Errorf("get due words: %w", err)
	}
	defer rows.Close()

	words, err := scanWords(rows)
	if err != nil {
		return nil, fmt.Errorf("get due words: %w", err)
	}

	return words, nil
}

// Find returns words matching the filter plus the total count before
// limit/offset. Category and mastery are exact matches; search is a
// case-insensitive substring over original text and translation.
func (r *Repo) Find(ctx context.Context, userID uuid.UUID, filter domain.WordFilter) ([]domain.Word, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	pred := squirrel.And{squirrel.Eq{"user_id": userID}}
	if filter.Category != "" {
		pred = append(pred, squirrel.Eq{"category": filter.Category})
	}
	if filter.MasteryStatus != "" {
		pred = append(pred, squirrel.Eq{"mastery_status": string(filter.MasteryStatus)})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		pred = append(pred, squirrel.Or{
			squirrel.ILike{"original_text": pattern},
			squirrel.ILike{"translation": pattern},
		})
	}

	countSQL, countArgs, err := psql.Select("count(*)").From("words").Where(pred).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count words: %w", err)
	}

	listBuilder := psql.Select(wordColumns).
		From("words").
		Where(pred).
		OrderBy("created_at DESC")
	if filter.Limit > 0 {
		listBuilder = listBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		listBuilder = listBuilder.Offset(uint64(filter.Offset))
	}

	listSQL, listArgs, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("find words: %w", err)
	}
	defer rows.Close()

	words, err := scanWords(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("find words: %w", err)
	}

	return words, total, nil
}

// CountStats returns aggregate collection counters in a single query.
// DueToday is derived by the service from NewAvailable and ReviewDue.
func (r *Repo) CountStats(ctx context.Context, userID uuid.UUID, now time.Time) (domain.WordStats, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var stats domain.WordStats
	err := querier.QueryRow(ctx, countStatsSQL, userID, now).Scan(
		&stats.TotalWords,
		&stats.MasteredCount,
		&stats.LearningCount,
		&stats.NewAvailable,
		&stats.ReviewDue,
		&stats.NeedsAttention,
	)
	if err != nil {
		return domain.WordStats{}, fmt.Errorf("count word stats: %w", err)
	}

	return stats, nil
}

// Categories returns the distinct non-empty categories in a user's collection.
func (r *Repo) Categories(ctx context.Context, userID uuid.UUID) ([]string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, categoriesSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	if categories == nil {
		categories = []string{}
	}

	return categories, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new word and returns the persisted domain.Word.
// A duplicate (user_id, original_text) results in domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, word *domain.Word) (*domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, createSQL,
		word.ID,
		word.UserID,
		word.OriginalText,
		word.Translation,
		word.Language,
		word.Category,
		word.AudioURL,
		word.Stability,
		word.Difficulty,
		word.Retrievability,
		word.NextReviewDate.UTC().Truncate(time.Microsecond),
		string(word.MasteryStatus),
		now,
	)

	created, err := scanWord(row)
	if err != nil {
		return nil, mapError(err, "word", word.ID)
	}

	return created, nil
}

// ApplyReview merges a scheduler patch into the stored word and returns the
// updated row. last_correct_session_id follows the patch's three-way
// semantics: clear, set, or leave unchanged.
// Returns domain.ErrNotFound if the word does not exist or belongs to another user.
func (r *Repo) ApplyReview(ctx context.Context, userID, wordID uuid.UUID, patch domain.ReviewPatch) (*domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, applyReviewSQL,
		wordID,
		userID,
		patch.Stability,
		patch.Difficulty,
		patch.Retrievability,
		patch.NextReviewDate.UTC().Truncate(time.Microsecond),
		patch.LastReviewDate.UTC().Truncate(time.Microsecond),
		patch.ReviewCount,
		patch.LapseCount,
		patch.ConsecutiveCorrectSessions,
		patch.ClearLastCorrectSession,
		patch.LastCorrectSessionID,
		string(patch.MasteryStatus),
	)

	updated, err := scanWord(row)
	if err != nil {
		return nil, mapError(err, "word", wordID)
	}

	return updated, nil
}

// Delete removes a word by ID.
// Returns domain.ErrNotFound if the word does not exist or belongs to another user.
func (r *Repo) Delete(ctx context.Context, userID, wordID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, deleteSQL, wordID, userID)
	if err != nil {
		return mapError(err, "word", wordID)
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("word %s: %w", wordID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanWord scans a single word row from pgx.Row.
func scanWord(row pgx.Row) (*domain.Word, error) {
	var w domain.Word
	var status string

	if err := row.Scan(
		&w.ID, &w.UserID, &w.OriginalText, &w.Translation, &w.Language, &w.Category, &w.AudioURL,
		&w.Stability, &w.Difficulty, &w.Retrievability, &w.NextReviewDate, &w.LastReviewDate,
		&w.ReviewCount, &w.LapseCount, &w.ConsecutiveCorrectSessions, &w.LastCorrectSessionID,
		&status, &w.CreatedAt, &w.UpdatedAt,
	); err != nil {
		return nil, err
	}

	w.MasteryStatus = domain.MasteryStatus(status)

	return &w, nil
}

// scanWords scans multiple rows into a domain.Word slice.
func scanWords(rows pgx.Rows) ([]domain.Word, error) {
	var words []domain.Word
	for rows.Next() {
		var w domain.Word
		var status string

		if err := rows.Scan(
			&w.ID, &w.UserID, &w.OriginalText, &w.Translation, &w.Language, &w.Category, &w.AudioURL,
			&w.Stability, &w.Difficulty, &w.Retrievability, &w.NextReviewDate, &w.LastReviewDate,
			&w.ReviewCount, &w.LapseCount, &w.ConsecutiveCorrectSessions, &w.LastCorrectSessionID,
			&status, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, err
		}

		w.MasteryStatus = domain.MasteryStatus(status)
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if words == nil {
		words = []domain.Word{}
	}

	return words, nil
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
