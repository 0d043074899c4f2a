package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/llyli-app/llyli-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedWord inserts a never-reviewed word for the user and returns it.
// Use SeedWordState for words with review history.
func SeedWord(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Word {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	w := domain.Word{
		ID:             uuid.New(),
		UserID:         userID,
		OriginalText:   "word-" + uniqueSuffix(),
		Translation:    "translation-" + uniqueSuffix(),
		Language:       "pt",
		Category:       "general",
		Stability:      1.0,
		Difficulty:     5.0,
		Retrievability: 1.0,
		NextReviewDate: now,
		MasteryStatus:  domain.MasteryLearning,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	insertWord(t, pool, w)
	return w
}

// SeedWordState inserts a word with an explicit memory state, for tests
// that need reviewed, due, or lapsed words. Zero-value fields that the
// schema requires are filled with defaults.
func SeedWordState(t *testing.T, pool *pgxpool.Pool, w domain.Word) domain.Word {
	t.Helper()

	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	if w.UpdatedAt.IsZero() {
		w.UpdatedAt = now
	}
	if w.OriginalText == "" {
		w.OriginalText = "word-" + uniqueSuffix()
	}
	if w.MasteryStatus == "" {
		w.MasteryStatus = domain.MasteryLearning
	}
	insertWord(t, pool, w)
	return w
}

func insertWord(t *testing.T, pool *pgxpool.Pool, w domain.Word) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO words (id, user_id, original_text, translation, language, category, audio_url,
		                    stability, difficulty, retrievability, next_review_date, last_review_date,
		                    review_count, lapse_count, consecutive_correct_sessions, last_correct_session_id,
		                    mastery_status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		w.ID, w.UserID, w.OriginalText, w.Translation, w.Language, w.Category, w.AudioURL,
		w.Stability, w.Difficulty, w.Retrievability, w.NextReviewDate, w.LastReviewDate,
		w.ReviewCount, w.LapseCount, w.ConsecutiveCorrectSessions, w.LastCorrectSessionID,
		string(w.MasteryStatus), w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: insert word: %v", err)
	}
}

// SeedSession inserts an open review session started at the given time.
func SeedSession(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, startedAt time.Time) domain.ReviewSession {
	t.Helper()

	s := domain.ReviewSession{
		ID:        uuid.New(),
		UserID:    userID,
		StartedAt: startedAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO review_sessions (id, user_id, started_at) VALUES ($1, $2, $3)`,
		s.ID, s.UserID, s.StartedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: insert session: %v", err)
	}

	return s
}
