package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/llyli-app/llyli-backend/internal/domain"
	"github.com/llyli-app/llyli-backend/pkg/ctxutil"
)

func TestService_SubmitReview_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	sessionID := uuid.New()
	now := time.Now()

	word := reviewedWord(now)
	word.UserID = userID

	var appliedPatch domain.ReviewPatch
	words := &wordRepoMock{
		GetByIDFunc: func(ctx context.Context, uid, wordID uuid.UUID) (*domain.Word, error) {
			if wordID != word.ID {
				t.Errorf("unexpected word id: %v", wordID)
			}
			w := word
			return &w, nil
		},
		ApplyReviewFunc: func(ctx context.Context, uid, wordID uuid.UUID, patch domain.ReviewPatch) (*domain.Word, error) {
			appliedPatch = patch
			updated := patch.Apply(word)
			return &updated, nil
		},
	}

	var countedReviewed, countedCorrect int
	sessions := &sessionRepoMock{
		AddCountsFunc: func(ctx context.Context, sid uuid.UUID, reviewed, correct int) error {
			if sid != sessionID {
				t.Errorf("unexpected session id: %v", sid)
			}
			countedReviewed, countedCorrect = reviewed, correct
			return nil
		},
	}

	svc := newTestService(t, words, sessions)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	got, err := svc.SubmitReview(ctx, SubmitReviewInput{
		WordID:    word.ID,
		Rating:    domain.RatingGood,
		SessionID: sessionID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if words.applyReviewCalls != 1 {
		t.Errorf("apply review calls: got %d, want 1", words.applyReviewCalls)
	}
	if countedReviewed != 1 || countedCorrect != 1 {
		t.Errorf("session counters: got %d/%d, want 1/1", countedReviewed, countedCorrect)
	}
	if appliedPatch.ReviewCount != word.ReviewCount+1 {
		t.Errorf("patch review count: got %d, want %d", appliedPatch.ReviewCount, word.ReviewCount+1)
	}
	if got.NextReviewText == "" {
		t.Error("next review text must be set")
	}
	if got.MasteryAchieved {
		t.Error("one correct session must not achieve mastery")
	}
}

func TestService_SubmitReview_IncorrectNotCounted(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Now()
	word := reviewedWord(now)

	words := &wordRepoMock{
		GetByIDFunc: func(ctx context.Context, uid, wordID uuid.UUID) (*domain.Word, error) {
			w := word
			return &w, nil
		},
		ApplyReviewFunc: func(ctx context.Context, uid, wordID uuid.UUID, patch domain.ReviewPatch) (*domain.Word, error) {
			updated := patch.Apply(word)
			return &updated, nil
		},
	}

	var countedCorrect int
	sessions := &sessionRepoMock{
		AddCountsFunc: func(ctx context.Context, sid uuid.UUID, reviewed, correct int) error {
			countedCorrect = correct
			return nil
		},
	}

	svc := newTestService(t, words, sessions)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	_, err := svc.SubmitReview(ctx, SubmitReviewInput{
		WordID:    word.ID,
		Rating:    domain.RatingAgain,
		SessionID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if countedCorrect != 0 {
		t.Errorf("Again must not count as correct, got %d", countedCorrect)
	}
}

func TestService_SubmitReview_WordNotFound(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{
		GetByIDFunc: func(ctx context.Context, uid, wordID uuid.UUID) (*domain.Word, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := newTestService(t, words, &sessionRepoMock{})
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	_, err := svc.SubmitReview(ctx, SubmitReviewInput{
		WordID:    uuid.New(),
		Rating:    domain.RatingGood,
		SessionID: uuid.New(),
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error: got %v, want ErrNotFound", err)
	}
}

func TestService_SubmitReview_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &wordRepoMock{}, &sessionRepoMock{})
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	_, err := svc.SubmitReview(ctx, SubmitReviewInput{
		WordID:    uuid.Nil,
		Rating:    domain.Rating(9),
		SessionID: uuid.Nil,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error: got %v, want ErrValidation", err)
	}
}

func TestService_SubmitBatch_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	sessionID := uuid.New()
	now := time.Now()

	w1 := reviewedWord(now)
	w2 := reviewedWord(now)
	batch := []domain.Word{w1, w2}

	words := &wordRepoMock{
		GetByIDsForUpdateFunc: func(ctx context.Context, uid uuid.UUID, wordIDs []uuid.UUID) ([]domain.Word, error) {
			if len(wordIDs) != 2 {
				t.Errorf("requested ids: got %d, want 2", len(wordIDs))
			}
			return batch, nil
		},
		ApplyReviewFunc: func(ctx context.Context, uid, wordID uuid.UUID, patch domain.ReviewPatch) (*domain.Word, error) {
			for _, w := range batch {
				if w.ID == wordID {
					updated := patch.Apply(w)
					return &updated, nil
				}
			}
			return nil, domain.ErrNotFound
		},
	}

	var countedReviewed, countedCorrect, addCalls int
	sessions := &sessionRepoMock{
		AddCountsFunc: func(ctx context.Context, sid uuid.UUID, reviewed, correct int) error {
			addCalls++
			countedReviewed, countedCorrect = reviewed, correct
			return nil
		},
	}

	svc := newTestService(t, words, sessions)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	got, err := svc.SubmitBatch(ctx, SubmitBatchInput{
		WordIDs:   []uuid.UUID{w1.ID, w2.ID},
		Rating:    domain.RatingGood,
		SessionID: sessionID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Words) != 2 {
		t.Errorf("updated words: got %d, want 2", len(got.Words))
	}
	// The session counters are updated once for the whole batch.
	if addCalls != 1 {
		t.Errorf("AddCounts calls: got %d, want 1", addCalls)
	}
	if countedReviewed != 2 || countedCorrect != 2 {
		t.Errorf("session counters: got %d/%d, want 2/2", countedReviewed, countedCorrect)
	}
	if len(got.NextReviewTexts) != 2 {
		t.Errorf("next review texts: got %d, want 2", len(got.NextReviewTexts))
	}
}

func TestService_SubmitBatch_MasteryCount(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Now()

	// Two correct sessions behind it: this review crosses the threshold.
	crossing := reviewedWord(now)
	crossing.ConsecutiveCorrectSessions = 2
	old := uuid.New()
	crossing.LastCorrectSessionID = &old
	crossing.MasteryStatus = domain.MasteryLearned

	fresh := reviewedWord(now)

	batch := []domain.Word{crossing, fresh}
	words := &wordRepoMock{
		GetByIDsForUpdateFunc: func(ctx context.Context, uid uuid.UUID, wordIDs []uuid.UUID) ([]domain.Word, error) {
			return batch, nil
		},
		ApplyReviewFunc: func(ctx context.Context, uid, wordID uuid.UUID, patch domain.ReviewPatch) (*domain.Word, error) {
			for _, w := range batch {
				if w.ID == wordID {
					updated := patch.Apply(w)
					return &updated, nil
				}
			}
			return nil, domain.ErrNotFound
		},
	}
	sessions := &sessionRepoMock{
		AddCountsFunc: func(ctx context.Context, sid uuid.UUID, reviewed, correct int) error {
			return nil
		},
	}

	svc := newTestService(t, words, sessions)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	got, err := svc.SubmitBatch(ctx, SubmitBatchInput{
		WordIDs:   []uuid.UUID{crossing.ID, fresh.ID},
		Rating:    domain.RatingGood,
		SessionID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.MasteryCount != 1 {
		t.Errorf("mastery count: got %d, want 1", got.MasteryCount)
	}
}

func TestService_SubmitBatch_TooManyWords(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &wordRepoMock{}, &sessionRepoMock{})
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	ids := make([]uuid.UUID, 11)
	for i := range ids {
		ids[i] = uuid.New()
	}

	_, err := svc.SubmitBatch(ctx, SubmitBatchInput{
		WordIDs:   ids,
		Rating:    domain.RatingGood,
		SessionID: uuid.New(),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error: got %v, want ErrValidation", err)
	}
}

func TestService_SubmitBatch_MissingWordFailsWholeBatch(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Now()
	w1 := reviewedWord(now)

	words := &wordRepoMock{
		GetByIDsForUpdateFunc: func(ctx context.Context, uid uuid.UUID, wordIDs []uuid.UUID) ([]domain.Word, error) {
			// Only one of the two requested words exists.
			return []domain.Word{w1}, nil
		},
	}

	svc := newTestService(t, words, &sessionRepoMock{})
	ctx := ctxutil.WithUserID(context.Background(), userID)

	_, err := svc.SubmitBatch(ctx, SubmitBatchInput{
		WordIDs:   []uuid.UUID{w1.ID, uuid.New()},
		Rating:    domain.RatingGood,
		SessionID: uuid.New(),
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error: got %v, want ErrNotFound", err)
	}
	if words.applyReviewCalls != 0 {
		t.Errorf("no review should be applied, got %d", words.applyReviewCalls)
	}
}
