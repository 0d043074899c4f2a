package review

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/llyli-app/llyli-backend/internal/domain"
	"github.com/llyli-app/llyli-backend/pkg/ctxutil"
)

// SubmitReview records one rating for one word, updates its schedule and the
// session counters in a single transaction.
func (s *Service) SubmitReview(ctx context.Context, input SubmitReviewInput) (*ReviewResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()

	word, err := s.words.GetByID(ctx, userID, input.WordID)
	if err != nil {
		return nil, fmt.Errorf("get word: %w", err)
	}

	wasLearning := word.MasteryStatus != domain.MasteryReadyToUse

	var patch domain.ReviewPatch
	s.withRNG(func(rng *rand.Rand) {
		patch, err = ProcessReview(s.cfg.FSRS, *word, input.Rating, input.SessionID, now, rng)
	})
	if err != nil {
		return nil, err
	}

	var updated *domain.Word
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		updated, txErr = s.words.ApplyReview(txCtx, userID, word.ID, patch)
		if txErr != nil {
			return fmt.Errorf("apply review: %w", txErr)
		}

		correct := 0
		if input.Rating.IsCorrect() {
			correct = 1
		}
		if txErr = s.sessions.AddCounts(txCtx, input.SessionID, 1, correct); txErr != nil {
			return fmt.Errorf("update session counters: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "review submitted",
		slog.String("user_id", userID.String()),
		slog.String("word_id", word.ID.String()),
		slog.String("rating", input.Rating.String()),
		slog.String("mastery", string(updated.MasteryStatus)),
		slog.Float64("stability", updated.Stability),
	)

	return &ReviewResult{
		Word:            *updated,
		NextReviewText:  NextReviewText(updated.NextReviewDate, now),
		MasteryAchieved: wasLearning && updated.MasteryStatus == domain.MasteryReadyToUse,
	}, nil
}

// SubmitBatch records one rating for up to MaxBatchSize words, typically the
// words of a sentence exercise. All word updates and the single session
// counter update happen in one transaction, so a failure leaves nothing
// half-applied.
func (s *Service) SubmitBatch(ctx context.Context, input SubmitBatchInput) (*BatchResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if len(input.WordIDs) > s.cfg.MaxBatchSize {
		return nil, domain.NewValidationError("word_ids", fmt.Sprintf("too many (max %d)", s.cfg.MaxBatchSize))
	}

	now := time.Now()
	result := &BatchResult{
		NextReviewTexts: make(map[uuid.UUID]string, len(input.WordIDs)),
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		words, txErr := s.words.GetByIDsForUpdate(txCtx, userID, input.WordIDs)
		if txErr != nil {
			return fmt.Errorf("get words: %w", txErr)
		}
		if len(words) != len(input.WordIDs) {
			return fmt.Errorf("%w: %d of %d words missing or not owned",
				domain.ErrNotFound, len(input.WordIDs)-len(words), len(input.WordIDs))
		}

		for _, word := range words {
			wasLearning := word.MasteryStatus != domain.MasteryReadyToUse

			var patch domain.ReviewPatch
			s.withRNG(func(rng *rand.Rand) {
				patch, txErr = ProcessReview(s.cfg.FSRS, word, input.Rating, input.SessionID, now, rng)
			})
			if txErr != nil {
				return txErr
			}

			updated, txErr := s.words.ApplyReview(txCtx, userID, word.ID, patch)
			if txErr != nil {
				return fmt.Errorf("apply review for word %s: %w", word.ID, txErr)
			}

			result.Words = append(result.Words, *updated)
			if wasLearning && updated.MasteryStatus == domain.MasteryReadyToUse {
				result.MasteryCount++
			}
			result.NextReviewTexts[word.ID] = NextReviewText(updated.NextReviewDate, now)
		}

		correct := 0
		if input.Rating.IsCorrect() {
			correct = len(words)
		}
		if txErr = s.sessions.AddCounts(txCtx, input.SessionID, len(words), correct); txErr != nil {
			return fmt.Errorf("update session counters: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "batch review submitted",
		slog.String("user_id", userID.String()),
		slog.String("session_id", input.SessionID.String()),
		slog.String("rating", input.Rating.String()),
		slog.Int("words", len(result.Words)),
		slog.Int("mastery_count", result.MasteryCount),
	)

	return result, nil
}
