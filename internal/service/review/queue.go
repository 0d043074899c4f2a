package review

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/llyli-app/llyli-backend/internal/domain"
	"github.com/llyli-app/llyli-backend/pkg/ctxutil"
)

// GetQueue returns the words due for review and the session they belong to.
// The active session is resumed when one exists within the session boundary,
// otherwise a new one is opened.
func (s *Service) GetQueue(ctx context.Context, input GetQueueInput) (*QueueResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = s.cfg.DefaultQueueLimit
	}

	now := time.Now()

	session, err := s.getOrCreateSession(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("get or create session: %w", err)
	}

	due, err := s.words.GetDueWords(ctx, userID, now, s.cfg.FSRS.DesiredRetention)
	if err != nil {
		return nil, fmt.Errorf("get due words: %w", err)
	}

	capped := capNewWords(due, s.cfg.NewWordsPerDay)

	var shuffled []domain.Word
	s.withRNG(func(rng *rand.Rand) {
		shuffled = ShuffleWithinPriorityBands(capped, now, rng)
	})

	queue := shuffled
	if len(queue) > limit {
		queue = queue[:limit]
	}

	s.log.InfoContext(ctx, "review queue generated",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()),
		slog.Int("total_due", len(capped)),
		slog.Int("returned", len(queue)),
	)

	return &QueueResult{
		SessionID:    session.ID,
		Words:        queue,
		TotalDue:     len(capped),
		ExerciseType: DetermineExerciseType(queue),
	}, nil
}

// capNewWords keeps at most maxNew never-reviewed words, preserving order.
// Reviewed words always pass through.
func capNewWords(words []domain.Word, maxNew int) []domain.Word {
	out := make([]domain.Word, 0, len(words))
	newCount := 0
	for _, w := range words {
		if w.IsNew() {
			if newCount >= maxNew {
				continue
			}
			newCount++
		}
		out = append(out, w)
	}
	return out
}
