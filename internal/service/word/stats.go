package word

import (
	"context"
	"fmt"
	"time"

	"github.com/llyli-app/llyli-backend/internal/domain"
	"github.com/llyli-app/llyli-backend/pkg/ctxutil"
)

// Stats returns the aggregate view of the user's collection. The dueToday
// figure caps new words at the daily limit so bulk imports don't show
// hundreds of "due" words at once.
func (s *Service) Stats(ctx context.Context) (*domain.WordStats, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	stats, err := s.words.CountStats(ctx, userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("count stats: %w", err)
	}

	stats.DueToday = min(stats.NewAvailable, s.cfg.NewWordsPerDay) + stats.ReviewDue
	return &stats, nil
}
