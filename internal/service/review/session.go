package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/llyli-app/llyli-backend/internal/domain"
	"github.com/llyli-app/llyli-backend/pkg/ctxutil"
)

// getOrCreateSession resumes the user's active session when it started
// within the session boundary. A stale open session is closed first.
func (s *Service) getOrCreateSession(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.ReviewSession, error) {
	active, err := s.sessions.GetActive(ctx, userID)
	switch {
	case err == nil:
		if active.StartedAt.After(now.Add(-domain.SessionBoundary)) {
			return active, nil
		}
		// Too old to resume. Close it and start fresh.
		if _, endErr := s.sessions.End(ctx, userID, active.ID, now); endErr != nil {
			return nil, fmt.Errorf("close stale session: %w", endErr)
		}
	case errors.Is(err, domain.ErrNotFound):
		// No open session.
	default:
		return nil, fmt.Errorf("get active session: %w", err)
	}

	created, err := s.sessions.Create(ctx, &domain.ReviewSession{
		ID:        uuid.New(),
		UserID:    userID,
		StartedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.InfoContext(ctx, "review session started",
		slog.String("user_id", userID.String()),
		slog.String("session_id", created.ID.String()),
	)

	return created, nil
}

// EndSession closes a review session and returns its summary. With no
// session id the user's active session is closed.
func (s *Service) EndSession(ctx context.Context, input EndSessionInput) (*domain.SessionSummary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	sessionID := uuid.Nil
	if input.SessionID != nil {
		sessionID = *input.SessionID
	} else {
		active, err := s.sessions.GetActive(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("get active session: %w", err)
		}
		sessionID = active.ID
	}

	now := time.Now()
	session, err := s.sessions.End(ctx, userID, sessionID, now)
	if err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}

	s.log.InfoContext(ctx, "review session ended",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()),
		slog.Int("words_reviewed", session.WordsReviewed),
		slog.Int("correct", session.CorrectCount),
	)

	summary := session.Summary()
	return &summary, nil
}

// CloseStaleSessions ends every open session older than the given age.
// Run periodically by the cleanup job.
func (s *Service) CloseStaleSessions(ctx context.Context, olderThan time.Duration) (int, error) {
	if olderThan <= 0 {
		olderThan = domain.SessionBoundary
	}

	closed, err := s.sessions.CloseStale(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("close stale sessions: %w", err)
	}

	if closed > 0 {
		s.log.InfoContext(ctx, "stale sessions closed", slog.Int("count", closed))
	}
	return closed, nil
}
