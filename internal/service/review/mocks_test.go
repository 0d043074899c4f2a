package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/llyli-app/llyli-backend/internal/domain"
)

// Hand-rolled func-field mocks for the service's private interfaces.
// A nil func panics, which surfaces unexpected calls immediately.

type wordRepoMock struct {
	GetByIDFunc           func(ctx context.Context, userID, wordID uuid.UUID) (*domain.Word, error)
	GetByIDsForUpdateFunc func(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) ([]domain.Word, error)
	GetDueWordsFunc       func(ctx context.Context, userID uuid.UUID, now time.Time, retention float64) ([]domain.Word, error)
	ApplyReviewFunc       func(ctx context.Context, userID, wordID uuid.UUID, patch domain.ReviewPatch) (*domain.Word, error)

	getDueWordsCalls int
	applyReviewCalls int
}

func (m *wordRepoMock) GetByID(ctx context.Context, userID, wordID uuid.UUID) (*domain.Word, error) {
	return m.GetByIDFunc(ctx, userID, wordID)
}

func (m *wordRepoMock) GetByIDsForUpdate(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) ([]domain.Word, error) {
	return m.GetByIDsForUpdateFunc(ctx, userID, wordIDs)
}

func (m *wordRepoMock) GetDueWords(ctx context.Context, userID uuid.UUID, now time.Time, retention float64) ([]domain.Word, error) {
	m.getDueWordsCalls++
	return m.GetDueWordsFunc(ctx, userID, now, retention)
}

func (m *wordRepoMock) ApplyReview(ctx context.Context, userID, wordID uuid.UUID, patch domain.ReviewPatch) (*domain.Word, error) {
	m.applyReviewCalls++
	return m.ApplyReviewFunc(ctx, userID, wordID, patch)
}

type sessionRepoMock struct {
	CreateFunc     func(ctx context.Context, session *domain.ReviewSession) (*domain.ReviewSession, error)
	GetByIDFunc    func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.ReviewSession, error)
	GetActiveFunc  func(ctx context.Context, userID uuid.UUID) (*domain.ReviewSession, error)
	AddCountsFunc  func(ctx context.Context, sessionID uuid.UUID, reviewed, correct int) error
	EndFunc        func(ctx context.Context, userID, sessionID uuid.UUID, endedAt time.Time) (*domain.ReviewSession, error)
	CloseStaleFunc func(ctx context.Context, before time.Time) (int, error)

	createCalls    int
	addCountsCalls int
	endCalls       int
}

func (m *sessionRepoMock) Create(ctx context.Context, session *domain.ReviewSession) (*domain.ReviewSession, error) {
	m.createCalls++
	return m.CreateFunc(ctx, session)
}

func (m *sessionRepoMock) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.ReviewSession, error) {
	return m.GetByIDFunc(ctx, userID, sessionID)
}

func (m *sessionRepoMock) GetActive(ctx context.Context, userID uuid.UUID) (*domain.ReviewSession, error) {
	return m.GetActiveFunc(ctx, userID)
}

func (m *sessionRepoMock) AddCounts(ctx context.Context, sessionID uuid.UUID, reviewed, correct int) error {
	m.addCountsCalls++
	return m.AddCountsFunc(ctx, sessionID, reviewed, correct)
}

func (m *sessionRepoMock) End(ctx context.Context, userID, sessionID uuid.UUID, endedAt time.Time) (*domain.ReviewSession, error) {
	m.endCalls++
	return m.EndFunc(ctx, userID, sessionID, endedAt)
}

func (m *sessionRepoMock) CloseStale(ctx context.Context, before time.Time) (int, error) {
	return m.CloseStaleFunc(ctx, before)
}

// txManagerMock runs the callback directly; tests assert on repo effects.
type txManagerMock struct{}

func (txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
