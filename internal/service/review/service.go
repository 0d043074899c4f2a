package review

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/llyli-app/llyli-backend/internal/domain"
	"github.com/llyli-app/llyli-backend/internal/service/review/fsrs"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	GetByID(ctx context.Context, userID, wordID uuid.UUID) (*domain.Word, error)
	GetByIDsForUpdate(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) ([]domain.Word, error)
	GetDueWords(ctx context.Context, userID uuid.UUID, now time.Time, retention float64) ([]domain.Word, error)
	ApplyReview(ctx context.Context, userID, wordID uuid.UUID, patch domain.ReviewPatch) (*domain.Word, error)
}

type sessionRepo interface {
	Create(ctx context.Context, session *domain.ReviewSession) (*domain.ReviewSession, error)
	GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.ReviewSession, error)
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.ReviewSession, error)
	AddCounts(ctx context.Context, sessionID uuid.UUID, reviewed, correct int) error
	End(ctx context.Context, userID, sessionID uuid.UUID, endedAt time.Time) (*domain.ReviewSession, error)
	CloseStale(ctx context.Context, before time.Time) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config tunes queue assembly and scheduling.
type Config struct {
	FSRS fsrs.Params
	// NewWordsPerDay caps never-reviewed words admitted into a day's queue.
	NewWordsPerDay int
	// DefaultQueueLimit is used when the caller passes limit=0.
	DefaultQueueLimit int
	// MaxBatchSize bounds SubmitBatch.
	MaxBatchSize int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		FSRS:              fsrs.DefaultParams(),
		NewWordsPerDay:    15,
		DefaultQueueLimit: 20,
		MaxBatchSize:      10,
	}
}

// Service implements the review business logic: queue assembly, review
// submission and session lifecycle.
type Service struct {
	words    wordRepo
	sessions sessionRepo
	tx       txManager
	log      *slog.Logger
	cfg      Config

	// rand.Rand is not safe for concurrent use.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService creates a new Review service. A nil rng gets a time-seeded one.
func NewService(
	log *slog.Logger,
	words wordRepo,
	sessions sessionRepo,
	tx txManager,
	cfg Config,
	rng *rand.Rand,
) (*Service, error) {
	if err := fsrs.ValidateWeights(cfg.FSRS.W); err != nil {
		return nil, fmt.Errorf("invalid FSRS weights: %w", err)
	}
	if cfg.NewWordsPerDay <= 0 {
		cfg.NewWordsPerDay = 15
	}
	if cfg.DefaultQueueLimit <= 0 {
		cfg.DefaultQueueLimit = 20
	}
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = 10
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Service{
		words:    words,
		sessions: sessions,
		tx:       tx,
		log:      log.With("service", "review"),
		cfg:      cfg,
		rng:      rng,
	}, nil
}

// withRNG runs fn with the service RNG under the lock.
func (s *Service) withRNG(fn func(rng *rand.Rand)) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	fn(s.rng)
}
