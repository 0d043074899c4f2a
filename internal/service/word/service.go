package word

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/llyli-app/llyli-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	Create(ctx context.Context, word *domain.Word) (*domain.Word, error)
	GetByID(ctx context.Context, userID, wordID uuid.UUID) (*domain.Word, error)
	Find(ctx context.Context, userID uuid.UUID, filter domain.WordFilter) ([]domain.Word, int, error)
	Delete(ctx context.Context, userID, wordID uuid.UUID) error
	CountStats(ctx context.Context, userID uuid.UUID, now time.Time) (domain.WordStats, error)
	Categories(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// translator produces a translation and suggested category for captured
// text. Implementations may call an external service; the stub returns
// nothing and capture degrades to an untranslated word.
type translator interface {
	Translate(ctx context.Context, text string) (translation, category string, err error)
}

// audioLookup resolves a pronunciation audio URL for captured text.
// May be nil; capture then stores the word without audio.
type audioLookup interface {
	FetchAudio(ctx context.Context, word string) (*string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config tunes word collection behavior.
type Config struct {
	// MaxWordsPerUser caps the collection size.
	MaxWordsPerUser int
	// NewWordsPerDay is the daily cap used in the dueToday stat.
	NewWordsPerDay int
	// DefaultCategory is assigned when the provider can't pick one.
	DefaultCategory string
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		MaxWordsPerUser: 10000,
		NewWordsPerDay:  15,
		DefaultCategory: "general",
	}
}

// Service implements the word collection business logic.
type Service struct {
	log        *slog.Logger
	words      wordRepo
	translator translator
	audio      audioLookup
	cfg        Config
}

// NewService creates a new Word service. audio may be nil.
func NewService(log *slog.Logger, words wordRepo, tr translator, audio audioLookup, cfg Config) *Service {
	if cfg.MaxWordsPerUser <= 0 {
		cfg.MaxWordsPerUser = 10000
	}
	if cfg.NewWordsPerDay <= 0 {
		cfg.NewWordsPerDay = 15
	}
	if cfg.DefaultCategory == "" {
		cfg.DefaultCategory = "general"
	}

	return &Service{
		log:        log.With("service", "word"),
		words:      words,
		translator: tr,
		audio:      audio,
		cfg:        cfg,
	}
}
