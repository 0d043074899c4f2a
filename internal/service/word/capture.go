package word

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/llyli-app/llyli-backend/internal/domain"
	"github.com/llyli-app/llyli-backend/pkg/ctxutil"
)

// Initial memory parameters for a freshly captured word. The first review
// replaces them with rating-specific values.
const (
	initialStability      = 1.0
	initialDifficulty     = 5.0
	initialRetrievability = 1.0
)

// Capture stores a new word or phrase with its translation. Translation
// failure is not fatal: the word is captured untranslated and can be edited
// later.
func (s *Service) Capture(ctx context.Context, input CaptureInput) (*domain.Word, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	text := domain.NormalizeText(input.Text)
	if text == "" {
		return nil, domain.NewValidationError("text", "required")
	}

	stats, err := s.words.CountStats(ctx, userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("count words: %w", err)
	}
	if stats.TotalWords >= s.cfg.MaxWordsPerUser {
		return nil, domain.NewValidationError("words", "collection limit reached")
	}

	translation := input.Translation
	category := input.Category
	if translation == "" {
		translated, suggested, trErr := s.translator.Translate(ctx, text)
		if trErr != nil {
			s.log.WarnContext(ctx, "translation failed, capturing untranslated",
				slog.String("user_id", userID.String()),
				slog.String("error", trErr.Error()),
			)
		} else {
			translation = translated
			if category == "" {
				category = suggested
			}
		}
	}
	if category == "" {
		category = s.cfg.DefaultCategory
	}

	var audioURL *string
	if s.audio != nil {
		found, audioErr := s.audio.FetchAudio(ctx, text)
		if audioErr != nil {
			s.log.WarnContext(ctx, "audio lookup failed, capturing without audio",
				slog.String("user_id", userID.String()),
				slog.String("error", audioErr.Error()),
			)
		} else {
			audioURL = found
		}
	}

	now := time.Now()
	word := &domain.Word{
		ID:           uuid.New(),
		UserID:       userID,
		OriginalText: input.Text,
		Translation:  translation,
		Language:     input.Language,
		Category:     category,
		AudioURL:     audioURL,

		Stability:      initialStability,
		Difficulty:     initialDifficulty,
		Retrievability: initialRetrievability,
		NextReviewDate: now, // due immediately for first review
		MasteryStatus:  domain.MasteryLearning,

		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.words.Create(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("create word: %w", err)
	}

	s.log.InfoContext(ctx, "word captured",
		slog.String("user_id", userID.String()),
		slog.String("word_id", created.ID.String()),
		slog.String("category", created.Category),
		slog.Bool("translated", created.Translation != ""),
	)

	return created, nil
}
