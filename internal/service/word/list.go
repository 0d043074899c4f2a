package word

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/llyli-app/llyli-backend/internal/domain"
	"github.com/llyli-app/llyli-backend/pkg/ctxutil"
)

// List returns a page of the user's words matching the filter, newest first,
// with the total match count for pagination.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Word, int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = 20
	}

	words, total, err := s.words.Find(ctx, userID, domain.WordFilter{
		Category:      input.Category,
		MasteryStatus: input.MasteryStatus,
		Search:        input.Search,
		Limit:         limit,
		Offset:        input.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("find words: %w", err)
	}

	return words, total, nil
}

// Get returns one word by id.
func (s *Service) Get(ctx context.Context, wordID uuid.UUID) (*domain.Word, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if wordID == uuid.Nil {
		return nil, domain.NewValidationError("word_id", "required")
	}

	word, err := s.words.GetByID(ctx, userID, wordID)
	if err != nil {
		return nil, fmt.Errorf("get word: %w", err)
	}
	return word, nil
}

// Delete removes a word from the collection.
func (s *Service) Delete(ctx context.Context, wordID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if wordID == uuid.Nil {
		return domain.NewValidationError("word_id", "required")
	}

	if err := s.words.Delete(ctx, userID, wordID); err != nil {
		return fmt.Errorf("delete word: %w", err)
	}

	s.log.InfoContext(ctx, "word deleted",
		"user_id", userID.String(),
		"word_id", wordID.String(),
	)
	return nil
}

// Categories returns the distinct categories present in the user's collection.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	categories, err := s.words.Categories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
