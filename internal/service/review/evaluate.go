package review

import (
	"context"
	"fmt"

	"github.com/llyli-app/llyli-backend/internal/domain"
	"github.com/llyli-app/llyli-backend/pkg/ctxutil"
)

// Evaluate grades a typed answer against the word's original text, with
// typo tolerance. Which rating to submit afterwards stays the client's
// decision; the evaluation only reports how close the answer was.
func (s *Service) Evaluate(ctx context.Context, input EvaluateInput) (*Evaluation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	word, err := s.words.GetByID(ctx, userID, input.WordID)
	if err != nil {
		return nil, fmt.Errorf("get word: %w", err)
	}

	eval := EvaluateAnswer(input.Answer, word.OriginalText)
	return &eval, nil
}
