package review

import (
	"strings"

	"github.com/google/uuid"

	"github.com/llyli-app/llyli-backend/internal/domain"
)

// GetQueueInput holds the parameters for fetching the review queue.
type GetQueueInput struct {
	Limit int
}

// Validate checks all fields and collects all errors.
func (i *GetQueueInput) Validate() error {
	var errs []domain.FieldError

	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SubmitReviewInput holds the parameters for reviewing a single word.
type SubmitReviewInput struct {
	WordID    uuid.UUID
	Rating    domain.Rating
	SessionID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *SubmitReviewInput) Validate() error {
	var errs []domain.FieldError

	if i.WordID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "word_id", Message: "required"})
	}
	if !i.Rating.IsValid() {
		errs = append(errs, domain.FieldError{Field: "rating", Message: "must be 1 (Again), 2 (Hard), 3 (Good), or 4 (Easy)"})
	}
	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SubmitBatchInput holds the parameters for reviewing several words with one
// rating, typically a sentence exercise.
type SubmitBatchInput struct {
	WordIDs   []uuid.UUID
	Rating    domain.Rating
	SessionID uuid.UUID
}

// Validate checks all fields and collects all errors. The batch size limit
// is enforced by the service, which owns the configured maximum.
func (i *SubmitBatchInput) Validate() error {
	var errs []domain.FieldError

	if len(i.WordIDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "word_ids", Message: "required (at least 1)"})
	}
	for _, id := range i.WordIDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "word_ids", Message: "must not contain empty ids"})
			break
		}
	}
	if !i.Rating.IsValid() {
		errs = append(errs, domain.FieldError{Field: "rating", Message: "must be 1 (Again), 2 (Hard), 3 (Good), or 4 (Easy)"})
	}
	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// EvaluateInput holds a typed answer for one word.
type EvaluateInput struct {
	WordID uuid.UUID
	Answer string
}

// Validate checks all fields and collects all errors.
func (i *EvaluateInput) Validate() error {
	var errs []domain.FieldError

	if i.WordID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "word_id", Message: "required"})
	}
	if strings.TrimSpace(i.Answer) == "" {
		errs = append(errs, domain.FieldError{Field: "answer", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// EndSessionInput holds the parameters for ending a review session.
// A nil SessionID ends the user's active session.
type EndSessionInput struct {
	SessionID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *EndSessionInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID != nil && *i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "must not be empty when provided"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
