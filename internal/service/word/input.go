package word

import (
	"unicode/utf8"

	"github.com/llyli-app/llyli-backend/internal/domain"
)

// CaptureInput holds the parameters for capturing a new word or phrase.
// Translation and Category are optional; when empty the provider fills them.
type CaptureInput struct {
	Text        string
	Translation string
	Language    string
	Category    string
}

// Validate checks all fields and collects all errors.
func (i *CaptureInput) Validate() error {
	var errs []domain.FieldError

	if i.Text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	} else if utf8.RuneCountInString(i.Text) > 500 {
		errs = append(errs, domain.FieldError{Field: "text", Message: "too long (max 500 characters)"})
	}
	if utf8.RuneCountInString(i.Translation) > 500 {
		errs = append(errs, domain.FieldError{Field: "translation", Message: "too long (max 500 characters)"})
	}
	if utf8.RuneCountInString(i.Category) > 100 {
		errs = append(errs, domain.FieldError{Field: "category", Message: "too long (max 100 characters)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput holds the parameters for listing words.
type ListInput struct {
	Category      string
	MasteryStatus domain.MasteryStatus
	Search        string
	Limit         int
	Offset        int
}

// Validate checks all fields and collects all errors.
func (i *ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}
	if i.MasteryStatus != "" && !i.MasteryStatus.IsValid() {
		errs = append(errs, domain.FieldError{Field: "mastery_status", Message: "must be learning, learned, or ready_to_use"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
