package translate

import "context"

// Translator produces a translation and suggested category for a text.
type Translator interface {
	Translate(ctx context.Context, text string) (translation, category string, err error)
}

// Stub is a no-op translation provider. Words captured with it stay
// untranslated until the user edits them.
type Stub struct{}

// NewStub creates a new no-op translation provider.
func NewStub() *Stub { return &Stub{} }

// Translate always returns empty results.
func (s *Stub) Translate(ctx context.Context, text string) (string, string, error) {
	return "", "", nil
}
