package domain

import (
	"time"

	"github.com/google/uuid"
)

// Word represents a captured phrase tracked by the FSRS scheduler.
// Each word belongs to one user and carries its full memory state.
type Word struct {
	ID     uuid.UUID
	UserID uuid.UUID

	OriginalText string
	Translation  string
	Language     string
	Category     string
	AudioURL     *string

	// FSRS memory state.
	Stability      float64 // days until retrievability drops to 90%, always > 0
	Difficulty     float64 // model scale [1, 10]
	Retrievability float64 // cached recall probability [0, 1], 1.0 right after a review
	NextReviewDate time.Time
	LastReviewDate *time.Time
	ReviewCount    int
	LapseCount     int

	// Mastery tracking: three correct recalls across distinct sessions.
	ConsecutiveCorrectSessions int
	LastCorrectSessionID       *uuid.UUID
	MasteryStatus              MasteryStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsNew reports whether the word has never been reviewed.
// New words bypass the retrievability threshold and are always due.
func (w *Word) IsNew() bool {
	return w.ReviewCount == 0
}

// IsDue reports whether the word needs review at the given time.
// A word is due when it has never been reviewed, or its scheduled
// review date has passed. Callers that also want the probability-based
// check combine this with the retrievability model.
func (w *Word) IsDue(now time.Time) bool {
	if w.IsNew() {
		return true
	}
	return !w.NextReviewDate.After(now)
}
