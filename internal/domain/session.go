package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionBoundary is the idle gap after which review activity belongs
// to a new session. The mastery rule counts correct recalls across
// distinct sessions, so the boundary directly affects progression speed.
const SessionBoundary = 2 * time.Hour

// ReviewSession groups a sequence of review events. Its counters are
// updated atomically per submitted batch, never per individual word.
type ReviewSession struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	StartedAt     time.Time
	EndedAt       *time.Time
	WordsReviewed int
	CorrectCount  int
}

// IsActive reports whether the session is still open.
func (s *ReviewSession) IsActive() bool {
	return s.EndedAt == nil
}

// Accuracy returns the fraction of correct ratings in the session,
// or 0 when nothing was reviewed.
func (s *ReviewSession) Accuracy() float64 {
	if s.WordsReviewed == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(s.WordsReviewed)
}

// SessionSummary is returned when a session is closed.
type SessionSummary struct {
	Session       *ReviewSession
	DurationMs    int64
	AccuracyRate  float64
	WordsReviewed int
}

// Summary builds the closing summary for the session. Duration is zero
// while the session is still open.
func (s *ReviewSession) Summary() SessionSummary {
	var durationMs int64
	if s.EndedAt != nil {
		durationMs = s.EndedAt.Sub(s.StartedAt).Milliseconds()
	}
	return SessionSummary{
		Session:       s,
		DurationMs:    durationMs,
		AccuracyRate:  s.Accuracy(),
		WordsReviewed: s.WordsReviewed,
	}
}
