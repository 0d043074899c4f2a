package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewPatch is the sparse field set produced by the scheduler after a
// review event. The scheduler never writes storage; the caller merges the
// patch into the persisted word in its own transaction.
//
// ClearLastCorrectSession distinguishes "set LastCorrectSessionID to NULL"
// (incorrect rating) from "leave it alone" (correct rating in a session
// that already counted).
type ReviewPatch struct {
	Stability      float64
	Difficulty     float64
	Retrievability float64
	NextReviewDate time.Time
	LastReviewDate time.Time
	ReviewCount    int
	LapseCount     int

	ConsecutiveCorrectSessions int
	LastCorrectSessionID       *uuid.UUID
	ClearLastCorrectSession    bool
	MasteryStatus              MasteryStatus
}

// Apply merges the patch into a copy of the word and returns it.
// Used by tests and callers that keep words in memory.
func (p ReviewPatch) Apply(w Word) Word {
	w.Stability = p.Stability
	w.Difficulty = p.Difficulty
	w.Retrievability = p.Retrievability
	w.NextReviewDate = p.NextReviewDate
	last := p.LastReviewDate
	w.LastReviewDate = &last
	w.ReviewCount = p.ReviewCount
	w.LapseCount = p.LapseCount
	w.ConsecutiveCorrectSessions = p.ConsecutiveCorrectSessions
	if p.ClearLastCorrectSession {
		w.LastCorrectSessionID = nil
	} else if p.LastCorrectSessionID != nil {
		id := *p.LastCorrectSessionID
		w.LastCorrectSessionID = &id
	}
	w.MasteryStatus = p.MasteryStatus
	w.UpdatedAt = last
	return w
}
