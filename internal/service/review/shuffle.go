package review

import (
	"math/rand"
	"time"

	"github.com/llyli-app/llyli-backend/internal/domain"
)

// priorityBand orders queue entries by urgency. Overdue words come first so
// long-neglected material is not buried by shuffling.
type priorityBand int

const (
	bandOverdue priorityBand = iota // more than 7 days past due
	bandDue                         // at or past the review date
	bandNew                         // never reviewed
)

// overdueThreshold is how far past due a word must be to jump the queue.
const overdueThreshold = 7 * 24 * time.Hour

func bandFor(w domain.Word, now time.Time) priorityBand {
	if w.LastReviewDate == nil {
		return bandNew
	}
	if w.NextReviewDate.Before(now.Add(-overdueThreshold)) {
		return bandOverdue
	}
	if !w.NextReviewDate.After(now) {
		return bandDue
	}
	// Not due yet. Should not appear in a due list, but keep it at the back.
	return bandNew
}

// ShuffleWithinPriorityBands returns a new slice where words are grouped
// into urgency bands (overdue, due, new), each band shuffled independently,
// then concatenated in band order. This keeps scheduling priority intact
// while preventing users from memorizing the queue order.
func ShuffleWithinPriorityBands(words []domain.Word, now time.Time, rng *rand.Rand) []domain.Word {
	if len(words) <= 1 {
		out := make([]domain.Word, len(words))
		copy(out, words)
		return out
	}

	var overdue, due, fresh []domain.Word
	for _, w := range words {
		switch bandFor(w, now) {
		case bandOverdue:
			overdue = append(overdue, w)
		case bandDue:
			due = append(due, w)
		default:
			fresh = append(fresh, w)
		}
	}

	fisherYates(overdue, rng)
	fisherYates(due, rng)
	fisherYates(fresh, rng)

	out := make([]domain.Word, 0, len(words))
	out = append(out, overdue...)
	out = append(out, due...)
	out = append(out, fresh...)
	return out
}

// ShuffleFully shuffles with no priority preservation. Used for the words
// inside a single exercise group, where order carries no meaning.
func ShuffleFully(words []domain.Word, rng *rand.Rand) []domain.Word {
	out := make([]domain.Word, len(words))
	copy(out, words)
	fisherYates(out, rng)
	return out
}

func fisherYates(words []domain.Word, rng *rand.Rand) {
	for i := len(words) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		words[i], words[j] = words[j], words[i]
	}
}
