package review

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/llyli-app/llyli-backend/internal/domain"
	"github.com/llyli-app/llyli-backend/internal/service/review/fsrs"
)

// masteryThreshold is how many distinct correct sessions graduate a word
// to ready_to_use.
const masteryThreshold = 3

// ProcessReview computes the scheduling outcome of a single review event.
// Pure with respect to storage: it returns a patch for the caller to persist.
//
// Mastery counts at most one correct answer per session. A second correct
// answer for the same word in the same session updates scheduling but leaves
// the mastery fields untouched.
func ProcessReview(p fsrs.Params, word domain.Word, rating domain.Rating, sessionID uuid.UUID, now time.Time, rng *rand.Rand) (domain.ReviewPatch, error) {
	if !rating.IsValid() {
		return domain.ReviewPatch{}, fmt.Errorf("%w: rating must be 1-4, got %d", domain.ErrValidation, rating)
	}

	state := fsrs.StateReview
	if word.IsNew() {
		state = fsrs.StateNew
	}

	elapsed := 0
	if word.LastReviewDate != nil {
		elapsed = int(now.Sub(*word.LastReviewDate).Hours() / 24)
	}

	result, err := fsrs.Schedule(p, fsrs.Memory{
		Stability:  word.Stability,
		Difficulty: word.Difficulty,
	}, state, elapsed, fsrs.Rating(rating), now, rng)
	if err != nil {
		return domain.ReviewPatch{}, fmt.Errorf("schedule word %s: %w", word.ID, err)
	}

	patch := domain.ReviewPatch{
		Stability:      result.Stability,
		Difficulty:     result.Difficulty,
		Retrievability: 1.0, // just reviewed
		NextReviewDate: result.Due,
		LastReviewDate: now,
		ReviewCount:    word.ReviewCount + 1,
		LapseCount:     word.LapseCount,

		ConsecutiveCorrectSessions: word.ConsecutiveCorrectSessions,
		MasteryStatus:              word.MasteryStatus,
	}
	if rating == domain.RatingAgain {
		patch.LapseCount++
	}

	switch {
	case rating.IsCorrect() && !countedInSession(word, sessionID):
		patch.ConsecutiveCorrectSessions = word.ConsecutiveCorrectSessions + 1
		sid := sessionID
		patch.LastCorrectSessionID = &sid
		if patch.ConsecutiveCorrectSessions >= masteryThreshold {
			patch.MasteryStatus = domain.MasteryReadyToUse
		} else {
			patch.MasteryStatus = domain.MasteryLearned
		}

	case !rating.IsCorrect():
		patch.ConsecutiveCorrectSessions = 0
		patch.ClearLastCorrectSession = true
		patch.MasteryStatus = domain.MasteryLearning
	}

	return patch, nil
}

func countedInSession(word domain.Word, sessionID uuid.UUID) bool {
	return word.LastCorrectSessionID != nil && *word.LastCorrectSessionID == sessionID
}

// NextReviewText renders a next review date as a short human-readable hint.
func NextReviewText(nextReview, now time.Time) string {
	diff := nextReview.Sub(now)
	diffDays := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		diffDays++ // ceiling
	}

	switch {
	case diffDays <= 0:
		return "Review now"
	case diffDays <= 7:
		return nextReview.Weekday().String()
	case diffDays < 14:
		return "In about a week"
	case diffDays < 30:
		return fmt.Sprintf("In %d weeks", diffDays/7)
	default:
		months := diffDays / 30
		if months > 1 {
			return fmt.Sprintf("In about %d months", months)
		}
		return "In about 1 month"
	}
}
