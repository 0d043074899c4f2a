package review

import (
	"github.com/google/uuid"

	"github.com/llyli-app/llyli-backend/internal/domain"
)

// QueueResult is the assembled review queue for one session.
type QueueResult struct {
	SessionID uuid.UUID
	Words     []domain.Word
	// TotalDue counts all currently due words after the daily new-word cap,
	// regardless of the requested limit.
	TotalDue int
	// ExerciseType is the suggested format for this queue, derived from the
	// average mastery of the returned words.
	ExerciseType domain.ExerciseType
}

// ReviewResult is the outcome of a single submitted review.
type ReviewResult struct {
	Word           domain.Word
	NextReviewText string
	// MasteryAchieved is true when this review moved the word to ready_to_use.
	MasteryAchieved bool
}

// BatchResult is the outcome of a batch review submission.
type BatchResult struct {
	Words []domain.Word
	// MasteryCount is how many words reached ready_to_use in this batch.
	MasteryCount    int
	NextReviewTexts map[uuid.UUID]string
}
