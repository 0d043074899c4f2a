package review

import (
	"sort"

	"github.com/llyli-app/llyli-backend/internal/domain"
)

// DetermineExerciseType picks the exercise format for a word group based on
// average mastery. Exercises get harder as recall improves:
//
//	avg < 1:  multiple_choice (recognition)
//	avg < 2:  fill_blank      (partial recall)
//	avg >= 2: type_translation (full production)
func DetermineExerciseType(words []domain.Word) domain.ExerciseType {
	if len(words) == 0 {
		return domain.ExerciseMultipleChoice
	}

	total := 0
	for _, w := range words {
		total += w.ConsecutiveCorrectSessions
	}
	avg := float64(total) / float64(len(words))

	switch {
	case avg < 1:
		return domain.ExerciseMultipleChoice
	case avg < 2:
		return domain.ExerciseFillBlank
	default:
		return domain.ExerciseTypeTranslation
	}
}

// SelectWordToBlank picks the word to blank out in a fill_blank exercise.
// Prefers the least-mastered word; ties keep the original order.
func SelectWordToBlank(words []domain.Word) *domain.Word {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]domain.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ConsecutiveCorrectSessions < sorted[j].ConsecutiveCorrectSessions
	})

	return &sorted[0]
}
