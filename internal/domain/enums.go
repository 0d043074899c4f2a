package domain

import "fmt"

// Rating is the user's recall quality for a single review event.
// The numeric values are the FSRS grades and part of the API contract.
type Rating int

const (
	RatingAgain Rating = 1
	RatingHard  Rating = 2
	RatingGood  Rating = 3
	RatingEasy  Rating = 4
)

func (r Rating) IsValid() bool {
	return r >= RatingAgain && r <= RatingEasy
}

// IsCorrect reports whether the rating counts as a correct recall
// for mastery tracking (Good or Easy).
func (r Rating) IsCorrect() bool {
	return r >= RatingGood
}

func (r Rating) String() string {
	switch r {
	case RatingAgain:
		return "AGAIN"
	case RatingHard:
		return "HARD"
	case RatingGood:
		return "GOOD"
	case RatingEasy:
		return "EASY"
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// MasteryStatus tracks a word's progression toward active use.
// The only allowed regression is back to LEARNING on an incorrect rating.
type MasteryStatus string

const (
	MasteryLearning   MasteryStatus = "learning"
	MasteryLearned    MasteryStatus = "learned"
	MasteryReadyToUse MasteryStatus = "ready_to_use"
)

func (m MasteryStatus) String() string { return string(m) }

func (m MasteryStatus) IsValid() bool {
	switch m {
	case MasteryLearning, MasteryLearned, MasteryReadyToUse:
		return true
	}
	return false
}

// ExerciseType identifies how a word group is presented during review.
type ExerciseType string

const (
	ExerciseMultipleChoice  ExerciseType = "multiple_choice"
	ExerciseFillBlank       ExerciseType = "fill_blank"
	ExerciseTypeTranslation ExerciseType = "type_translation"
)

func (e ExerciseType) String() string { return string(e) }

func (e ExerciseType) IsValid() bool {
	switch e {
	case ExerciseMultipleChoice, ExerciseFillBlank, ExerciseTypeTranslation:
		return true
	}
	return false
}

// Difficulty returns the 1-3 difficulty rank for the exercise type.
// Unknown types rank as 1 (easiest).
func (e ExerciseType) Difficulty() int {
	switch e {
	case ExerciseFillBlank:
		return 2
	case ExerciseTypeTranslation:
		return 3
	default:
		return 1
	}
}

// AnswerStatus is the outcome of fuzzy answer evaluation.
type AnswerStatus string

const (
	AnswerCorrect         AnswerStatus = "correct"
	AnswerCorrectWithTypo AnswerStatus = "correct_with_typo"
	AnswerIncorrect       AnswerStatus = "incorrect"
)

func (a AnswerStatus) String() string { return string(a) }

func (a AnswerStatus) IsValid() bool {
	switch a {
	case AnswerCorrect, AnswerCorrectWithTypo, AnswerIncorrect:
		return true
	}
	return false
}
