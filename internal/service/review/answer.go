package review

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/llyli-app/llyli-backend/internal/domain"
)

// Evaluation is the outcome of comparing a typed answer to the expected one.
type Evaluation struct {
	Status domain.AnswerStatus
	// CorrectedSpelling is set only when Status is AnswerCorrectWithTypo.
	CorrectedSpelling string
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeForComparison lowercases, trims and strips diacritics so that
// "Café " and "cafe" compare equal.
func NormalizeForComparison(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	stripped, _, err := transform.String(stripAccents, lowered)
	if err != nil {
		return lowered
	}
	return stripped
}

// EvaluateAnswer compares a user's typed answer against the expected answer
// with a typo tolerance of one edit per five characters (minimum one).
func EvaluateAnswer(userAnswer, correctAnswer string) Evaluation {
	normUser := NormalizeForComparison(userAnswer)
	normCorrect := NormalizeForComparison(correctAnswer)

	if normUser == normCorrect {
		return Evaluation{Status: domain.AnswerCorrect}
	}

	distance := levenshteinDistance(normUser, normCorrect)
	if distance <= maxAllowedTypos(len([]rune(normCorrect))) {
		return Evaluation{
			Status:            domain.AnswerCorrectWithTypo,
			CorrectedSpelling: correctAnswer,
		}
	}

	return Evaluation{Status: domain.AnswerIncorrect}
}

// maxAllowedTypos is one typo per five characters of the expected answer,
// never less than one.
func maxAllowedTypos(length int) int {
	return max(1, length/5)
}

// levenshteinDistance computes the minimum number of single-rune edits
// (insertions, deletions, substitutions) between two strings. Two-row
// variant of Wagner-Fischer, O(len(a)*len(b)) time and O(min) space.
func levenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return len(rb)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}
