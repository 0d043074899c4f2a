package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/llyli-app/llyli-backend/internal/domain"
)

// wordResponse is the JSON shape for a word across all endpoints.
type wordResponse struct {
	ID             string     `json:"id"`
	OriginalText   string     `json:"originalText"`
	Translation    string     `json:"translation"`
	Language       string     `json:"language,omitempty"`
	Category       string     `json:"category,omitempty"`
	AudioURL       *string    `json:"audioUrl,omitempty"`
	Stability      float64    `json:"stability"`
	Difficulty     float64    `json:"difficulty"`
	Retrievability float64    `json:"retrievability"`
	NextReviewDate time.Time  `json:"nextReviewDate"`
	LastReviewDate *time.Time `json:"lastReviewDate,omitempty"`
	ReviewCount    int        `json:"reviewCount"`
	LapseCount     int        `json:"lapseCount"`
	MasteryStatus  string     `json:"masteryStatus"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func toWordResponse(w domain.Word) wordResponse {
	return wordResponse{
		ID:             w.ID.String(),
		OriginalText:   w.OriginalText,
		Translation:    w.Translation,
		Language:       w.Language,
		Category:       w.Category,
		AudioURL:       w.AudioURL,
		Stability:      w.Stability,
		Difficulty:     w.Difficulty,
		Retrievability: w.Retrievability,
		NextReviewDate: w.NextReviewDate,
		LastReviewDate: w.LastReviewDate,
		ReviewCount:    w.ReviewCount,
		LapseCount:     w.LapseCount,
		MasteryStatus:  string(w.MasteryStatus),
		CreatedAt:      w.CreatedAt,
	}
}

func toWordResponses(words []domain.Word) []wordResponse {
	out := make([]wordResponse, 0, len(words))
	for _, w := range words {
		out = append(out, toWordResponse(w))
	}
	return out
}

// handleServiceError maps domain errors to HTTP status codes. Unknown
// errors are logged and hidden behind a generic 500.
func handleServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// pathUUID parses the {id} path segment.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue(name))
}
