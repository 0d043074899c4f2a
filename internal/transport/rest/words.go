package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/llyli-app/llyli-backend/internal/domain"
	"github.com/llyli-app/llyli-backend/internal/service/word"
)

// wordService defines the minimal interface needed by WordsHandler.
type wordService interface {
	Capture(ctx context.Context, input word.CaptureInput) (*domain.Word, error)
	List(ctx context.Context, input word.ListInput) ([]domain.Word, int, error)
	Get(ctx context.Context, wordID uuid.UUID) (*domain.Word, error)
	Delete(ctx context.Context, wordID uuid.UUID) error
	Stats(ctx context.Context) (*domain.WordStats, error)
	Categories(ctx context.Context) ([]string, error)
}

// WordsHandler serves word collection REST endpoints.
type WordsHandler struct {
	svc wordService
	log *slog.Logger
}

// NewWordsHandler creates a WordsHandler.
func NewWordsHandler(svc wordService, logger *slog.Logger) *WordsHandler {
	return &WordsHandler{svc: svc, log: logger.With("handler", "words")}
}

type captureRequest struct {
	Text        string `json:"text"`
	Translation string `json:"translation,omitempty"`
	Language    string `json:"language,omitempty"`
	Category    string `json:"category,omitempty"`
}

type listResponse struct {
	Words []wordResponse `json:"words"`
	Total int            `json:"total"`
}

type statsResponse struct {
	TotalWords     int `json:"totalWords"`
	MasteredCount  int `json:"masteredCount"`
	LearningCount  int `json:"learningCount"`
	DueToday       int `json:"dueToday"`
	NeedsAttention int `json:"needsAttention"`
}

// Capture handles POST /words.
func (h *WordsHandler) Capture(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Capture(r.Context(), word.CaptureInput{
		Text:        req.Text,
		Translation: req.Translation,
		Language:    req.Language,
		Category:    req.Category,
	})
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toWordResponse(*created))
}

// List handles GET /words?category=&mastery=&search=&limit=&offset=.
func (h *WordsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := word.ListInput{
		Category:      q.Get("category"),
		MasteryStatus: domain.MasteryStatus(q.Get("mastery")),
		Search:        q.Get("search"),
	}

	var err error
	if input.Limit, err = queryInt(q.Get("limit")); err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	if input.Offset, err = queryInt(q.Get("offset")); err != nil {
		writeError(w, http.StatusBadRequest, "offset must be an integer")
		return
	}

	words, total, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Words: toWordResponses(words),
		Total: total,
	})
}

// Get handles GET /words/{id}.
func (h *WordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	found, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toWordResponse(*found))
}

// Delete handles DELETE /words/{id}.
func (h *WordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Stats handles GET /words/stats.
func (h *WordsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		TotalWords:     stats.TotalWords,
		MasteredCount:  stats.MasteredCount,
		LearningCount:  stats.LearningCount,
		DueToday:       stats.DueToday,
		NeedsAttention: stats.NeedsAttention,
	})
}

// Categories handles GET /words/categories.
func (h *WordsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"categories": categories})
}

func queryInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
