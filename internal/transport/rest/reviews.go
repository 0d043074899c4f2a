package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/llyli-app/llyli-backend/internal/domain"
	"github.com/llyli-app/llyli-backend/internal/service/review"
)

// reviewService defines the minimal interface needed by ReviewsHandler.
type reviewService interface {
	GetQueue(ctx context.Context, input review.GetQueueInput) (*review.QueueResult, error)
	SubmitReview(ctx context.Context, input review.SubmitReviewInput) (*review.ReviewResult, error)
	SubmitBatch(ctx context.Context, input review.SubmitBatchInput) (*review.BatchResult, error)
	Evaluate(ctx context.Context, input review.EvaluateInput) (*review.Evaluation, error)
	EndSession(ctx context.Context, input review.EndSessionInput) (*domain.SessionSummary, error)
}

// ReviewsHandler serves review REST endpoints.
type ReviewsHandler struct {
	svc reviewService
	log *slog.Logger
}

// NewReviewsHandler creates a ReviewsHandler.
func NewReviewsHandler(svc reviewService, logger *slog.Logger) *ReviewsHandler {
	return &ReviewsHandler{svc: svc, log: logger.With("handler", "reviews")}
}

type submitReviewRequest struct {
	WordID    uuid.UUID `json:"wordId"`
	Rating    int       `json:"rating"`
	SessionID uuid.UUID `json:"sessionId"`
}

type submitBatchRequest struct {
	WordIDs   []uuid.UUID `json:"wordIds"`
	Rating    int         `json:"rating"`
	SessionID uuid.UUID   `json:"sessionId"`
}

type evaluateRequest struct {
	WordID uuid.UUID `json:"wordId"`
	Answer string    `json:"answer"`
}

type endSessionRequest struct {
	SessionID *uuid.UUID `json:"sessionId,omitempty"`
}

type queueResponse struct {
	SessionID    string         `json:"sessionId"`
	Words        []wordResponse `json:"words"`
	TotalDue     int            `json:"totalDue"`
	ExerciseType string         `json:"exerciseType"`
}

type reviewResponse struct {
	Word            wordResponse `json:"word"`
	NextReviewText  string       `json:"nextReviewText"`
	MasteryAchieved bool         `json:"masteryAchieved"`
}

type batchResponse struct {
	Words           []wordResponse    `json:"words"`
	MasteryCount    int               `json:"masteryCount"`
	NextReviewTexts map[string]string `json:"nextReviewTexts"`
}

type evaluateResponse struct {
	Status            string `json:"status"`
	CorrectedSpelling string `json:"correctedSpelling,omitempty"`
}

type sessionSummaryResponse struct {
	SessionID     string  `json:"sessionId"`
	WordsReviewed int     `json:"wordsReviewed"`
	CorrectCount  int     `json:"correctCount"`
	AccuracyRate  float64 `json:"accuracyRate"`
	DurationMs    int64   `json:"durationMs"`
}

// Queue handles GET /reviews/queue?limit=N.
// It opens (or resumes) the user's review session and returns the due
// words shuffled within priority bands.
func (h *ReviewsHandler) Queue(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	result, err := h.svc.GetQueue(r.Context(), review.GetQueueInput{Limit: limit})
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, queueResponse{
		SessionID:    result.SessionID.String(),
		Words:        toWordResponses(result.Words),
		TotalDue:     result.TotalDue,
		ExerciseType: string(result.ExerciseType),
	})
}

// Submit handles POST /reviews with a single word review.
func (h *ReviewsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.SubmitReview(r.Context(), review.SubmitReviewInput{
		WordID:    req.WordID,
		Rating:    domain.Rating(req.Rating),
		SessionID: req.SessionID,
	})
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, reviewResponse{
		Word:            toWordResponse(result.Word),
		NextReviewText:  result.NextReviewText,
		MasteryAchieved: result.MasteryAchieved,
	})
}

// SubmitBatch handles POST /reviews/batch: one rating applied to every
// word of a sentence exercise, with session counters updated once.
func (h *ReviewsHandler) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	var req submitBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.SubmitBatch(r.Context(), review.SubmitBatchInput{
		WordIDs:   req.WordIDs,
		Rating:    domain.Rating(req.Rating),
		SessionID: req.SessionID,
	})
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	texts := make(map[string]string, len(result.NextReviewTexts))
	for id, text := range result.NextReviewTexts {
		texts[id.String()] = text
	}

	writeJSON(w, http.StatusOK, batchResponse{
		Words:           toWordResponses(result.Words),
		MasteryCount:    result.MasteryCount,
		NextReviewTexts: texts,
	})
}

// Evaluate handles POST /reviews/evaluate: grade a typed answer against a
// word's original text. The client picks the rating to submit from the
// returned status.
func (h *ReviewsHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	eval, err := h.svc.Evaluate(r.Context(), review.EvaluateInput{
		WordID: req.WordID,
		Answer: req.Answer,
	})
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, evaluateResponse{
		Status:            string(eval.Status),
		CorrectedSpelling: eval.CorrectedSpelling,
	})
}

// EndSession handles POST /reviews/session/end. Without a sessionId the
// user's active session is closed.
func (h *ReviewsHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	var req endSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	summary, err := h.svc.EndSession(r.Context(), review.EndSessionInput{SessionID: req.SessionID})
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionSummaryResponse{
		SessionID:     summary.Session.ID.String(),
		WordsReviewed: summary.WordsReviewed,
		CorrectCount:  summary.Session.CorrectCount,
		AccuracyRate:  summary.AccuracyRate,
		DurationMs:    summary.DurationMs,
	})
}
