// Package api exposes the study engine over a small JSON HTTP interface.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/heather92115/palabras/pkg/models"
)

// StudyService is the part of study.Service the handlers use.
type StudyService interface {
	GetBatch(ctx context.Context, userID int64, limit int) ([]models.StudyPair, error)
	GradeAttempt(ctx context.Context, vocabID, studyID int64, entered string) (string, error)
	BuildPrompt(vocab models.Vocab, userNotes string) string
	UserProgress(ctx context.Context, userID int64) (*models.UserProgress, error)
	StudyStats(ctx context.Context, studyID int64) (*models.StudyPair, error)
}

// StudyItem is one prompt of a served batch.
type StudyItem struct {
	VocabID      int64  `json:"vocab_id"`
	VocabStudyID int64  `json:"vocab_study_id"`
	Prompt       string `json:"prompt"`
}

// CheckRequest is the body of POST /study/check.
type CheckRequest struct {
	VocabID      int64  `json:"vocab_id" validate:"required,gt=0"`
	VocabStudyID int64  `json:"vocab_study_id" validate:"required,gt=0"`
	Entered      string `json:"entered"`
}

// CheckResponse carries the outcome message for the user.
type CheckResponse struct {
	Message string `json:"message"`
}

// StudyHandler serves study batches and grades answers.
type StudyHandler struct {
	service      StudyService
	defaultLimit int
	validator    *validator.Validate
	logger       *slog.Logger
}

// NewStudyHandler creates a StudyHandler. defaultLimit is used when a request
// does not name a limit.
func NewStudyHandler(service StudyService, defaultLimit int, logger *slog.Logger) *StudyHandler {
	if service == nil {
		panic("study service cannot be nil for StudyHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StudyHandler{
		service:      service,
		defaultLimit: defaultLimit,
		validator:    validator.New(),
		logger:       logger.With(slog.String("component", "study_handler")),
	}
}

// GetBatch handles GET /study?user_id=&limit=
func (h *StudyHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		respondError(w, http.StatusBadRequest, "user_id must be a positive integer")
		return
	}

	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
	}

	pairs, err := h.service.GetBatch(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to get study batch")
		return
	}

	items := make([]StudyItem, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, StudyItem{
			VocabID:      p.Vocab.ID,
			VocabStudyID: p.Study.ID,
			Prompt:       h.service.BuildPrompt(p.Vocab, p.Study.UserNotes),
		})
	}

	respondJSON(w, http.StatusOK, items)
}

// Check handles POST /study/check
func (h *StudyHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "vocab_id and vocab_study_id are required")
		return
	}

	message, err := h.service.GradeAttempt(r.Context(), req.VocabID, req.VocabStudyID, req.Entered)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to check answer")
		return
	}

	respondJSON(w, http.StatusOK, CheckResponse{Message: message})
}

// UserProgress handles GET /users/{id}/progress
func (h *StudyHandler) UserProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	progress, err := h.service.UserProgress(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to get user progress")
		return
	}

	respondJSON(w, http.StatusOK, progress)
}

// StudyStats handles GET /studies/{id}
func (h *StudyHandler) StudyStats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	pair, err := h.service.StudyStats(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to get study stats")
		return
	}

	respondJSON(w, http.StatusOK, pair)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}
