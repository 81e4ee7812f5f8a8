package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heather92115/palabras/internal/store"
)

// ErrorResponse is the body of every non 2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps store not found errors to 404 and logs everything else as a 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, message string) {
	if errors.Is(err, store.ErrNotFound) {
		log.DebugContext(r.Context(), "resource not found",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		respondError(w, http.StatusNotFound, "Not found")
		return
	}

	log.ErrorContext(r.Context(), message,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
	respondError(w, http.StatusInternalServerError, message)
}
