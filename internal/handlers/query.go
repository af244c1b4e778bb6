// Package handlers contains the HTTP handlers for the assistant API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/esenthil2018/whisper-assistant/internal/assistant"
	"github.com/esenthil2018/whisper-assistant/internal/contextutil"
)

// QueryHandler handles question-answering requests.
type QueryHandler struct {
	engine *assistant.Engine
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(engine *assistant.Engine) *QueryHandler {
	return &QueryHandler{engine: engine}
}

// QueryRequest is the HTTP request payload for questions.
type QueryRequest struct {
	Question string `json:"question"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP answers one question. Pipeline failures are reported in-band in
// the response body with status "error", so this endpoint returns 200 for any
// well-formed request.
func (h *QueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" {
		logger.WarnContext(ctx, "empty question in request")
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}

	resp := h.engine.ProcessQuery(ctx, req.Question)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
