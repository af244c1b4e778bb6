package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/esenthil2018/whisper-assistant/internal/contextutil"
)

// Indexer runs a full index of the repository.
type Indexer interface {
	IndexAll(ctx context.Context) error
}

// CacheFlusher empties the response cache.
type CacheFlusher interface {
	Flush(ctx context.Context)
}

// IndexHandler triggers a full re-index of the repository.
type IndexHandler struct {
	pipeline Indexer
	cache    CacheFlusher
}

// NewIndexHandler creates a new IndexHandler. cache may be nil.
func NewIndexHandler(pipeline Indexer, cache CacheFlusher) *IndexHandler {
	return &IndexHandler{pipeline: pipeline, cache: cache}
}

// IndexResponse is the payload returned by the index endpoint.
type IndexResponse struct {
	Status string `json:"status"`
}

// ServeHTTP re-indexes the repository synchronously. Partial failures return
// 500 with the error message; the successfully indexed files remain usable.
// The response cache is flushed either way, since even a partial re-index
// changes the indexed content that cached answers were built from.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	err := h.pipeline.IndexAll(ctx)
	if h.cache != nil {
		h.cache.Flush(ctx)
	}
	if err != nil {
		logger.ErrorContext(ctx, "indexing failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(IndexResponse{Status: "ok"})
}
