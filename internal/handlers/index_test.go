package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeIndexer struct {
	err    error
	called bool
}

func (f *fakeIndexer) IndexAll(ctx context.Context) error {
	f.called = true
	return f.err
}

type fakeFlusher struct {
	flushes int
}

func (f *fakeFlusher) Flush(ctx context.Context) {
	f.flushes++
}

func TestIndexHandlerFlushesCache(t *testing.T) {
	pipeline := &fakeIndexer{}
	flusher := &fakeFlusher{}
	handler := NewIndexHandler(pipeline, flusher)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/index", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !pipeline.called {
		t.Error("pipeline was not run")
	}
	if flusher.flushes != 1 {
		t.Errorf("cache flushes = %d, want 1", flusher.flushes)
	}

	var resp IndexResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}

func TestIndexHandlerFlushesCacheOnPartialFailure(t *testing.T) {
	pipeline := &fakeIndexer{err: errors.New("indexing completed with 3 errors")}
	flusher := &fakeFlusher{}
	handler := NewIndexHandler(pipeline, flusher)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/index", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	// Even a partial re-index changes indexed content, so cached answers go
	if flusher.flushes != 1 {
		t.Errorf("cache flushes = %d, want 1", flusher.flushes)
	}
}

func TestIndexHandlerWithoutCache(t *testing.T) {
	handler := NewIndexHandler(&fakeIndexer{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/index", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
