package search

import (
	"context"
	"errors"
	"testing"

	"github.com/esenthil2018/whisper-assistant/internal/query"
	"github.com/esenthil2018/whisper-assistant/internal/vectorstore"
)

// fakeEmbedder returns a fixed vector for every input.
type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{0.1, 0.2, 0.3}
	}
	return vectors, nil
}

// fakeVectorStore records the last search and returns canned results.
type fakeVectorStore struct {
	lastCollection string
	lastFilters    map[string]any
	results        []vectorstore.SearchResult
	err            error
}

func (f *fakeVectorStore) Upsert(ctx context.Context, collection string, points []vectorstore.Point) error {
	return nil
}

func (f *fakeVectorStore) Search(ctx context.Context, collection string, queryVec []float32, k int, filters map[string]any) ([]vectorstore.SearchResult, error) {
	f.lastCollection = collection
	f.lastFilters = filters
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeVectorStore) Delete(ctx context.Context, collection string, ids []string) error {
	return nil
}

func (f *fakeVectorStore) EnsureCollection(ctx context.Context, collection string, vectorSize int) error {
	return nil
}

func TestSemanticSearchCollectionRouting(t *testing.T) {
	tests := []struct {
		queryType string
		want      string
	}{
		{query.TypeCode, "code_snippets"},
		{query.TypeAPI, "code_snippets"},
		{query.TypeDocumentation, "documentation"},
		{query.TypeSetup, "documentation"},
	}

	for _, tt := range tests {
		t.Run(tt.queryType, func(t *testing.T) {
			store := &fakeVectorStore{}
			s := NewSemanticSearcher(&fakeEmbedder{}, store, "code_snippets", "documentation")

			if _, err := s.Search(context.Background(), "term", tt.queryType); err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if store.lastCollection != tt.want {
				t.Errorf("searched collection %q, want %q", store.lastCollection, tt.want)
			}
		})
	}
}

func TestSemanticSearchHitShape(t *testing.T) {
	store := &fakeVectorStore{
		results: []vectorstore.SearchResult{
			{
				PointID: "p1",
				Score:   0.85,
				Payload: map[string]any{
					"content":   "def transcribe(): ...",
					"type":      "code",
					"file_path": "whisper/transcribe.py",
				},
			},
		},
	}
	s := NewSemanticSearcher(&fakeEmbedder{}, store, "code_snippets", "documentation")

	hits, err := s.Search(context.Background(), "transcribe", query.TypeCode)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}

	hit, ok := hits[0].(map[string]any)
	if !ok {
		t.Fatalf("hit has type %T, want map", hits[0])
	}
	if hit["content"] != "def transcribe(): ..." {
		t.Errorf("content = %v", hit["content"])
	}
	metadata, ok := hit["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("metadata has type %T", hit["metadata"])
	}
	if metadata["file_path"] != "whisper/transcribe.py" {
		t.Errorf("metadata = %v", metadata)
	}
	if _, present := metadata["content"]; present {
		t.Error("content leaked into metadata")
	}
	relevance, ok := hit["relevance"].(float64)
	if !ok || relevance < 0.84 || relevance > 0.86 {
		t.Errorf("relevance = %v, want about 0.85", hit["relevance"])
	}
}

func TestSemanticSearchClampsScore(t *testing.T) {
	store := &fakeVectorStore{
		results: []vectorstore.SearchResult{
			{PointID: "p1", Score: -0.3, Payload: map[string]any{"content": "x"}},
		},
	}
	s := NewSemanticSearcher(&fakeEmbedder{}, store, "code", "docs")

	hits, err := s.Search(context.Background(), "term", query.TypeCode)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	hit := hits[0].(map[string]any)
	if hit["relevance"] != 0.0 {
		t.Errorf("relevance = %v, want 0.0", hit["relevance"])
	}
}

func TestSemanticSearchEmbedFailure(t *testing.T) {
	s := NewSemanticSearcher(&fakeEmbedder{err: errors.New("quota exceeded")}, &fakeVectorStore{}, "code", "docs")
	if _, err := s.Search(context.Background(), "term", query.TypeCode); err == nil {
		t.Error("expected an error when embedding fails")
	}
}
