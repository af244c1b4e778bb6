package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/esenthil2018/whisper-assistant/internal/contextutil"
	"github.com/esenthil2018/whisper-assistant/internal/retrieval"
	"github.com/esenthil2018/whisper-assistant/internal/vectorstore"
)

const fallbackLimit = 5

// fileKeywords routes queries that name a well-known repository file to a
// filtered lookup on that file. Checked in order, first match wins.
var fileKeywords = []struct {
	file     string
	keywords []string
}{
	{"requirements.txt", []string{"requirement", "dependency", "dependencies", "package"}},
	{"README.md", []string{"readme", "instruction", "overview", "getting started"}},
	{"CHANGELOG.md", []string{"changelog", "change", "update", "version"}},
	{"model-card.md", []string{"model card", "capability", "specification"}},
}

// DocumentSearcher is the last-resort search over raw repository documents.
// It runs only when the primary retrieval pipeline comes back empty.
type DocumentSearcher struct {
	embedder   Embedder
	store      vectorstore.VectorStore
	collection string
}

// NewDocumentSearcher creates a fallback searcher over the raw-text collection.
func NewDocumentSearcher(embedder Embedder, store vectorstore.VectorStore, collection string) *DocumentSearcher {
	return &DocumentSearcher{embedder: embedder, store: store, collection: collection}
}

// Search returns documentation results for the query, or an empty slice when
// nothing relevant exists. Queries naming a well-known file fetch that file's
// chunks directly; everything else falls back to semantic search.
func (s *DocumentSearcher) Search(ctx context.Context, userQuery string) ([]retrieval.Result, error) {
	logger := contextutil.LoggerFromContext(ctx)
	queryLower := strings.ToLower(userQuery)

	for _, route := range fileKeywords {
		if !containsAny(queryLower, route.keywords) {
			continue
		}
		logger.DebugContext(ctx, "fallback routed to specific file", "file", route.file)
		return s.searchFile(ctx, userQuery, route.file)
	}

	return s.searchSemantic(ctx, userQuery)
}

// searchFile fetches chunks belonging to one file and merges them into a
// single result so the LLM sees the file as one block.
func (s *DocumentSearcher) searchFile(ctx context.Context, userQuery, fileName string) ([]retrieval.Result, error) {
	vectors, err := s.embedder.EmbedTexts(ctx, []string{userQuery})
	if err != nil {
		return nil, fmt.Errorf("failed to embed fallback query: %w", err)
	}

	filters := map[string]any{"file_name": fileName}
	results, err := s.store.Search(ctx, s.collection, vectors[0], searchLimit, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	contents := make([]string, 0, len(results))
	for _, result := range results {
		if text, ok := result.Payload["content"].(string); ok && text != "" {
			contents = append(contents, text)
		}
	}
	if len(contents) == 0 {
		return nil, nil
	}

	return []retrieval.Result{{
		Content:   strings.Join(contents, "\n"),
		Metadata:  map[string]any{"type": "documentation", "file_name": fileName},
		Relevance: 1.0,
	}}, nil
}

func (s *DocumentSearcher) searchSemantic(ctx context.Context, userQuery string) ([]retrieval.Result, error) {
	vectors, err := s.embedder.EmbedTexts(ctx, []string{userQuery})
	if err != nil {
		return nil, fmt.Errorf("failed to embed fallback query: %w", err)
	}

	results, err := s.store.Search(ctx, s.collection, vectors[0], fallbackLimit, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}

	var kept []retrieval.Result
	for _, raw := range results {
		result, ok := retrieval.Normalize(hitFromPayload(raw), userQuery)
		if !ok || result.Relevance <= retrieval.MinRelevance {
			continue
		}
		kept = append(kept, result)
	}
	return kept, nil
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
