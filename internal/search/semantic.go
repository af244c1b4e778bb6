// Package search provides the retrieval backends: semantic search over the
// Qdrant collections, structured lookups over the SQLite metadata store, and
// the last-resort plain-document search.
package search

import (
	"context"
	"fmt"

	"github.com/esenthil2018/whisper-assistant/internal/query"
	"github.com/esenthil2018/whisper-assistant/internal/vectorstore"
)

// searchLimit is how many candidates a single semantic lookup requests.
// Thresholding and capping happen later in the ranker.
const searchLimit = 20

// Embedder turns texts into vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// SemanticSearcher implements retrieval.Searcher over the vector store.
// Query types map to collections: code and api queries search code snippets,
// everything else searches documentation.
type SemanticSearcher struct {
	embedder       Embedder
	store          vectorstore.VectorStore
	codeCollection string
	docCollection  string
}

// NewSemanticSearcher creates a semantic searcher over the two collections.
func NewSemanticSearcher(embedder Embedder, store vectorstore.VectorStore, codeCollection, docCollection string) *SemanticSearcher {
	return &SemanticSearcher{
		embedder:       embedder,
		store:          store,
		codeCollection: codeCollection,
		docCollection:  docCollection,
	}
}

// Search embeds the term and returns raw hits from the collection matching
// the query type. Each hit carries the similarity-derived relevance in [0,1].
func (s *SemanticSearcher) Search(ctx context.Context, term, queryType string) ([]any, error) {
	vectors, err := s.embedder.EmbedTexts(ctx, []string{term})
	if err != nil {
		return nil, fmt.Errorf("failed to embed search term: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned for search term")
	}

	collection := s.docCollection
	if queryType == query.TypeCode || queryType == query.TypeAPI {
		collection = s.codeCollection
	}

	results, err := s.store.Search(ctx, collection, vectors[0], searchLimit, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to search vector store: %w", err)
	}

	hits := make([]any, 0, len(results))
	for _, result := range results {
		hits = append(hits, hitFromPayload(result))
	}
	return hits, nil
}

// hitFromPayload converts one vector-store result into the raw hit shape the
// normalizer understands: content, metadata and a clamped relevance score.
func hitFromPayload(result vectorstore.SearchResult) map[string]any {
	var content any
	metadata := make(map[string]any, len(result.Payload))
	for k, v := range result.Payload {
		if k == "content" {
			content = v
			continue
		}
		metadata[k] = v
	}

	relevance := float64(result.Score)
	if relevance < 0 {
		relevance = 0
	}
	if relevance > 1 {
		relevance = 1
	}

	return map[string]any{
		"content":   content,
		"metadata":  metadata,
		"relevance": relevance,
	}
}
