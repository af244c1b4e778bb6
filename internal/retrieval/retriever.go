package retrieval

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/esenthil2018/whisper-assistant/internal/contextutil"
)

// maxConcurrentSearches bounds the backend fan-out per retrieval call.
const maxConcurrentSearches = 4

// Searcher is a retrieval backend: given a search term and a query type it
// returns raw hits. Hits are heterogeneous records; normalization happens
// downstream.
type Searcher interface {
	Search(ctx context.Context, term, queryType string) ([]any, error)
}

// Retriever fans expanded search terms out over a vector-similarity backend
// and a structured-metadata backend and merges the raw hits. It performs no
// deduplication or ranking.
type Retriever struct {
	vector   Searcher
	metadata Searcher
}

// NewRetriever creates a retriever over the two backends. Either backend may
// be nil, in which case it contributes no hits.
func NewRetriever(vector, metadata Searcher) *Retriever {
	return &Retriever{vector: vector, metadata: metadata}
}

// Retrieve queries both backends for every term and concatenates the raw hits.
// Terms are searched concurrently, but hits are flattened in term order so the
// first-seen order downstream is deterministic. A backend failure for one term
// is logged and treated as zero results for that term; it never aborts
// retrieval for the remaining terms.
func (r *Retriever) Retrieve(ctx context.Context, terms []string, queryType string) []any {
	logger := contextutil.LoggerFromContext(ctx)

	slots := make([][]any, len(terms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSearches)

	for i, term := range terms {
		g.Go(func() error {
			var hits []any

			if r.vector != nil {
				vectorHits, err := r.vector.Search(gctx, term, queryType)
				if err != nil {
					logger.WarnContext(gctx, "vector search failed",
						"term", term, "query_type", queryType, "error", err)
				} else {
					hits = append(hits, vectorHits...)
				}
			}

			if r.metadata != nil {
				metadataHits, err := r.metadata.Search(gctx, term, queryType)
				if err != nil {
					logger.WarnContext(gctx, "metadata search failed",
						"term", term, "query_type", queryType, "error", err)
				} else {
					hits = append(hits, metadataHits...)
				}
			}

			slots[i] = hits
			return nil
		})
	}

	// Workers never return errors; failures degrade to empty slots.
	_ = g.Wait()

	var all []any
	for _, hits := range slots {
		all = append(all, hits...)
	}

	logger.DebugContext(ctx, "retrieval completed",
		"query_type", queryType, "terms", len(terms), "hits", len(all))
	return all
}
