package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks github.com/esenthil2018/whisper-assistant/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with its payload. The snippet text itself is
// carried in the payload under "content" alongside file metadata.
type Point struct {
	ID      string
	Vec     []float32
	Payload map[string]any
}

// SearchResult represents one similarity-search hit.
type SearchResult struct {
	PointID string
	Score   float32
	Payload map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search. filters, when non-empty, restrict
	// hits to points whose payload fields exactly match the given values.
	Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error

	// EnsureCollection creates the collection if missing and validates its
	// vector size otherwise.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error
}
