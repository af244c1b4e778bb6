package retrieval

// Result is the canonical shape of a retrieval hit after normalization.
type Result struct {
	// Content is the text of the hit. Structured content is serialized to
	// canonical JSON during normalization.
	Content string
	// Metadata carries backend-provided attributes such as file_path and type.
	Metadata map[string]any
	// Relevance is always in [0.0, 1.0].
	Relevance float64
}

// Context maps a query type to its ranked results. Each list is sorted by
// descending relevance, deduplicated by exact content and capped at
// MaxContextItems.
type Context map[string][]Result
