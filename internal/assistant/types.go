// Package assistant orchestrates the question-answering pipeline: classify,
// expand, retrieve, rank, gate and finally answer with the language model.
package assistant

// Statuses reported in response metadata.
const (
	StatusSuccess             = "success"
	StatusInsufficientContext = "insufficient_context"
	StatusError               = "error"
)

// Source attributes one piece of retrieved context to a file.
type Source struct {
	Type string `json:"type"`
	File string `json:"file"`
}

// Response is the produced answer envelope. Every query yields one, including
// failures: errors are reported in-band with status "error".
type Response struct {
	Answer   string         `json:"answer"`
	Sources  []Source       `json:"sources"`
	Metadata map[string]any `json:"metadata"`
	Error    string         `json:"error,omitempty"`
}
