package retrieval

import (
	"encoding/json"
	"fmt"
)

// Normalize converts one raw backend hit into the canonical Result shape.
// Hits that are not structured records are discarded (ok == false): they
// cannot carry content or metadata. Content is coerced to a string, nested
// structures are serialized to canonical JSON, and the relevance score is
// adopted from the hit when present, otherwise computed against the query.
func Normalize(raw any, query string) (Result, bool) {
	hit, ok := raw.(map[string]any)
	if !ok {
		return Result{}, false
	}

	result := Result{Metadata: map[string]any{}}

	switch content := hit["content"].(type) {
	case string:
		result.Content = content
	case nil:
		result.Content = ""
	case map[string]any, []any:
		// json.Marshal sorts map keys, so the serialization is stable
		if data, err := json.Marshal(content); err == nil {
			result.Content = string(data)
		} else {
			result.Content = fmt.Sprint(content)
		}
	default:
		result.Content = fmt.Sprint(content)
	}

	if metadata, ok := hit["metadata"].(map[string]any); ok {
		result.Metadata = metadata
	}

	if relevance, ok := numericField(hit["relevance"]); ok {
		result.Relevance = clamp(relevance)
	} else {
		result.Relevance = Score(result.Content, query)
	}

	return result, true
}

// NormalizeAll normalizes a raw hit sequence, silently dropping malformed hits.
func NormalizeAll(raw []any, query string) []Result {
	results := make([]Result, 0, len(raw))
	for _, hit := range raw {
		if result, ok := Normalize(hit, query); ok {
			results = append(results, result)
		}
	}
	return results
}

func numericField(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
