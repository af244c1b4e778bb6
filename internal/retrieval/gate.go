package retrieval

// MinContextChars is the combined content length the context must exceed
// before the language model is invoked.
const MinContextChars = 100

// IsSufficient reports whether the aggregated context is rich enough to
// justify a language-model call: at least one query type produced results and
// the combined content length across all types exceeds MinContextChars.
func IsSufficient(c Context) bool {
	if len(c) == 0 {
		return false
	}

	hasResults := false
	totalLength := 0
	for _, results := range c {
		if len(results) > 0 {
			hasResults = true
		}
		for _, result := range results {
			totalLength += len(result.Content)
		}
	}

	return hasResults && totalLength > MinContextChars
}
