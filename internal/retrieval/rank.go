package retrieval

import (
	"sort"
	"strings"
)

const (
	// MaxContextItems bounds the ranked result list per query type.
	MaxContextItems = 5
	// MinRelevance is the score below which results are dropped.
	MinRelevance = 0.2

	substringBonus   = 0.2
	similarityWeight = 0.6
	wordMatchWeight  = 0.4

	// maxSimilarityRunes bounds the quadratic similarity computation.
	// Longer inputs are truncated; word overlap still sees the full text.
	maxSimilarityRunes = 1000
)

// Score computes the relevance of content to a query in [0.0, 1.0].
// It blends a sequence-similarity ratio with a word-overlap ratio and adds a
// flat bonus when the query appears verbatim in the content.
func Score(content, query string) float64 {
	if content == "" || query == "" {
		return 0.0
	}

	contentLower := strings.ToLower(content)
	queryLower := strings.ToLower(query)

	score := similarityWeight * similarityRatio(contentLower, queryLower)

	if strings.Contains(contentLower, queryLower) {
		score += substringBonus
	}

	queryWords := strings.Fields(queryLower)
	if len(queryWords) > 0 {
		contentWords := make(map[string]struct{})
		for _, w := range strings.Fields(contentLower) {
			contentWords[w] = struct{}{}
		}
		var matches int
		seen := make(map[string]struct{}, len(queryWords))
		for _, w := range queryWords {
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			if _, ok := contentWords[w]; ok {
				matches++
			}
		}
		score += wordMatchWeight * float64(matches) / float64(len(seen))
	}

	return clamp(score)
}

// Rank sorts results by descending relevance (stable on ties), removes exact
// content duplicates keeping the highest-ranked occurrence, drops results
// below MinRelevance and truncates to MaxContextItems.
func Rank(results []Result, query string) []Result {
	ranked := make([]Result, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Relevance > ranked[j].Relevance
	})

	seen := make(map[string]struct{}, len(ranked))
	unique := make([]Result, 0, len(ranked))
	for _, result := range ranked {
		if result.Relevance < MinRelevance {
			continue
		}
		if _, dup := seen[result.Content]; dup {
			continue
		}
		seen[result.Content] = struct{}{}
		unique = append(unique, result)
		if len(unique) == MaxContextItems {
			break
		}
	}
	return unique
}

// similarityRatio returns a normalized [0,1] sequence similarity between two
// strings: twice the longest common subsequence length over the combined
// length. Identical strings score 1.0, disjoint strings near 0.0.
func similarityRatio(a, b string) float64 {
	ra := truncateRunes(a, maxSimilarityRunes)
	rb := truncateRunes(b, maxSimilarityRunes)
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}

	// Two-row LCS dynamic program
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[len(rb)]
	return 2.0 * float64(lcs) / float64(len(ra)+len(rb))
}

func truncateRunes(s string, limit int) []rune {
	runes := []rune(s)
	if len(runes) > limit {
		return runes[:limit]
	}
	return runes
}

func clamp(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
