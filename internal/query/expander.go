package query

import (
	"context"
	"strings"

	"github.com/esenthil2018/whisper-assistant/internal/contextutil"
)

// keyTerms associates each query type with the keywords used to derive
// search-term variants.
var keyTerms = map[string][]string{
	TypeAPI:           {"function", "method", "endpoint", "call", "api", "interface", "use", "using"},
	TypeCode:          {"implementation", "class", "function", "method", "variable", "code", "example"},
	TypeDocumentation: {"documentation", "guide", "example", "tutorial", "readme", "how to", "usage"},
	TypeSetup:         {"setup", "install", "requirement", "dependency", "package", "installation"},
}

// Expander produces expanded search-term sets for a classified query.
// Duplicates only cost extra retrieval calls downstream, never correctness,
// but the returned slice is deduplicated anyway.
type Expander struct{}

// NewExpander creates a new Expander.
func NewExpander() *Expander {
	return &Expander{}
}

// Expand returns the search terms for one query type: the original query,
// keyword-stripped variants, entity values, keyword+entity combinations and
// the 2-word substrings of longer queries. Order is first-insertion.
func (e *Expander) Expand(ctx context.Context, classified Classified, queryType string) []string {
	logger := contextutil.LoggerFromContext(ctx)

	seen := make(map[string]struct{})
	var terms []string
	add := func(term string) {
		if term == "" {
			return
		}
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	add(classified.OriginalQuery)

	lower := strings.ToLower(classified.OriginalQuery)
	keywords := keyTerms[queryType]

	// Variants with a present keyword removed
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			stripped := strings.TrimSpace(strings.ReplaceAll(lower, keyword, ""))
			add(stripped)
		}
	}

	// Entity values, alone and combined with each keyword
	for _, entity := range classified.entityValues() {
		add(entity)
		for _, keyword := range keywords {
			add(keyword + " " + entity)
		}
	}

	// Contiguous 2-word substrings of longer queries
	words := strings.Fields(lower)
	if len(words) > 2 {
		for i := 0; i < len(words)-1; i++ {
			add(words[i] + " " + words[i+1])
		}
	}

	logger.DebugContext(ctx, "expanded search terms", "query_type", queryType, "terms", terms)
	return terms
}

// entityValues returns the non-empty entity values in a fixed order.
func (c Classified) entityValues() []string {
	var values []string
	for _, v := range []string{
		c.Entities.FunctionName,
		c.Entities.VariableName,
		c.Entities.FilePath,
		c.Entities.SpecificTerm,
	} {
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}
