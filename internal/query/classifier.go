package query

import (
	"context"
	"regexp"
	"strings"

	"github.com/esenthil2018/whisper-assistant/internal/contextutil"
)

// Type tags assigned by the classifier. A query can carry several.
const (
	TypeAPI           = "api"
	TypeSetup         = "setup"
	TypeCode          = "code"
	TypeDocumentation = "documentation"
)

// typeOrder fixes the order in which matched types are reported.
var typeOrder = []string{TypeAPI, TypeSetup, TypeCode, TypeDocumentation}

// Entities holds lightweight entities extracted from a query.
// An empty string means the entity was not found.
type Entities struct {
	FunctionName string
	VariableName string
	FilePath     string
	SpecificTerm string
}

// Classified is the result of classifying a raw query.
type Classified struct {
	OriginalQuery string
	Types         []string // never empty
	Entities      Entities
}

// HasType reports whether the classified query carries the given type tag.
func (c Classified) HasType(t string) bool {
	for _, qt := range c.Types {
		if qt == t {
			return true
		}
	}
	return false
}

var (
	typePatterns = map[string]*regexp.Regexp{
		TypeAPI:           regexp.MustCompile(`(api|endpoint|function|method|how to call|usage|interface|use|using)`),
		TypeSetup:         regexp.MustCompile(`(setup|install|requirements?|dependencies?|package|configuration)`),
		TypeCode:          regexp.MustCompile(`(implementation|code|source|how does it work|internal|show|example)`),
		TypeDocumentation: regexp.MustCompile(`(documentation|explain|what is|purpose|guide|tutorial|how to)`),
	}

	interrogativePattern = regexp.MustCompile(`^(what|how|why|when|where|which|can|does)`)
	setupHintPattern     = regexp.MustCompile(`(setup|install|configure|requirement)`)
	codeHintPattern      = regexp.MustCompile(`(file|code|implementation|show|content)`)

	functionPattern = regexp.MustCompile(`\b\w+(?:_\w+)*\(\)?`)
	envVarPattern   = regexp.MustCompile(`\b[A-Z][A-Z_]+\b`)
	filePathPattern = regexp.MustCompile(`\b[\w/]+\.(?:py|json|yml|yaml|md|txt)\b`)
	quotedPattern   = regexp.MustCompile(`["'](.*?)["']`)
	wordPattern     = regexp.MustCompile(`\b[a-zA-Z_]\w{2,}\b`)
)

// stopwords excluded when picking a significant term.
var stopwords = map[string]struct{}{
	"how": {}, "what": {}, "the": {}, "for": {}, "and": {},
	"show": {}, "me": {}, "is": {}, "are": {}, "this": {},
}

// Classifier classifies raw questions into query types and extracts entities.
// It is a pure function of the input text plus the static pattern tables.
type Classifier struct{}

// NewClassifier creates a new Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify classifies the query and extracts entities. The returned type list
// is never empty: queries matching no pattern default to documentation.
func (c *Classifier) Classify(ctx context.Context, q string) Classified {
	logger := contextutil.LoggerFromContext(ctx)

	classified := Classified{
		OriginalQuery: q,
		Types:         c.classifyTypes(q),
		Entities:      c.extractEntities(q),
	}

	logger.DebugContext(ctx, "classified query",
		"query", q,
		"types", classified.Types,
		"entities", classified.Entities,
	)
	return classified
}

func (c *Classifier) classifyTypes(q string) []string {
	lower := strings.ToLower(q)
	matched := make(map[string]bool, len(typePatterns))

	for qtype, pattern := range typePatterns {
		if pattern.MatchString(lower) {
			matched[qtype] = true
		}
	}

	// Interrogative openers read as documentation requests
	if interrogativePattern.MatchString(lower) {
		matched[TypeDocumentation] = true
	}
	// Extra recall for setup and code questions, independent of the primary patterns
	if setupHintPattern.MatchString(lower) {
		matched[TypeSetup] = true
	}
	if codeHintPattern.MatchString(lower) {
		matched[TypeCode] = true
	}

	types := make([]string, 0, len(matched))
	for _, qtype := range typeOrder {
		if matched[qtype] {
			types = append(types, qtype)
		}
	}
	if len(types) == 0 {
		types = []string{TypeDocumentation}
	}
	return types
}

func (c *Classifier) extractEntities(q string) Entities {
	var entities Entities

	// First call-like token (identifier followed by parentheses)
	if m := functionPattern.FindString(q); m != "" {
		entities.FunctionName = strings.TrimRight(m, "()")
	}

	// First ALL_CAPS token is a candidate environment variable
	if m := envVarPattern.FindString(q); m != "" {
		entities.VariableName = m
	}

	if m := filePathPattern.FindString(q); m != "" {
		entities.FilePath = m
	}

	// Quoted substring wins; otherwise the first significant word
	if m := quotedPattern.FindStringSubmatch(q); len(m) > 1 && m[1] != "" {
		entities.SpecificTerm = m[1]
	} else {
		for _, word := range wordPattern.FindAllString(q, -1) {
			if _, isStop := stopwords[strings.ToLower(word)]; isStop {
				continue
			}
			entities.SpecificTerm = word
			break
		}
	}

	return entities
}
