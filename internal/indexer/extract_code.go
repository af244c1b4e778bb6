package indexer

import (
	"regexp"
	"sort"
	"strings"
)

// CodeSnippet is one extracted top-level Python definition.
type CodeSnippet struct {
	Name       string
	Kind       string // "function" or "class"
	Parameters []string
	ReturnType string
	Docstring  string
	Content    string
	FilePath   string
}

var (
	// Top-level definitions only: no leading indentation.
	defPattern   = regexp.MustCompile(`(?m)^def\s+(\w+)\s*\(([^)]*)\)\s*(?:->\s*([^:\n]+))?\s*:`)
	classPattern = regexp.MustCompile(`(?m)^class\s+(\w+)`)

	docstringPattern = regexp.MustCompile(`(?s)^\s*(?:"""(.*?)"""|'''(.*?)''')`)
)

// ExtractCodeSnippets parses Python source text and returns its top-level
// functions and classes. Parsing is line-pattern based, which covers the
// conventional layouts; exotic formatting may be missed rather than misread.
func ExtractCodeSnippets(source, filePath string) []CodeSnippet {
	type match struct {
		start int
		kind  string
		subs  []string
	}
	var matches []match

	for _, m := range defPattern.FindAllStringSubmatchIndex(source, -1) {
		matches = append(matches, match{
			start: m[0],
			kind:  "function",
			subs:  submatchStrings(source, m, 3),
		})
	}
	for _, m := range classPattern.FindAllStringSubmatchIndex(source, -1) {
		matches = append(matches, match{
			start: m[0],
			kind:  "class",
			subs:  submatchStrings(source, m, 1),
		})
	}
	if len(matches) == 0 {
		return nil
	}

	// Sort by position so each snippet's body runs to the next definition.
	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	snippets := make([]CodeSnippet, 0, len(matches))
	for i, m := range matches {
		end := len(source)
		if i+1 < len(matches) {
			end = matches[i+1].start
		}
		body := strings.TrimRight(source[m.start:end], "\n")

		snippet := CodeSnippet{
			Name:      m.subs[0],
			Kind:      m.kind,
			Docstring: extractDocstring(body),
			Content:   body,
			FilePath:  filePath,
		}
		if m.kind == "function" {
			snippet.Parameters = parseParameters(m.subs[1])
			snippet.ReturnType = strings.TrimSpace(m.subs[2])
		}
		snippets = append(snippets, snippet)
	}
	return snippets
}

func submatchStrings(source string, indexes []int, count int) []string {
	subs := make([]string, count)
	for i := 0; i < count; i++ {
		lo, hi := indexes[2+2*i], indexes[3+2*i]
		if lo >= 0 {
			subs[i] = source[lo:hi]
		}
	}
	return subs
}

// extractDocstring returns the triple-quoted string opening a definition
// body, trimmed, or empty when the definition has none. Multi-line signatures
// are not recognized.
func extractDocstring(body string) string {
	nl := strings.Index(body, "\n")
	if nl < 0 {
		return ""
	}
	m := docstringPattern.FindStringSubmatch(body[nl+1:])
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(m[2])
}

// parseParameters splits a def signature's parameter list, dropping self and
// default values but keeping type annotations.
func parseParameters(raw string) []string {
	var params []string
	for _, part := range strings.Split(raw, ",") {
		param := strings.TrimSpace(part)
		if param == "" || param == "self" || param == "cls" {
			continue
		}
		if eq := strings.Index(param, "="); eq >= 0 {
			param = strings.TrimSpace(param[:eq])
		}
		params = append(params, param)
	}
	return params
}
