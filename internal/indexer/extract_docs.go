package indexer

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

const (
	minSectionRunes = 50
	maxSectionRunes = 1500
)

// Section is one documentation unit: the text under a heading, tagged with
// the full heading path leading to it.
type Section struct {
	HeadingPath string
	Text        string
}

// DocChunker splits markdown documents into sections along heading boundaries
// using goldmark AST parsing.
type DocChunker struct {
	parser goldmark.Markdown
}

// NewDocChunker creates a new markdown chunker.
func NewDocChunker() *DocChunker {
	return &DocChunker{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

type headingInfo struct {
	level int
	text  string
}

// Chunk splits markdown content into heading-delimited sections. Content
// before the first heading goes into a section titled after the file. Tiny
// sections are merged into their predecessor, oversized ones split at line
// boundaries.
func (c *DocChunker) Chunk(content []byte, fileName string) []Section {
	if len(content) == 0 {
		return nil
	}

	reader := text.NewReader(content)
	doc := c.parser.Parser().Parse(reader)

	var sections []Section
	var current *Section
	var stack []headingInfo

	appendText := func(s string) {
		if current == nil {
			current = &Section{HeadingPath: "# " + fileName}
		}
		current.Text += s
	}
	newline := func() {
		if current != nil && current.Text != "" && !strings.HasSuffix(current.Text, "\n") {
			current.Text += "\n"
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			for len(stack) > 0 && stack[len(stack)-1].level >= node.Level {
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, headingInfo{level: node.Level, text: nodeText(node, content)})

			if current != nil && strings.TrimSpace(current.Text) != "" {
				sections = append(sections, *current)
			}
			current = &Section{HeadingPath: headingPath(stack)}
			return ast.WalkSkipChildren, nil

		case *ast.Text:
			appendText(string(node.Segment.Value(content)))

		case *ast.String:
			appendText(string(node.Value))

		case *ast.CodeBlock:
			newline()
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				appendText(string(seg.Value(content)))
			}

		case *ast.FencedCodeBlock:
			newline()
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				appendText(string(seg.Value(content)))
			}

		case *ast.Paragraph, *ast.List, *ast.ListItem:
			newline()
		}
		return ast.WalkContinue, nil
	})

	if current != nil && strings.TrimSpace(current.Text) != "" {
		sections = append(sections, *current)
	}
	if len(sections) == 0 {
		return []Section{{HeadingPath: "# " + fileName, Text: string(content)}}
	}

	return applySizeConstraints(sections)
}

// headingPath renders the heading stack as "# A > ## B > ### C".
func headingPath(stack []headingInfo) string {
	parts := make([]string, len(stack))
	for i, h := range stack {
		parts[i] = strings.Repeat("#", h.level) + " " + h.text
	}
	return strings.Join(parts, " > ")
}

func nodeText(n ast.Node, content []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(content))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// applySizeConstraints merges undersized sections into their predecessor and
// splits oversized ones at line boundaries. Sizes are measured in runes.
func applySizeConstraints(sections []Section) []Section {
	merged := make([]Section, 0, len(sections))
	for _, section := range sections {
		if len(merged) > 0 && utf8.RuneCountInString(section.Text) < minSectionRunes {
			merged[len(merged)-1].Text += "\n\n" + section.HeadingPath + "\n" + section.Text
			continue
		}
		merged = append(merged, section)
	}

	var result []Section
	for _, section := range merged {
		result = append(result, splitSection(section)...)
	}
	return result
}

func splitSection(section Section) []Section {
	runes := []rune(section.Text)
	if len(runes) <= maxSectionRunes {
		return []Section{section}
	}

	var splits []Section
	start := 0
	for start < len(runes) {
		end := start + maxSectionRunes
		if end >= len(runes) {
			splits = append(splits, Section{HeadingPath: section.HeadingPath, Text: string(runes[start:])})
			break
		}
		window := string(runes[start:end])
		cut := end
		if nl := strings.LastIndex(window, "\n"); nl > 0 {
			cut = start + len([]rune(window[:nl+1]))
		}
		splits = append(splits, Section{HeadingPath: section.HeadingPath, Text: string(runes[start:cut])})
		start = cut
	}
	return splits
}
