package query

import (
	"context"
	"testing"
)

func TestExpandIncludesOriginalFirst(t *testing.T) {
	expander := NewExpander()
	classified := Classified{OriginalQuery: "How to install whisper"}

	terms := expander.Expand(context.Background(), classified, TypeSetup)
	if len(terms) == 0 {
		t.Fatal("no terms returned")
	}
	if terms[0] != "How to install whisper" {
		t.Errorf("first term = %q, want the original query", terms[0])
	}
}

func TestExpandVariantsAndCombinations(t *testing.T) {
	expander := NewExpander()
	classified := Classified{
		OriginalQuery: "how to install whisper",
		Entities:      Entities{SpecificTerm: "whisper"},
	}

	terms := expander.Expand(context.Background(), classified, TypeSetup)

	want := []string{
		"whisper",         // entity on its own
		"install whisper", // keyword + entity
		"setup whisper",
		"how to", // 2-word substring
	}
	for _, w := range want {
		if !containsTerm(terms, w) {
			t.Errorf("expanded terms missing %q: %v", w, terms)
		}
	}
}

func TestExpandKeywordStripping(t *testing.T) {
	expander := NewExpander()
	classified := Classified{OriginalQuery: "install whisper"}

	terms := expander.Expand(context.Background(), classified, TypeSetup)
	if !containsTerm(terms, "whisper") {
		t.Errorf("expected keyword-stripped variant %q in %v", "whisper", terms)
	}
}

func TestExpandNoDuplicates(t *testing.T) {
	expander := NewExpander()
	classified := Classified{
		OriginalQuery: "install install install whisper",
		Entities:      Entities{SpecificTerm: "install"},
	}

	terms := expander.Expand(context.Background(), classified, TypeSetup)
	seen := make(map[string]int)
	for _, term := range terms {
		seen[term]++
		if seen[term] > 1 {
			t.Errorf("duplicate term %q in %v", term, terms)
		}
	}
}

func TestExpandUnknownTypeStillReturnsQuery(t *testing.T) {
	expander := NewExpander()
	classified := Classified{OriginalQuery: "anything at all"}

	terms := expander.Expand(context.Background(), classified, "unknown")
	if len(terms) == 0 || terms[0] != "anything at all" {
		t.Errorf("terms = %v, want original query first", terms)
	}
}

func containsTerm(terms []string, want string) bool {
	for _, term := range terms {
		if term == want {
			return true
		}
	}
	return false
}
