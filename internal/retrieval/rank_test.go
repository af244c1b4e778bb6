package retrieval

import (
	"strings"
	"testing"
)

func TestScoreBounds(t *testing.T) {
	tests := []struct {
		name    string
		content string
		query   string
	}{
		{"empty content", "", "query"},
		{"empty query", "content", ""},
		{"identical", "whisper model", "whisper model"},
		{"disjoint", "zzzz", "aaaa"},
		{"long content", strings.Repeat("word ", 5000), "word"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.content, tt.query)
			if got < 0.0 || got > 1.0 {
				t.Errorf("Score(%q, %q) = %f, out of [0,1]", tt.content, tt.query, got)
			}
		})
	}
}

func TestScoreEmptyInputsZero(t *testing.T) {
	if got := Score("", "query"); got != 0.0 {
		t.Errorf("Score with empty content = %f, want 0", got)
	}
	if got := Score("content", ""); got != 0.0 {
		t.Errorf("Score with empty query = %f, want 0", got)
	}
}

func TestScoreIdenticalIsOne(t *testing.T) {
	// similarity 1.0*0.6 + substring 0.2 + full word overlap 0.4, clamped
	if got := Score("whisper model", "whisper model"); got != 1.0 {
		t.Errorf("Score(identical) = %f, want 1.0", got)
	}
}

func TestScoreSubstringFloor(t *testing.T) {
	content := "The transcribe function converts audio to text using the whisper model."
	query := "transcribe function"
	if got := Score(content, query); got < 0.2 {
		t.Errorf("Score with verbatim query = %f, want >= 0.2", got)
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	a := Score("Whisper Model Setup", "whisper model")
	b := Score("whisper model setup", "WHISPER MODEL")
	if a != b {
		t.Errorf("case sensitivity detected: %f vs %f", a, b)
	}
}

func TestRankOrdersByRelevance(t *testing.T) {
	results := []Result{
		{Content: "low", Relevance: 0.3},
		{Content: "high", Relevance: 0.9},
		{Content: "mid", Relevance: 0.5},
	}
	ranked := Rank(results, "query")
	if len(ranked) != 3 {
		t.Fatalf("got %d results, want 3", len(ranked))
	}
	if ranked[0].Content != "high" || ranked[1].Content != "mid" || ranked[2].Content != "low" {
		t.Errorf("wrong order: %v", ranked)
	}
}

func TestRankDropsBelowThreshold(t *testing.T) {
	results := []Result{
		{Content: "keep", Relevance: 0.2},
		{Content: "drop", Relevance: 0.19},
	}
	ranked := Rank(results, "query")
	if len(ranked) != 1 || ranked[0].Content != "keep" {
		t.Errorf("ranked = %v, want only the result at the threshold", ranked)
	}
}

func TestRankDeduplicatesKeepingHighest(t *testing.T) {
	results := []Result{
		{Content: "same text", Relevance: 0.4, Metadata: map[string]any{"rank": "low"}},
		{Content: "same text", Relevance: 0.8, Metadata: map[string]any{"rank": "high"}},
	}
	ranked := Rank(results, "query")
	if len(ranked) != 1 {
		t.Fatalf("got %d results, want 1", len(ranked))
	}
	if ranked[0].Relevance != 0.8 {
		t.Errorf("kept relevance %f, want the higher 0.8", ranked[0].Relevance)
	}
}

func TestRankCapsResults(t *testing.T) {
	var results []Result
	for i := 0; i < MaxContextItems+3; i++ {
		results = append(results, Result{
			Content:   strings.Repeat("x", i+1),
			Relevance: 0.5,
		})
	}
	ranked := Rank(results, "query")
	if len(ranked) != MaxContextItems {
		t.Errorf("got %d results, want %d", len(ranked), MaxContextItems)
	}
}

func TestRankStableOnTies(t *testing.T) {
	results := []Result{
		{Content: "first", Relevance: 0.5},
		{Content: "second", Relevance: 0.5},
		{Content: "third", Relevance: 0.5},
	}
	ranked := Rank(results, "query")
	if ranked[0].Content != "first" || ranked[1].Content != "second" || ranked[2].Content != "third" {
		t.Errorf("tie order not preserved: %v", ranked)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	results := []Result{
		{Content: "b", Relevance: 0.3},
		{Content: "a", Relevance: 0.9},
	}
	_ = Rank(results, "query")
	if results[0].Content != "b" {
		t.Error("input slice was reordered")
	}
}
