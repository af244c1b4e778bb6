package assistant

import (
	"strings"
	"testing"

	"github.com/esenthil2018/whisper-assistant/internal/query"
	"github.com/esenthil2018/whisper-assistant/internal/retrieval"
)

func TestBuildSystemPromptIncludesTypeGuidance(t *testing.T) {
	prompt := buildSystemPrompt([]string{query.TypeSetup, query.TypeAPI})

	if !strings.Contains(prompt, "Answer ONLY from the provided context") {
		t.Error("base grounding rule missing")
	}
	if !strings.Contains(prompt, typeGuidance[query.TypeSetup]) {
		t.Error("setup guidance missing")
	}
	if !strings.Contains(prompt, typeGuidance[query.TypeAPI]) {
		t.Error("api guidance missing")
	}
	if strings.Contains(prompt, typeGuidance[query.TypeCode]) {
		t.Error("unrelated code guidance present")
	}
}

func TestBuildUserPromptSetupSectionFirst(t *testing.T) {
	c := retrieval.Context{
		query.TypeCode:  {{Content: "def transcribe(): ..."}},
		query.TypeSetup: {{Content: "torch>=2.0"}},
	}
	prompt := buildUserPrompt("How do I set this up?", c, "")

	setupAt := strings.Index(prompt, "torch>=2.0")
	codeAt := strings.Index(prompt, "def transcribe")
	if setupAt < 0 || codeAt < 0 {
		t.Fatalf("context missing from prompt:\n%s", prompt)
	}
	if setupAt > codeAt {
		t.Error("setup context should precede code context")
	}
	if !strings.Contains(prompt, "Question: How do I set this up?") {
		t.Error("question missing")
	}
}

func TestBuildUserPromptRepositoryOverview(t *testing.T) {
	prompt := buildUserPrompt("q", retrieval.Context{}, "42 files indexed")
	if !strings.Contains(prompt, "Repository Overview") || !strings.Contains(prompt, "42 files indexed") {
		t.Errorf("overview missing:\n%s", prompt)
	}

	without := buildUserPrompt("q", retrieval.Context{}, "")
	if strings.Contains(without, "Repository Overview") {
		t.Error("empty overview rendered a section")
	}
}

func TestBuildUserPromptSkipsEmptySections(t *testing.T) {
	c := retrieval.Context{
		query.TypeDocumentation: {{Content: "docs text"}},
		query.TypeAPI:           {},
	}
	prompt := buildUserPrompt("q", c, "")
	if strings.Contains(prompt, sectionTitles[query.TypeAPI]) {
		t.Error("empty section rendered a heading")
	}
}
