package assistant

import (
	"fmt"
	"strings"

	"github.com/esenthil2018/whisper-assistant/internal/llm"
	"github.com/esenthil2018/whisper-assistant/internal/query"
	"github.com/esenthil2018/whisper-assistant/internal/retrieval"
)

const baseSystemPrompt = `You are a technical assistant answering questions about a specific code repository.

Rules:
1. Answer ONLY from the provided context. Never use outside knowledge about this or any other project.
2. If the context does not contain the answer, say so explicitly instead of guessing.
3. Quote exact names of functions, variables, files and commands as they appear in the context.
4. Keep answers concise and factual.`

// typeGuidance adds per-type instructions to the system prompt.
var typeGuidance = map[string]string{
	query.TypeAPI:           "When describing APIs, include the full signature, parameters and return type from the context.",
	query.TypeSetup:         "For setup questions, list the exact packages, versions and environment variables named in the context, and mark which are required.",
	query.TypeCode:          "When explaining code, refer to the specific functions and files shown in the context.",
	query.TypeDocumentation: "Summarize only what the provided documentation states.",
}

const promptReminder = "Remember: answer only from the context in the user message. If it does not answer the question, say that the repository's indexed content does not cover it."

// sectionTitles maps query types to their context section headings.
var sectionTitles = map[string]string{
	query.TypeAPI:           "API Reference",
	query.TypeSetup:         "Setup and Dependencies",
	query.TypeCode:          "Code",
	query.TypeDocumentation: "Documentation",
}

// promptSectionOrder puts setup context first so dependency and installation
// details are not pushed out of the model's attention by long code blocks.
var promptSectionOrder = []string{
	query.TypeSetup,
	query.TypeAPI,
	query.TypeCode,
	query.TypeDocumentation,
}

// buildSystemPrompt composes the base prompt with guidance for each query type.
func buildSystemPrompt(queryTypes []string) string {
	var b strings.Builder
	b.WriteString(baseSystemPrompt)
	for _, qtype := range queryTypes {
		if guidance, ok := typeGuidance[qtype]; ok {
			b.WriteString("\n")
			b.WriteString(guidance)
		}
	}
	return b.String()
}

// buildUserPrompt renders the retrieved context, optional repository overview
// and the question into the user message.
func buildUserPrompt(question string, c retrieval.Context, repoInfo string) string {
	var b strings.Builder
	b.WriteString("Context from the repository:\n\n")

	for _, qtype := range promptSectionOrder {
		results := c[qtype]
		if len(results) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", sectionTitles[qtype])
		for _, result := range results {
			b.WriteString(result.Content)
			b.WriteString("\n\n")
		}
	}

	if repoInfo != "" {
		b.WriteString("## Repository Overview\n\n")
		b.WriteString(repoInfo)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Question: %s", question)
	return b.String()
}

// buildMessages assembles the chat messages: the system prompt, a grounding
// reminder as a second system message, then the user message with context and
// question.
func buildMessages(question string, queryTypes []string, c retrieval.Context, repoInfo string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: buildSystemPrompt(queryTypes)},
		{Role: llm.RoleSystem, Content: promptReminder},
		{Role: llm.RoleUser, Content: buildUserPrompt(question, c, repoInfo)},
	}
}
