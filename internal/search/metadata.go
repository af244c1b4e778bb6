package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/esenthil2018/whisper-assistant/internal/query"
	"github.com/esenthil2018/whisper-assistant/internal/retrieval"
	"github.com/esenthil2018/whisper-assistant/internal/storage"
)

// MetadataSearcher implements retrieval.Searcher over the structured metadata
// tables. API queries match against extracted signatures, setup queries match
// against environment variables; other query types return nothing.
type MetadataSearcher struct {
	apis storage.APIStore
	envs storage.EnvStore
}

// NewMetadataSearcher creates a metadata searcher over the two stores.
func NewMetadataSearcher(apis storage.APIStore, envs storage.EnvStore) *MetadataSearcher {
	return &MetadataSearcher{apis: apis, envs: envs}
}

// Search returns raw hits from whichever table serves the query type.
func (s *MetadataSearcher) Search(ctx context.Context, term, queryType string) ([]any, error) {
	switch queryType {
	case query.TypeAPI:
		return s.searchAPIs(ctx, term)
	case query.TypeSetup:
		return s.searchEnvVars(ctx, term)
	default:
		return nil, nil
	}
}

func (s *MetadataSearcher) searchAPIs(ctx context.Context, term string) ([]any, error) {
	records, err := s.apis.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search api metadata: %w", err)
	}

	hits := make([]any, 0, len(records))
	for _, record := range records {
		hits = append(hits, map[string]any{
			"content": formatAPIRecord(record),
			"metadata": map[string]any{
				"type":      "api",
				"name":      record.Name,
				"file_path": record.FilePath,
			},
		})
	}
	return hits, nil
}

// searchEnvVars lists every known variable and keeps the ones whose name and
// description score at or above the ranking threshold for the term. The table
// is small, so scoring in process beats teaching SQL about relevance.
func (s *MetadataSearcher) searchEnvVars(ctx context.Context, term string) ([]any, error) {
	envVars, err := s.envs.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list environment variables: %w", err)
	}

	var hits []any
	for _, envVar := range envVars {
		if retrieval.Score(envVar.Name+" "+envVar.Description, term) < retrieval.MinRelevance {
			continue
		}
		hits = append(hits, map[string]any{
			"content": formatEnvVariable(envVar),
			"metadata": map[string]any{
				"type":        "env_var",
				"name":        envVar.Name,
				"is_required": envVar.IsRequired,
			},
		})
	}
	return hits, nil
}

// formatAPIRecord renders one signature as the text block the LLM sees.
func formatAPIRecord(record storage.APIRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "API: %s\n", record.Name)
	fmt.Fprintf(&b, "Description: %s\n", record.Docstring)
	b.WriteString("Parameters:\n")
	for _, param := range decodeParameters(record.Parameters) {
		fmt.Fprintf(&b, "- %s\n", param)
	}
	fmt.Fprintf(&b, "Returns: %s", record.ReturnType)
	return b.String()
}

// decodeParameters accepts the JSON forms the extractor produces: a list of
// strings, or a list of {name, type} objects.
func decodeParameters(encoded string) []string {
	if encoded == "" {
		return nil
	}
	var raw []any
	if err := json.Unmarshal([]byte(encoded), &raw); err != nil {
		return []string{encoded}
	}
	params := make([]string, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			params = append(params, v)
		case map[string]any:
			name, _ := v["name"].(string)
			typ, _ := v["type"].(string)
			if typ != "" {
				params = append(params, fmt.Sprintf("%s: %s", name, typ))
			} else {
				params = append(params, name)
			}
		default:
			params = append(params, fmt.Sprint(item))
		}
	}
	return params
}

func formatEnvVariable(envVar storage.EnvVariable) string {
	required := "No"
	if envVar.IsRequired {
		required = "Yes"
	}
	defaultValue := envVar.DefaultValue
	if defaultValue == "" {
		defaultValue = "None"
	}
	return fmt.Sprintf("Environment Variable: %s\nDescription: %s\nRequired: %s\nDefault Value: %s",
		envVar.Name, envVar.Description, required, defaultValue)
}
