package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/esenthil2018/whisper-assistant/internal/contextutil"
	"github.com/esenthil2018/whisper-assistant/internal/llm"
	"github.com/esenthil2018/whisper-assistant/internal/query"
	"github.com/esenthil2018/whisper-assistant/internal/retrieval"
	"github.com/esenthil2018/whisper-assistant/internal/storage"
)

const (
	insufficientAnswer = "I don't have enough information in the indexed repository content to answer this question. Try rephrasing it, or ask about a specific file, function or setting."
	errorAnswer        = "I apologize, but I ran into a problem while answering your question. Please try again."
)

// ChatClient is the language-model dependency of the engine.
type ChatClient interface {
	Complete(ctx context.Context, messages []llm.Message) (llm.Completion, error)
}

// FallbackSearcher is the last-resort document search used when the primary
// retrieval pipeline produces insufficient context.
type FallbackSearcher interface {
	Search(ctx context.Context, userQuery string) ([]retrieval.Result, error)
}

// Cache stores final response payloads keyed by the exact query string.
type Cache interface {
	Get(ctx context.Context, query string) ([]byte, bool)
	Store(ctx context.Context, query string, payload []byte)
}

// Engine answers questions about the indexed repository.
type Engine struct {
	classifier *query.Classifier
	expander   *query.Expander
	retriever  *retrieval.Retriever
	fallback   FallbackSearcher
	repoInfo   storage.RepoInfoStore
	chat       ChatClient
	cache      Cache
}

// NewEngine creates an engine. fallback, repoInfo and cache may be nil, in
// which case the corresponding step is skipped.
func NewEngine(retriever *retrieval.Retriever, chat ChatClient, fallback FallbackSearcher, repoInfo storage.RepoInfoStore, cache Cache) *Engine {
	return &Engine{
		classifier: query.NewClassifier(),
		expander:   query.NewExpander(),
		retriever:  retriever,
		fallback:   fallback,
		repoInfo:   repoInfo,
		chat:       chat,
		cache:      cache,
	}
}

// ProcessQuery answers one question. It always returns a well-formed Response;
// pipeline failures are reported in-band via the Error field and the metadata
// status rather than as a Go error.
func (e *Engine) ProcessQuery(ctx context.Context, question string) Response {
	logger := contextutil.LoggerFromContext(ctx)

	if e.cache != nil {
		if payload, ok := e.cache.Get(ctx, question); ok {
			var cached Response
			if err := json.Unmarshal(payload, &cached); err == nil {
				logger.DebugContext(ctx, "cache hit", "query", question)
				return cached
			}
			logger.WarnContext(ctx, "discarding malformed cache entry", "query", question)
		}
	}

	classified := e.classifier.Classify(ctx, question)
	retrieved := e.retrieveContext(ctx, classified)

	if !retrieval.IsSufficient(retrieved) {
		fallbackResults := e.fallbackSearch(ctx, question)
		if len(fallbackResults) == 0 {
			logger.InfoContext(ctx, "insufficient context for query", "query", question)
			return Response{
				Answer:  insufficientAnswer,
				Sources: []Source{},
				Metadata: map[string]any{
					"query_type":   classified.Types,
					"context_used": contextCounts(retrieved),
					"status":       StatusInsufficientContext,
				},
			}
		}
		retrieved = retrieval.Context{query.TypeDocumentation: fallbackResults}
	}

	messages := buildMessages(question, classified.Types, retrieved, e.repositoryOverview(ctx, classified))

	completion, err := e.chat.Complete(ctx, messages)
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate answer", "query", question, "error", err)
		return Response{
			Answer:  errorAnswer,
			Sources: []Source{},
			Metadata: map[string]any{
				"query_type": classified.Types,
				"status":     StatusError,
			},
			Error: err.Error(),
		}
	}

	response := Response{
		Answer:  completion.Text,
		Sources: extractSources(retrieved),
		Metadata: map[string]any{
			"query_type":    classified.Types,
			"context_used":  contextCounts(retrieved),
			"status":        StatusSuccess,
			"model":         completion.Model,
			"finish_reason": completion.FinishReason,
		},
	}

	if e.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			e.cache.Store(ctx, question, payload)
		}
	}
	return response
}

// retrieveContext runs the expand-retrieve-normalize-rank chain once per
// classified query type. Types yielding nothing are left out of the map.
func (e *Engine) retrieveContext(ctx context.Context, classified query.Classified) retrieval.Context {
	retrieved := make(retrieval.Context, len(classified.Types))
	for _, qtype := range classified.Types {
		terms := e.expander.Expand(ctx, classified, qtype)
		raw := e.retriever.Retrieve(ctx, terms, qtype)
		ranked := retrieval.Rank(retrieval.NormalizeAll(raw, classified.OriginalQuery), classified.OriginalQuery)
		if len(ranked) > 0 {
			retrieved[qtype] = ranked
		}
	}
	return retrieved
}

func (e *Engine) fallbackSearch(ctx context.Context, question string) []retrieval.Result {
	if e.fallback == nil {
		return nil
	}
	logger := contextutil.LoggerFromContext(ctx)
	results, err := e.fallback.Search(ctx, question)
	if err != nil {
		logger.WarnContext(ctx, "fallback document search failed", "error", err)
		return nil
	}
	return results
}

// repositoryOverview returns stored repository stats and summaries for
// documentation and setup questions. Missing info is not an error.
func (e *Engine) repositoryOverview(ctx context.Context, classified query.Classified) string {
	if e.repoInfo == nil {
		return ""
	}
	if !classified.HasType(query.TypeDocumentation) && !classified.HasType(query.TypeSetup) {
		return ""
	}
	logger := contextutil.LoggerFromContext(ctx)

	var parts []string
	for _, key := range []string{storage.RepoInfoStats, storage.RepoInfoSummaries} {
		value, err := e.repoInfo.Get(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			logger.WarnContext(ctx, "failed to load repository info", "key", key, "error", err)
			continue
		}
		parts = append(parts, value)
	}
	return strings.Join(parts, "\n")
}

// extractSources collects one source per unique (type, file) pair, first seen
// wins, iterating sections in the prompt order for determinism.
func extractSources(c retrieval.Context) []Source {
	sources := []Source{}
	seen := make(map[string]struct{})
	for _, qtype := range promptSectionOrder {
		for _, result := range c[qtype] {
			source := Source{
				Type: metadataString(result.Metadata, "type", qtype),
				File: fileFromMetadata(result.Metadata),
			}
			if source.File == "" {
				continue
			}
			key := source.Type + "\x00" + source.File
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			sources = append(sources, source)
		}
	}
	return sources
}

func fileFromMetadata(metadata map[string]any) string {
	for _, key := range []string{"file_path", "file_name", "source"} {
		if v := metadataString(metadata, key, ""); v != "" {
			return v
		}
	}
	return ""
}

func metadataString(metadata map[string]any, key, fallback string) string {
	if v, ok := metadata[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func contextCounts(c retrieval.Context) map[string]int {
	counts := make(map[string]int, len(c))
	for qtype, results := range c {
		counts[qtype] = len(results)
	}
	return counts
}
