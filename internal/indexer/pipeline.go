package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/esenthil2018/whisper-assistant/internal/contextutil"
	"github.com/esenthil2018/whisper-assistant/internal/storage"
	"github.com/esenthil2018/whisper-assistant/internal/vectorstore"
)

// Embedder turns texts into vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline orchestrates indexing of a repository into SQLite and Qdrant.
type Pipeline struct {
	crawler        *Crawler
	apis           storage.APIStore
	envs           storage.EnvStore
	info           storage.RepoInfoStore
	embedder       Embedder
	vectors        vectorstore.VectorStore
	codeCollection string
	docCollection  string
	textCollection string
	chunker        *DocChunker
}

// NewPipeline creates an indexing pipeline for the repository at repoPath.
func NewPipeline(
	repoPath string,
	apis storage.APIStore,
	envs storage.EnvStore,
	info storage.RepoInfoStore,
	embedder Embedder,
	vectors vectorstore.VectorStore,
	codeCollection, docCollection, textCollection string,
) *Pipeline {
	return &Pipeline{
		crawler:        NewCrawler(repoPath),
		apis:           apis,
		envs:           envs,
		info:           info,
		embedder:       embedder,
		vectors:        vectors,
		codeCollection: codeCollection,
		docCollection:  docCollection,
		textCollection: textCollection,
		chunker:        NewDocChunker(),
	}
}

// counts tracks what one indexing run produced.
type counts struct {
	codeSnippets int
	docSections  int
	envVariables int
}

// IndexAll crawls the repository and rebuilds every index. Failures on
// individual files are logged and skipped; the run fails only when nothing
// could be crawled or when some files errored.
func (p *Pipeline) IndexAll(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx)

	files, err := p.crawler.Crawl(ctx)
	if err != nil {
		return fmt.Errorf("failed to crawl repository: %w", err)
	}
	logger.InfoContext(ctx, "starting indexing", "total_files", len(files))

	// Rebuild API metadata from scratch; env vars upsert by name.
	if err := p.apis.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear api metadata: %w", err)
	}

	var total counts
	var successCount, errorCount int
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		fileCounts, err := p.indexFile(ctx, file)
		if err != nil {
			errorCount++
			logger.ErrorContext(ctx, "failed to index file", "rel_path", file.RelPath, "error", err)
			continue
		}
		successCount++
		total.codeSnippets += fileCounts.codeSnippets
		total.docSections += fileCounts.docSections
		total.envVariables += fileCounts.envVariables
	}

	if err := p.storeRepositoryInfo(ctx, files, total); err != nil {
		logger.WarnContext(ctx, "failed to store repository info", "error", err)
	}

	logger.InfoContext(ctx, "indexing completed",
		"total_files", len(files), "success", successCount, "errors", errorCount,
		"code_snippets", total.codeSnippets, "doc_sections", total.docSections,
		"env_variables", total.envVariables)

	if errorCount > 0 {
		return fmt.Errorf("indexing completed with %d errors", errorCount)
	}
	return nil
}

func (p *Pipeline) indexFile(ctx context.Context, file File) (counts, error) {
	content, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return counts{}, fmt.Errorf("failed to read file: %w", err)
	}

	switch filepath.Ext(file.RelPath) {
	case ".py":
		return p.indexPython(ctx, file, string(content))
	case ".md":
		return p.indexMarkdown(ctx, file, content)
	default:
		return p.indexText(ctx, file, content)
	}
}

// indexPython extracts definitions and environment variable reads from one
// Python file, stores the metadata rows and upserts snippet vectors.
func (p *Pipeline) indexPython(ctx context.Context, file File, source string) (counts, error) {
	var c counts

	snippets := ExtractCodeSnippets(source, file.RelPath)
	for _, snippet := range snippets {
		params, err := json.Marshal(snippet.Parameters)
		if err != nil {
			return c, fmt.Errorf("failed to encode parameters: %w", err)
		}
		record := &storage.APIRecord{
			Name:       snippet.Name,
			Docstring:  snippet.Docstring,
			Parameters: string(params),
			ReturnType: snippet.ReturnType,
			FilePath:   snippet.FilePath,
		}
		if err := p.apis.Insert(ctx, record); err != nil {
			return c, fmt.Errorf("failed to insert api record: %w", err)
		}
	}
	c.codeSnippets = len(snippets)

	if len(snippets) > 0 {
		texts := make([]string, len(snippets))
		for i, snippet := range snippets {
			texts[i] = snippet.Content
		}
		embeddings, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return c, fmt.Errorf("failed to embed code snippets: %w", err)
		}

		points := make([]vectorstore.Point, len(snippets))
		for i, snippet := range snippets {
			points[i] = vectorstore.Point{
				ID:  uuid.New().String(),
				Vec: embeddings[i],
				Payload: map[string]any{
					"content":   snippet.Content,
					"type":      "code",
					"name":      snippet.Name,
					"kind":      snippet.Kind,
					"file_path": snippet.FilePath,
				},
			}
		}
		if err := p.vectors.Upsert(ctx, p.codeCollection, points); err != nil {
			return c, fmt.Errorf("failed to upsert code vectors: %w", err)
		}
	}

	envVars := ExtractEnvVariables(source, file.RelPath)
	for i := range envVars {
		if err := p.envs.Upsert(ctx, &envVars[i]); err != nil {
			return c, fmt.Errorf("failed to upsert env variable: %w", err)
		}
	}
	c.envVariables = len(envVars)

	return c, nil
}

// indexMarkdown chunks a markdown file into sections and upserts them into
// both the semantic documentation collection and the raw-text collection the
// fallback search uses.
func (p *Pipeline) indexMarkdown(ctx context.Context, file File, content []byte) (counts, error) {
	fileName := filepath.Base(file.RelPath)
	sections := p.chunker.Chunk(content, fileName)
	if len(sections) == 0 {
		return counts{}, nil
	}

	texts := make([]string, len(sections))
	for i, section := range sections {
		texts[i] = section.HeadingPath + "\n" + section.Text
	}
	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return counts{}, fmt.Errorf("failed to embed doc sections: %w", err)
	}

	docPoints := make([]vectorstore.Point, len(sections))
	textPoints := make([]vectorstore.Point, len(sections))
	for i, section := range sections {
		payload := map[string]any{
			"content":      texts[i],
			"type":         "documentation",
			"file_path":    file.RelPath,
			"file_name":    fileName,
			"heading_path": section.HeadingPath,
		}
		docPoints[i] = vectorstore.Point{ID: uuid.New().String(), Vec: embeddings[i], Payload: payload}
		textPoints[i] = vectorstore.Point{ID: uuid.New().String(), Vec: embeddings[i], Payload: payload}
	}

	if err := p.vectors.Upsert(ctx, p.docCollection, docPoints); err != nil {
		return counts{}, fmt.Errorf("failed to upsert doc vectors: %w", err)
	}
	if err := p.vectors.Upsert(ctx, p.textCollection, textPoints); err != nil {
		return counts{}, fmt.Errorf("failed to upsert text vectors: %w", err)
	}

	return counts{docSections: len(sections)}, nil
}

// indexText stores a plain-text file in the raw-text collection, split into
// size-bounded pieces.
func (p *Pipeline) indexText(ctx context.Context, file File, content []byte) (counts, error) {
	if len(content) == 0 {
		return counts{}, nil
	}
	fileName := filepath.Base(file.RelPath)
	sections := splitSection(Section{HeadingPath: fileName, Text: string(content)})

	texts := make([]string, len(sections))
	for i, section := range sections {
		texts[i] = section.Text
	}
	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return counts{}, fmt.Errorf("failed to embed text file: %w", err)
	}

	points := make([]vectorstore.Point, len(sections))
	for i, section := range sections {
		points[i] = vectorstore.Point{
			ID:  uuid.New().String(),
			Vec: embeddings[i],
			Payload: map[string]any{
				"content":   section.Text,
				"type":      "documentation",
				"file_path": file.RelPath,
				"file_name": fileName,
			},
		}
	}
	if err := p.vectors.Upsert(ctx, p.textCollection, points); err != nil {
		return counts{}, fmt.Errorf("failed to upsert text vectors: %w", err)
	}

	return counts{docSections: len(sections)}, nil
}

// storeRepositoryInfo records run statistics and a file inventory for the
// repository-overview prompt section.
func (p *Pipeline) storeRepositoryInfo(ctx context.Context, files []File, total counts) error {
	stats, err := json.Marshal(map[string]any{
		"files":         len(files),
		"code_snippets": total.codeSnippets,
		"doc_sections":  total.docSections,
		"env_variables": total.envVariables,
		"indexed_at":    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	if err := p.info.Set(ctx, storage.RepoInfoStats, string(stats)); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The repository contains %d indexed files:\n", len(files))
	for _, file := range files {
		fmt.Fprintf(&b, "- %s\n", file.RelPath)
	}
	return p.info.Set(ctx, storage.RepoInfoSummaries, b.String())
}
