package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"github.com/esenthil2018/whisper-assistant/internal/assistant"
	"github.com/esenthil2018/whisper-assistant/internal/cache"
	"github.com/esenthil2018/whisper-assistant/internal/config"
	"github.com/esenthil2018/whisper-assistant/internal/http"
	"github.com/esenthil2018/whisper-assistant/internal/indexer"
	"github.com/esenthil2018/whisper-assistant/internal/llm"
	"github.com/esenthil2018/whisper-assistant/internal/retrieval"
	"github.com/esenthil2018/whisper-assistant/internal/search"
	"github.com/esenthil2018/whisper-assistant/internal/storage"
	"github.com/esenthil2018/whisper-assistant/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	apiRepo := storage.NewAPIRepo(db)
	envRepo := storage.NewEnvRepo(db)
	infoRepo := storage.NewRepoInfoRepo(db)

	ctx := context.Background()

	// Initialize Qdrant vector store and ensure collections exist
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	for _, collection := range []string{cfg.CodeCollection, cfg.DocCollection, cfg.TextCollection} {
		if err := vectorStore.EnsureCollection(ctx, collection, cfg.VectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection %s: %v", collection, err)
		}
	}
	slog.Info("Qdrant collections ready",
		"code", cfg.CodeCollection, "doc", cfg.DocCollection, "text", cfg.TextCollection,
		"vector_size", cfg.VectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.VectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.VectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.VectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "model", cfg.EmbeddingModel, "vector_size", cfg.VectorSize)

	// Response cache is optional; without REDIS_ADDR every query hits the pipeline
	var responseCache *cache.ResponseCache
	if cfg.RedisAddr != "" {
		responseCache, err = cache.New(cfg.RedisAddr, cfg.CacheTTL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer responseCache.Close()
		slog.Info("Response cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	} else {
		slog.Info("Response cache disabled")
	}

	// Create indexing pipeline
	pipeline := indexer.NewPipeline(
		cfg.RepoPath,
		apiRepo,
		envRepo,
		infoRepo,
		embedder,
		vectorStore,
		cfg.CodeCollection,
		cfg.DocCollection,
		cfg.TextCollection,
	)

	// Create the retrieval backends and the assistant engine
	semantic := search.NewSemanticSearcher(embedder, vectorStore, cfg.CodeCollection, cfg.DocCollection)
	metadata := search.NewMetadataSearcher(apiRepo, envRepo)
	fallback := search.NewDocumentSearcher(embedder, vectorStore, cfg.TextCollection)
	retriever := retrieval.NewRetriever(semantic, metadata)
	chatClient := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	// Interface fields stay nil unless a cache is actually configured
	var engineCache assistant.Cache
	deps := &http.Deps{Pipeline: pipeline}
	if responseCache != nil {
		engineCache = responseCache
		deps.Cache = responseCache
	}

	engine := assistant.NewEngine(retriever, chatClient, fallback, infoRepo, engineCache)
	slog.Info("Assistant engine initialized", "model", cfg.OpenAIModel)

	deps.Engine = engine
	router := http.NewRouter(deps)

	// Start indexing in background after router is ready
	go func() {
		indexCtx := context.Background()
		slog.Info("Starting background indexing", "repo_path", cfg.RepoPath)
		if err := pipeline.IndexAll(indexCtx); err != nil {
			slog.Error("Indexing completed with errors", "error", err)
		} else {
			slog.Info("Indexing completed successfully")
		}
	}()

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
