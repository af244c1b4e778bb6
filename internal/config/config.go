package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	OpenAIAPIKey    string
	OpenAIModel     string
	EmbeddingModel  string
	VectorSize      int
	QdrantURL       string
	CodeCollection  string
	DocCollection   string
	TextCollection  string
	DBPath          string
	RepoPath        string
	RedisAddr       string // empty disables the response cache
	CacheTTL        time.Duration
	APIPort         string
	LogLevel        slog.Level
	LogFormat       string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent directory, it is
// loaded automatically; variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up a few levels looking for a .env next to the project root
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4-0125-preview"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		QdrantURL:      getEnv("QDRANT_URL", "http://localhost:6333"),
		CodeCollection: getEnv("CODE_COLLECTION", "code_snippets"),
		DocCollection:  getEnv("DOC_COLLECTION", "documentation"),
		TextCollection: getEnv("TEXT_COLLECTION", "documentation_text"),
		DBPath:         getEnv("DB_PATH", "./data/whisper-assistant.db"),
		RepoPath:       os.Getenv("REPO_PATH"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		APIPort:        getEnv("API_PORT", "9000"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}

	// Vector size must match the embedding model output. text-embedding-3-small
	// produces 1536-dimension vectors; changing the model requires recreating
	// the Qdrant collections.
	vectorSizeStr := getEnv("VECTOR_SIZE", "1536")
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("VECTOR_SIZE must be greater than 0")
	}
	cfg.VectorSize = vectorSize

	ttlStr := getEnv("CACHE_TTL", "1h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("CACHE_TTL must be a valid duration: %w", err)
	}
	cfg.CacheTTL = ttl

	cfg.LogLevel = parseLogLevel(getEnv("LOG_LEVEL", "info"))

	// Validate required fields
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.RepoPath == "" {
		return nil, fmt.Errorf("REPO_PATH is required")
	}

	// Create the data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
