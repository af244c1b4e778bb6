package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REPO_PATH", t.TempDir())
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OpenAIModel != "gpt-4-0125-preview" {
		t.Errorf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %q", cfg.EmbeddingModel)
	}
	if cfg.VectorSize != 1536 {
		t.Errorf("VectorSize = %d", cfg.VectorSize)
	}
	if cfg.CodeCollection != "code_snippets" || cfg.DocCollection != "documentation" || cfg.TextCollection != "documentation_text" {
		t.Errorf("collections = %q %q %q", cfg.CodeCollection, cfg.DocCollection, cfg.TextCollection)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.APIPort != "9000" {
		t.Errorf("APIPort = %q", cfg.APIPort)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, want empty by default", cfg.RedisAddr)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("REPO_PATH", t.TempDir())

	if _, err := Load(); err == nil {
		t.Error("expected an error without OPENAI_API_KEY")
	}
}

func TestLoadMissingRepoPath(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REPO_PATH", "")

	if _, err := Load(); err == nil {
		t.Error("expected an error without REPO_PATH")
	}
}

func TestLoadInvalidVectorSize(t *testing.T) {
	setRequired(t)

	for _, bad := range []string{"abc", "0", "-5"} {
		t.Setenv("VECTOR_SIZE", bad)
		if _, err := Load(); err == nil {
			t.Errorf("expected an error for VECTOR_SIZE=%q", bad)
		}
	}
}

func TestLoadInvalidCacheTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("CACHE_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Error("expected an error for an unparseable CACHE_TTL")
	}
}

func TestLoadLogLevels(t *testing.T) {
	setRequired(t)

	tests := []struct {
		value string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Setenv("LOG_LEVEL", tt.value)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.LogLevel != tt.want {
			t.Errorf("LOG_LEVEL=%q -> %v, want %v", tt.value, cfg.LogLevel, tt.want)
		}
	}
}
