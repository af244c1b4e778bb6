package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/esenthil2018/whisper-assistant/internal/storage"
	"github.com/esenthil2018/whisper-assistant/internal/storage/mocks"
	"github.com/esenthil2018/whisper-assistant/internal/vectorstore"
)

func writeFileContent(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// fakeEmbedder returns a fixed vector per input text.
type fakeEmbedder struct{}

func (fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 2, 3}
	}
	return vectors, nil
}

// fakeVectorStore records upserted points per collection.
type fakeVectorStore struct {
	upserts map[string][]vectorstore.Point
}

func newFakeVectorStore() *fakeVectorStore {
	return &fakeVectorStore{upserts: make(map[string][]vectorstore.Point)}
}

func (f *fakeVectorStore) Upsert(ctx context.Context, collection string, points []vectorstore.Point) error {
	f.upserts[collection] = append(f.upserts[collection], points...)
	return nil
}

func (f *fakeVectorStore) Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]vectorstore.SearchResult, error) {
	return nil, nil
}

func (f *fakeVectorStore) Delete(ctx context.Context, collection string, ids []string) error {
	return nil
}

func (f *fakeVectorStore) EnsureCollection(ctx context.Context, collection string, vectorSize int) error {
	return nil
}

func TestIndexAll(t *testing.T) {
	root := t.TempDir()
	writeFileContent(t, root, "whisper/audio.py", `import os

SAMPLE_RATE = int(os.getenv("SAMPLE_RATE", "16000"))

def load_audio(path: str) -> bytes:
    """Load an audio file as mono PCM."""
    return b""
`)
	writeFileContent(t, root, "README.md", `# Whisper

Whisper is a speech recognition model with several sizes available for download.
`)
	writeFileContent(t, root, "requirements.txt", "torch\nnumba\ntiktoken\n")

	ctrl := gomock.NewController(t)
	apis := mocks.NewMockAPIStore(ctrl)
	envs := mocks.NewMockEnvStore(ctrl)
	info := mocks.NewMockRepoInfoStore(ctrl)

	apis.EXPECT().DeleteAll(gomock.Any()).Return(nil)

	var insertedAPIs []storage.APIRecord
	apis.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, record *storage.APIRecord) error {
			insertedAPIs = append(insertedAPIs, *record)
			return nil
		}).AnyTimes()

	var upsertedEnvs []storage.EnvVariable
	envs.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, envVar *storage.EnvVariable) error {
			upsertedEnvs = append(upsertedEnvs, *envVar)
			return nil
		}).AnyTimes()

	info.EXPECT().Set(gomock.Any(), storage.RepoInfoStats, gomock.Any()).Return(nil)
	info.EXPECT().Set(gomock.Any(), storage.RepoInfoSummaries, gomock.Any()).Return(nil)

	store := newFakeVectorStore()
	pipeline := NewPipeline(root, apis, envs, info, fakeEmbedder{}, store,
		"code_snippets", "documentation", "documentation_text")

	if err := pipeline.IndexAll(context.Background()); err != nil {
		t.Fatalf("IndexAll failed: %v", err)
	}

	if len(insertedAPIs) != 1 || insertedAPIs[0].Name != "load_audio" {
		t.Errorf("api records = %+v, want load_audio", insertedAPIs)
	}
	if len(upsertedEnvs) != 1 || upsertedEnvs[0].Name != "SAMPLE_RATE" {
		t.Errorf("env variables = %+v, want SAMPLE_RATE", upsertedEnvs)
	}
	if upsertedEnvs[0].DefaultValue != "16000" {
		t.Errorf("SAMPLE_RATE default = %q", upsertedEnvs[0].DefaultValue)
	}

	if len(store.upserts["code_snippets"]) != 1 {
		t.Errorf("code points = %d, want 1", len(store.upserts["code_snippets"]))
	}
	if len(store.upserts["documentation"]) == 0 {
		t.Error("no documentation points upserted")
	}
	// Markdown sections plus the plain requirements.txt land in the raw-text collection
	if len(store.upserts["documentation_text"]) < 2 {
		t.Errorf("text points = %d, want at least 2", len(store.upserts["documentation_text"]))
	}

	for _, point := range store.upserts["documentation_text"] {
		if point.Payload["file_name"] == "" {
			t.Error("raw-text point missing file_name payload")
		}
	}
}
