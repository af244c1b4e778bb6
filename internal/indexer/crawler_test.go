package indexer

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCrawlSelectsAndSorts(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"whisper/transcribe.py",
		"README.md",
		"requirements.txt",
		"docs/model-card.md",
		"image.png",
		"setup.cfg",
	} {
		writeFile(t, root, rel)
	}

	files, err := NewCrawler(root).Crawl(context.Background())
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}

	var got []string
	for _, file := range files {
		got = append(got, file.RelPath)
	}
	want := []string{
		"README.md",
		"docs/model-card.md",
		"requirements.txt",
		"whisper/transcribe.py",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Crawl = %v, want %v", got, want)
	}
}

func TestCrawlSkipsHiddenAndVendorDirs(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"keep.py",
		".git/hooks/notes.md",
		"__pycache__/cached.py",
		"venv/lib/module.py",
	} {
		writeFile(t, root, rel)
	}

	files, err := NewCrawler(root).Crawl(context.Background())
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "keep.py" {
		t.Errorf("Crawl = %v, want only keep.py", files)
	}
}

func TestCrawlEmptyTree(t *testing.T) {
	files, err := NewCrawler(t.TempDir()).Crawl(context.Background())
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Crawl = %v, want none", files)
	}
}
