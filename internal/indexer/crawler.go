// Package indexer builds the searchable indexes: it crawls the target
// repository, extracts code signatures, documentation sections and environment
// variables, and loads them into SQLite and Qdrant.
package indexer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// includePatterns selects the files worth indexing.
var includePatterns = []string{"**/*.py", "**/*.md", "**/*.txt"}

// skipDirs are directory names never descended into.
var skipDirs = map[string]struct{}{
	"__pycache__":  {},
	"node_modules": {},
	"venv":         {},
	".venv":        {},
}

// File is one crawled repository file.
type File struct {
	RelPath string // slash-separated, relative to the repository root
	AbsPath string
}

// Crawler walks a repository tree and returns the indexable files.
type Crawler struct {
	root string
}

// NewCrawler creates a crawler rooted at the repository path.
func NewCrawler(root string) *Crawler {
	return &Crawler{root: root}
}

// Crawl returns every matching file under the root, sorted by relative path.
// Hidden directories and the usual build/vendor directories are skipped.
func (c *Crawler) Crawl(ctx context.Context) ([]File, error) {
	var files []File

	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if path == c.root {
				return nil
			}
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if _, skip := skipDirs[name]; skip {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(c.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		for _, pattern := range includePatterns {
			ok, err := doublestar.Match(pattern, rel)
			if err != nil {
				return fmt.Errorf("bad include pattern %q: %w", pattern, err)
			}
			if ok {
				files = append(files, File{RelPath: rel, AbsPath: path})
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to crawl repository: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}
