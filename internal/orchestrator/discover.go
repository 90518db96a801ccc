// Package orchestrator implements C10, the layered builder that drives a
// full or incremental build through every other component: file discovery,
// the per-file C1-C4 pipeline, the cross-file C5-C9 stages, and the watch
// loop that triggers incremental rebuilds. It is a direct generalization of
// the teacher's indexing pipeline (internal/indexing/pipeline.go's
// FileScanner and pipeline_processor.go's FileProcessor) from a
// single-language symbol/trigram index to the spec's layered multi-language
// IR build.
package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// discoveredFile is one candidate source file found during discovery,
// carrying enough to schedule and to drive C1's language selection.
type discoveredFile struct {
	Path     string // repo-relative, slash-separated
	AbsPath  string
	Size     int64
	Language string
}

// discoverFiles walks root, keeping files that match at least one include
// pattern and no exclude pattern (doublestar glob syntax, matched against
// the repo-relative slash-separated path), then sorts the result largest
// file first. Largest-first scheduling keeps the worker pool's slowest
// units of work in flight the longest, the same reasoning the teacher
// applies with its "important"/"large" PriorityMode, generalized here into
// the default (and only) schedule since build correctness does not depend
// on which file finishes first, only on wall-clock finishing fastest.
func discoverFiles(root string, include, exclude []string) ([]discoveredFile, error) {
	var files []discoveredFile

	err := filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return nil // best-effort: skip unreadable entries, don't abort the whole build
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}
		normalized := filepath.ToSlash(relPath)

		if matchesAny(exclude, normalized) {
			return nil
		}
		if len(include) > 0 && !matchesAny(include, normalized) {
			return nil
		}

		files = append(files, discoveredFile{
			Path:     normalized,
			AbsPath:  path,
			Size:     info.Size(),
			Language: languageForPath(normalized),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Size > files[j].Size
	})
	return files, nil
}

func matchesAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}

// discoverFilesCtx is discoverFiles with cancellation, used by Build so a
// caller-cancelled context stops a large repo walk promptly.
func discoverFilesCtx(ctx context.Context, root string, include, exclude []string) ([]discoveredFile, error) {
	type result struct {
		files []discoveredFile
		err   error
	}
	done := make(chan result, 1)
	go func() {
		files, err := discoverFiles(root, include, exclude)
		done <- result{files, err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.files, r.err
	}
}
