// Package project enumerates and loads the searchable files of a project
// rooted at a directory on disk.
package project

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/mwey/grepview/internal/cache"
)

// ErrBinaryFile marks files whose content looks binary; they contribute
// zero matches.
var ErrBinaryFile = errors.New("binary file")

// ErrFileTooLarge marks files over the configured size cap.
var ErrFileTooLarge = errors.New("file too large")

// Directories that are never worth searching.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	".idea":        true,
	".vscode":      true,
}

const binarySniffLen = 8 * 1024

// Lister walks a project root and yields the relative slash paths of every
// searchable file, in walk order.
type Lister struct {
	root        string
	include     []glob.Glob
	exclude     []glob.Glob
	maxFileSize int64
}

// NewLister compiles the include/exclude glob patterns up front so a bad
// pattern fails before any search runs. Patterns match against the
// slash-separated relative path and against the base name, so "*.go" and
// "internal/**" both do what they look like.
func NewLister(root string, include, exclude []string, maxFileSize int64) (*Lister, error) {
	inc, err := compileGlobs(include)
	if err != nil {
		return nil, fmt.Errorf("include pattern: %w", err)
	}
	exc, err := compileGlobs(exclude)
	if err != nil {
		return nil, fmt.Errorf("exclude pattern: %w", err)
	}
	return &Lister{root: root, include: inc, exclude: exc, maxFileSize: maxFileSize}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Files enumerates the project. Unreadable directory entries are skipped,
// not fatal; only a failure to walk the root itself errors out.
func (l *Lister) Files() ([]string, error) {
	var files []string
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == l.root {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != l.root && skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !l.wanted(rel) {
			return nil
		}
		if l.maxFileSize > 0 {
			if info, err := d.Info(); err == nil && info.Size() > l.maxFileSize {
				return nil
			}
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", l.root, err)
	}
	return files, nil
}

func (l *Lister) wanted(rel string) bool {
	base := filepath.Base(rel)
	for _, g := range l.exclude {
		if g.Match(rel) || g.Match(base) {
			return false
		}
	}
	if len(l.include) == 0 {
		return true
	}
	for _, g := range l.include {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// Loader reads file text relative to the project root, backed by an
// in-memory cache keyed on (mtime, size).
type Loader struct {
	root        string
	maxFileSize int64
	cache       *cache.FileCache
}

// NewLoader creates a Loader. fileCache may be nil to disable caching.
func NewLoader(root string, maxFileSize int64, fileCache *cache.FileCache) *Loader {
	return &Loader{root: root, maxFileSize: maxFileSize, cache: fileCache}
}

// Load returns the full text of the file at the given relative slash path.
// Binary-looking and oversize files fail with ErrBinaryFile and
// ErrFileTooLarge; callers treat any load failure as "no matches here".
func (l *Loader) Load(path string) (string, error) {
	full := filepath.Join(l.root, filepath.FromSlash(path))

	info, err := os.Stat(full)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if l.maxFileSize > 0 && info.Size() > l.maxFileSize {
		return "", fmt.Errorf("%s: %w", path, ErrFileTooLarge)
	}
	if l.cache != nil {
		if text, ok := l.cache.Get(path, info.ModTime(), info.Size()); ok {
			return text, nil
		}
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if looksBinary(data) {
		return "", fmt.Errorf("%s: %w", path, ErrBinaryFile)
	}

	text := string(data)
	if l.cache != nil {
		l.cache.Put(path, text, info.ModTime(), info.Size())
	}
	return text, nil
}

// looksBinary sniffs for a NUL byte in the first chunk of the file, the
// same heuristic grep family tools use.
func looksBinary(data []byte) bool {
	sniff := data
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	return bytes.IndexByte(sniff, 0) >= 0
}
