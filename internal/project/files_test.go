package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwey/grepview/internal/cache"
)

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListerSkipsVCSAndDependencyDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", []byte("package main\n"))
	writeFile(t, root, ".git/config", []byte("[core]\n"))
	writeFile(t, root, "node_modules/pkg/index.js", []byte("x\n"))

	l, err := NewLister(root, nil, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	files, err := l.Files()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != "main.go" {
		t.Errorf("Files() = %v, want [main.go]", files)
	}
}

func TestListerIncludeExcludeGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", []byte("a"))
	writeFile(t, root, "a_test.go", []byte("a"))
	writeFile(t, root, "doc.md", []byte("a"))
	writeFile(t, root, "sub/b.go", []byte("b"))

	l, err := NewLister(root, []string{"*.go"}, []string{"*_test.go"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	files, err := l.Files()
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{"a.go": true, "sub/b.go": true}
	if len(files) != len(want) {
		t.Fatalf("Files() = %v, want %v", files, want)
	}
	for _, f := range files {
		if !want[f] {
			t.Errorf("unexpected file %s", f)
		}
	}
}

func TestListerBadGlob(t *testing.T) {
	if _, err := NewLister(t.TempDir(), []string{"[unclosed"}, nil, 0); err == nil {
		t.Error("NewLister accepted a malformed glob")
	}
}

func TestListerSizeCap(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "small.txt", []byte("ok"))
	writeFile(t, root, "big.txt", make([]byte, 4096))

	l, err := NewLister(root, nil, nil, 1024)
	if err != nil {
		t.Fatal(err)
	}
	files, err := l.Files()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != "small.txt" {
		t.Errorf("Files() = %v, want [small.txt]", files)
	}
}

func TestLoaderRejectsBinary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blob.bin", []byte{'a', 0x00, 'b'})

	l := NewLoader(root, 0, nil)
	if _, err := l.Load("blob.bin"); !errors.Is(err, ErrBinaryFile) {
		t.Errorf("Load(blob.bin) error = %v, want ErrBinaryFile", err)
	}
}

func TestLoaderReadsText(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sub/hello.txt", []byte("hello world\n"))

	l := NewLoader(root, 0, nil)
	text, err := l.Load("sub/hello.txt")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if text != "hello world\n" {
		t.Errorf("Load = %q", text)
	}
}

func TestLoaderUsesCache(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "f.txt", []byte("cached content"))

	c := cache.NewFileCache(1)
	l := NewLoader(root, 0, c)

	if _, err := l.Load("f.txt"); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Fatalf("cache Len = %d after first load, want 1", c.Len())
	}

	// Second load must be served even if the file disappears underneath.
	if err := os.Remove(filepath.Join(root, "f.txt")); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Load("f.txt"); err == nil {
		t.Error("Load after removal should fail stat, cache is keyed on it")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	l := NewLoader(t.TempDir(), 0, nil)
	if _, err := l.Load("nope.txt"); err == nil {
		t.Error("Load(nope.txt) succeeded, want error")
	}
}
