package search

import (
	"context"
	"errors"
	"testing"

	"github.com/mwey/grepview/internal/query"
)

type fakeProject struct {
	order []string
	texts map[string]string
}

func (f *fakeProject) Files() ([]string, error) { return f.order, nil }

func (f *fakeProject) Load(path string) (string, error) {
	text, ok := f.texts[path]
	if !ok {
		return "", errors.New("unreadable")
	}
	return text, nil
}

func TestSearchAcrossFiles(t *testing.T) {
	proj := &fakeProject{
		order: []string{"a.go", "b.go", "c.go"},
		texts: map[string]string{
			"a.go": "package a\n\nfunc Needle() {}\n",
			"b.go": "package b\n",
			"c.go": "// needle one\n// needle two\n",
		},
	}
	eng := New(proj, proj, 4)

	rs, err := eng.Search(context.Background(), "needle")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(rs.Files) != 2 {
		t.Fatalf("got %d files with matches, want 2", len(rs.Files))
	}
	// Listing order, not completion order.
	if rs.Files[0].Path != "a.go" || rs.Files[1].Path != "c.go" {
		t.Errorf("file order = %s, %s; want a.go, c.go", rs.Files[0].Path, rs.Files[1].Path)
	}
	if rs.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", rs.TotalCount)
	}
	if rs.FilesScanned != 3 {
		t.Errorf("FilesScanned = %d, want 3", rs.FilesScanned)
	}
}

func TestSearchSwallowsLoadFailures(t *testing.T) {
	proj := &fakeProject{
		order: []string{"ok1.txt", "broken.bin", "ok2.txt"},
		texts: map[string]string{
			"ok1.txt": "target here\n",
			"ok2.txt": "another target\n",
		},
	}
	eng := New(proj, proj, 2)

	rs, err := eng.Search(context.Background(), "target")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(rs.Files) != 2 {
		t.Errorf("got %d files with matches, want 2", len(rs.Files))
	}
	if rs.FilesFailed != 1 {
		t.Errorf("FilesFailed = %d, want 1", rs.FilesFailed)
	}
}

func TestSearchInvalidQuery(t *testing.T) {
	eng := New(&fakeProject{}, &fakeProject{}, 1)

	_, err := eng.Search(context.Background(), "/a(/")
	var perr *query.InvalidPatternError
	if !errors.As(err, &perr) {
		t.Fatalf("Search error = %v, want InvalidPatternError", err)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	eng := New(&fakeProject{}, &fakeProject{}, 1)
	if _, err := eng.Search(context.Background(), ""); !errors.Is(err, query.ErrEmptyQuery) {
		t.Errorf("Search(\"\") error = %v, want ErrEmptyQuery", err)
	}
}

func TestSearchCancelled(t *testing.T) {
	proj := &fakeProject{
		order: []string{"a.txt"},
		texts: map[string]string{"a.txt": "content"},
	}
	eng := New(proj, proj, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := eng.Search(ctx, "content"); !errors.Is(err, context.Canceled) {
		t.Errorf("Search on cancelled context error = %v, want context.Canceled", err)
	}
}

func TestSearchNoMatches(t *testing.T) {
	proj := &fakeProject{
		order: []string{"a.txt"},
		texts: map[string]string{"a.txt": "nothing relevant"},
	}
	eng := New(proj, proj, 1)

	rs, err := eng.Search(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if !rs.Empty() {
		t.Errorf("ResultSet not empty: %+v", rs)
	}
}
