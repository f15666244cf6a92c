package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/mwey/grepview/internal/cache"
	"github.com/mwey/grepview/internal/config"
	"github.com/mwey/grepview/internal/model"
	"github.com/mwey/grepview/internal/query"
	"github.com/mwey/grepview/internal/ui"
)

func init() {
	zone.NewGlobal()
}

func testApp(t *testing.T) App {
	t.Helper()
	cfg := config.Default()
	cfg.Root = t.TempDir()
	app := NewApp(cfg, cache.NewFileCache(1), nil)
	m, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return *m.(*App)
}

func searchDone(a App, msg ui.SearchDoneMsg) App {
	a.currentQuery = msg.Query
	m, _ := a.handleSearchDone(msg)
	return *m.(*App)
}

func TestSearchBarStartsActive(t *testing.T) {
	a := testApp(t)
	if !a.searchBar.IsActive() {
		t.Error("search bar should be active on startup")
	}
}

func TestSuccessfulSearchClosesBarAndShowsCounts(t *testing.T) {
	a := testApp(t)
	rs := &model.ResultSet{
		Query: "foo",
		Files: []model.FileResult{{Path: "a.go", Matches: []model.Match{{
			End: model.Position{Column: 3}, Excerpt: "foo",
		}}}},
		TotalCount:   1,
		FilesScanned: 5,
	}

	a = searchDone(a, ui.SearchDoneMsg{Query: "foo", Results: rs})

	if a.searchBar.IsActive() {
		t.Error("search bar should close after a successful search")
	}
	bar := RenderStatusBar(a.status, a.results, "", 120)
	if !strings.Contains(bar, "1 matches in 1 files") {
		t.Errorf("status bar = %q, want match counts", bar)
	}
}

func TestInvalidPatternKeepsBarOpenWithError(t *testing.T) {
	a := testApp(t)
	_, err := query.Compile("/a(/")
	if err == nil {
		t.Fatal("expected compile error")
	}

	a = searchDone(a, ui.SearchDoneMsg{Query: "/a(/", Err: err})

	if !a.searchBar.IsActive() {
		t.Error("search bar should stay active on an invalid pattern")
	}
	if !strings.Contains(a.searchBar.View(), "error") {
		t.Errorf("search bar view should show the parse error, got %q", a.searchBar.View())
	}
}

func TestCancelledSearchIsDropped(t *testing.T) {
	a := testApp(t)
	a.status = "before"

	a = searchDone(a, ui.SearchDoneMsg{Query: "foo", Err: context.Canceled})

	if a.status != "before" {
		t.Errorf("cancelled search changed status to %q", a.status)
	}
}

func TestStaleSearchResultIsDropped(t *testing.T) {
	a := testApp(t)
	a.currentQuery = "new"

	m, _ := a.handleSearchDone(ui.SearchDoneMsg{
		Query:   "old",
		Results: &model.ResultSet{Query: "old", TotalCount: 7},
	})
	a = *m.(*App)

	if a.resultsView.HasResults() {
		t.Error("a superseded search's results were rendered")
	}
}

func TestFailedFilesReportedInStatus(t *testing.T) {
	a := testApp(t)
	rs := &model.ResultSet{
		Query:        "x",
		Files:        []model.FileResult{{Path: "ok.txt", Matches: []model.Match{{Excerpt: "x", End: model.Position{Column: 1}}}}},
		TotalCount:   1,
		FilesScanned: 3,
		FilesFailed:  1,
	}

	a = searchDone(a, ui.SearchDoneMsg{Query: "x", Results: rs})

	bar := RenderStatusBar(a.status, a.results, "", 120)
	if !strings.Contains(bar, "1 unreadable") {
		t.Errorf("status bar = %q, want unreadable count", bar)
	}
}

func TestStatusBarCounts(t *testing.T) {
	if got := renderCounts(nil); got != "" {
		t.Errorf("renderCounts(nil) = %q, want empty", got)
	}

	empty := &model.ResultSet{FilesScanned: 12}
	if got := renderCounts(empty); !strings.Contains(got, "No matches (12 files scanned)") {
		t.Errorf("renderCounts(empty) = %q, want the scanned count", got)
	}

	rs := &model.ResultSet{
		Files:        []model.FileResult{{Path: "a.go"}, {Path: "b.go"}},
		TotalCount:   9,
		FilesScanned: 40,
		FilesFailed:  2,
	}
	got := renderCounts(rs)
	for _, want := range []string{"9 matches in 2 files", "(40 scanned)", "2 unreadable"} {
		if !strings.Contains(got, want) {
			t.Errorf("renderCounts = %q, missing %q", got, want)
		}
	}
}
