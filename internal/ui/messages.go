package ui

import (
	"github.com/mwey/grepview/internal/model"
)

// SearchDoneMsg carries the outcome of a search invocation. Err is set for
// bad queries and for superseded (cancelled) searches.
type SearchDoneMsg struct {
	Query   string
	Results *model.ResultSet
	Err     error
}

// MatchSelectedMsg is emitted by the results panel when a row is chosen,
// by keyboard or mouse.
type MatchSelectedMsg struct {
	Path  string
	Match model.Match
}

// FilesChangedMsg signals that watched project files changed and the
// current search should be re-run.
type FilesChangedMsg struct{}

// WatchStoppedMsg signals that the watcher channel closed.
type WatchStoppedMsg struct{}

// EditorFinishedMsg is delivered after the external editor exits.
type EditorFinishedMsg struct {
	Err error
}

// PreviewLoadedMsg carries file text for the preview pane.
type PreviewLoadedMsg struct {
	Path  string
	Text  string
	Match model.Match
	Err   error
}

// StatusMsg updates the status bar.
type StatusMsg struct {
	Text string
}
