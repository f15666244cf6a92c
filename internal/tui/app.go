package tui

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/mwey/grepview/internal/cache"
	"github.com/mwey/grepview/internal/config"
	"github.com/mwey/grepview/internal/model"
	"github.com/mwey/grepview/internal/project"
	"github.com/mwey/grepview/internal/query"
	"github.com/mwey/grepview/internal/search"
	"github.com/mwey/grepview/internal/tui/filteroverlay"
	"github.com/mwey/grepview/internal/tui/previewview"
	"github.com/mwey/grepview/internal/tui/resultsview"
	"github.com/mwey/grepview/internal/tui/searchbar"
	"github.com/mwey/grepview/internal/ui"
	"github.com/mwey/grepview/internal/watcher"
)

type Pane int

const (
	PaneResults Pane = iota
	PanePreview
)

type App struct {
	cfg       config.Config
	fileCache *cache.FileCache
	watch     *watcher.Watcher

	// Views
	searchBar     searchbar.Model
	resultsView   resultsview.Model
	previewView   previewview.Model
	filterOverlay filteroverlay.Model
	filter        filteroverlay.FilterResult

	// State
	focusedPane  Pane
	width        int
	height       int
	status       string
	results      *model.ResultSet
	currentQuery string
	searchCancel context.CancelFunc
	searching    bool
	showPreview  bool
	showHelp     bool
}

// NewApp wires the views together. watch may be nil when watch mode is off.
func NewApp(cfg config.Config, fileCache *cache.FileCache, watch *watcher.Watcher) App {
	sb := searchbar.New()
	sb.Activate()
	return App{
		cfg:         cfg,
		fileCache:   fileCache,
		watch:       watch,
		searchBar:   sb,
		resultsView: resultsview.New(cfg.MaxResults),
		previewView: previewview.New(),
		filter: filteroverlay.FilterResult{
			Include: cfg.Include,
			Exclude: cfg.Exclude,
		},
		status: "Type a query and press enter",
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.searchBar.Init()}
	if a.watch != nil {
		cmds = append(cmds, a.awaitFileChange())
	}
	return tea.Batch(cmds...)
}

// engine builds a fresh search engine for the current filter settings.
func (a App) engine() (*search.Engine, error) {
	lister, err := project.NewLister(a.cfg.Root, a.filter.Include, a.filter.Exclude, a.cfg.MaxFileSize)
	if err != nil {
		return nil, err
	}
	loader := project.NewLoader(a.cfg.Root, a.cfg.MaxFileSize, a.fileCache)
	return search.New(lister, loader, a.cfg.Workers), nil
}

// runSearch dispatches a search for the query, cancelling whichever search
// was still in flight. The superseded search reports context.Canceled and
// its result is dropped.
func (a *App) runSearch(raw string) tea.Cmd {
	if a.searchCancel != nil {
		a.searchCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.searchCancel = cancel
	a.searching = true
	a.currentQuery = raw

	eng, err := a.engine()
	if err != nil {
		return func() tea.Msg { return ui.SearchDoneMsg{Query: raw, Err: err} }
	}

	a.status = fmt.Sprintf("Searching for %s...", raw)
	return func() tea.Msg {
		rs, err := eng.Search(ctx, raw)
		return ui.SearchDoneMsg{Query: raw, Results: rs, Err: err}
	}
}

func (a App) loadPreview(path string, match model.Match) tea.Cmd {
	loader := project.NewLoader(a.cfg.Root, a.cfg.MaxFileSize, a.fileCache)
	return func() tea.Msg {
		text, err := loader.Load(path)
		return ui.PreviewLoadedMsg{Path: path, Text: text, Match: match, Err: err}
	}
}

// openEditor jumps to the match in the configured editor, suspending the
// TUI while it runs.
func (a App) openEditor(path string, match model.Match) tea.Cmd {
	parts := strings.Fields(a.cfg.EditorCommand())
	args := append(parts[1:],
		fmt.Sprintf("+%d", match.Start.Line+1),
		filepath.Join(a.cfg.Root, filepath.FromSlash(path)))
	cmd := exec.Command(parts[0], args...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return ui.EditorFinishedMsg{Err: err}
	})
}

// awaitFileChange blocks on the watcher until the next debounced change
// batch. The command is re-armed after every delivery.
func (a App) awaitFileChange() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-a.watch.C; !ok {
			return ui.WatchStoppedMsg{}
		}
		return ui.FilesChangedMsg{}
	}
}

// --- Update ---

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		cmds = append(cmds, a.propagateSize()...)
		return &a, tea.Batch(cmds...)

	case ui.SearchDoneMsg:
		return a.handleSearchDone(msg)

	case ui.MatchSelectedMsg:
		a.showPreview = true
		a.focusedPane = PaneResults
		cmds = append(cmds, a.propagateSize()...)
		cmds = append(cmds, a.loadPreview(msg.Path, msg.Match))
		return &a, tea.Batch(cmds...)

	case ui.PreviewLoadedMsg:
		if msg.Err != nil {
			a.status = fmt.Sprintf("Preview failed: %v", msg.Err)
			return &a, nil
		}
		a.previewView.SetContent(msg.Path, msg.Text, msg.Match)
		return &a, nil

	case ui.EditorFinishedMsg:
		if msg.Err != nil {
			a.status = fmt.Sprintf("Editor: %v", msg.Err)
		}
		return &a, nil

	case ui.FilesChangedMsg:
		if a.currentQuery != "" && !a.searching {
			cmds = append(cmds, a.runSearch(a.currentQuery))
		}
		cmds = append(cmds, a.awaitFileChange())
		return &a, tea.Batch(cmds...)

	case ui.WatchStoppedMsg:
		a.watch = nil
		return &a, nil

	case ui.StatusMsg:
		a.status = msg.Text
		return &a, nil

	case filteroverlay.ResultMsg:
		if msg.Applied {
			a.filter = msg.Filter
			if a.currentQuery != "" {
				cmds = append(cmds, a.runSearch(a.currentQuery))
			} else if summary := a.filter.Summary(); summary != "" {
				a.status = summary
			}
		}
		return &a, tea.Batch(cmds...)
	}

	if a.filterOverlay.IsActive() {
		var cmd tea.Cmd
		a.filterOverlay, cmd = a.filterOverlay.Update(msg)
		return &a, cmd
	}

	if a.searchBar.IsActive() {
		return a.updateSearchBar(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return a.handleKey(keyMsg)
	}

	return a.updatePanes(msg)
}

func (a App) updateSearchBar(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		if raw := a.searchBar.Query(); raw != "" {
			cmds = append(cmds, a.runSearch(raw))
		}
		return &a, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	a.searchBar, cmd = a.searchBar.Update(msg)
	cmds = append(cmds, cmd)
	if !a.searchBar.IsActive() {
		// Dismissed with esc; the panes get its rows back.
		cmds = append(cmds, a.propagateSize()...)
	}
	return &a, tea.Batch(cmds...)
}

func (a App) handleSearchDone(msg ui.SearchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Query != a.currentQuery {
		// A stale search that lost the race to cancellation.
		return &a, nil
	}
	a.searching = false

	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return &a, nil
		}
		var perr *query.InvalidPatternError
		if errors.As(msg.Err, &perr) {
			a.searchBar.Activate()
			a.searchBar.SetError(perr.Reason)
			a.status = "Invalid pattern"
			return &a, nil
		}
		a.status = fmt.Sprintf("Search failed: %v", msg.Err)
		return &a, nil
	}

	a.searchBar.Deactivate()
	a.showPreview = false
	a.previewView.Clear()
	a.resultsView.SetResults(msg.Results)
	a.results = msg.Results
	a.status = ""

	var cmds []tea.Cmd
	cmds = append(cmds, a.propagateSize()...)
	return &a, tea.Batch(cmds...)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showHelp {
		a.showHelp = false
		return &a, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		if a.searchCancel != nil {
			a.searchCancel()
		}
		if a.watch != nil {
			a.watch.Close()
		}
		return &a, tea.Quit
	case "?":
		a.showHelp = true
		return &a, nil
	case "/":
		a.searchBar.Activate()
		return &a, tea.Batch(append(a.propagateSize(), textinput.Blink)...)
	case "f":
		a.filterOverlay = filteroverlay.New(a.filter)
		var cmds []tea.Cmd
		cmds = append(cmds, a.filterOverlay.Init())
		cmds = append(cmds, a.propagateSize()...)
		return &a, tea.Batch(cmds...)
	case "o":
		if path, match, ok := a.resultsView.Selected(); ok {
			return &a, a.openEditor(path, match)
		}
		return &a, nil
	case "w":
		if a.watch != nil {
			a.watch.Close()
			a.watch = nil
			a.status = "Watch off"
			return &a, nil
		}
		w, err := watcher.New(a.cfg.Root)
		if err != nil {
			a.status = fmt.Sprintf("Watch failed: %v", err)
			return &a, nil
		}
		a.watch = w
		a.status = "Watch on"
		return &a, a.awaitFileChange()
	case "tab":
		if a.showPreview {
			if a.focusedPane == PaneResults {
				a.focusedPane = PanePreview
			} else {
				a.focusedPane = PaneResults
			}
		}
		return &a, nil
	case "esc":
		if a.showPreview {
			a.showPreview = false
			a.previewView.Clear()
			a.focusedPane = PaneResults
			return &a, tea.Batch(a.propagateSize()...)
		}
		return &a, nil
	}

	return a.updatePanes(msg)
}

// updatePanes routes remaining messages to the focused pane; mouse events
// always reach the results view so its zones work.
func (a App) updatePanes(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	_, isMouse := msg.(tea.MouseMsg)
	if a.focusedPane == PaneResults || isMouse {
		a.resultsView, cmd = a.resultsView.Update(msg)
		cmds = append(cmds, cmd)
	}
	if a.showPreview && (a.focusedPane == PanePreview || isMouse) {
		a.previewView, cmd = a.previewView.Update(msg)
		cmds = append(cmds, cmd)
	}
	return &a, tea.Batch(cmds...)
}

// propagateSize resizes every view for the current layout. Chrome is
// header(1) + statusbar(1), plus the search bar when it is showing.
func (a *App) propagateSize() []tea.Cmd {
	contentH := a.height - 2
	if a.searchBar.IsActive() {
		contentH -= 2
	}
	if contentH < 1 {
		contentH = 1
	}
	// Pane borders eat two rows and two columns each.
	innerH := contentH - 2
	if innerH < 1 {
		innerH = 1
	}

	resultsW := a.width
	if a.showPreview {
		resultsW = a.width / 2
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.searchBar, cmd = a.searchBar.Update(tea.WindowSizeMsg{Width: a.width, Height: 2})
	cmds = append(cmds, cmd)
	a.resultsView, cmd = a.resultsView.Update(tea.WindowSizeMsg{Width: resultsW - 2, Height: innerH})
	cmds = append(cmds, cmd)
	if a.showPreview {
		a.previewView, cmd = a.previewView.Update(tea.WindowSizeMsg{Width: a.width - resultsW - 2, Height: innerH - 1})
		cmds = append(cmds, cmd)
	}
	a.filterOverlay, cmd = a.filterOverlay.Update(tea.WindowSizeMsg{Width: a.width, Height: contentH})
	cmds = append(cmds, cmd)
	return cmds
}

// --- View ---

func (a App) View() string {
	header := RenderHeader(a.cfg.Root, a.watch != nil, a.width)

	contentH := a.height - 2
	if a.searchBar.IsActive() {
		contentH -= 2
	}
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case a.showHelp:
		content = a.renderHelp()
	case a.filterOverlay.IsActive():
		content = a.filterOverlay.View()
	default:
		content = a.renderPanes(contentH)
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	if a.searchBar.IsActive() {
		b.WriteString(a.searchBar.View())
		b.WriteByte('\n')
	}
	b.WriteString(content)
	b.WriteByte('\n')
	b.WriteString(RenderStatusBar(a.status, a.results, a.contextHints(), a.width))

	return zone.Scan(b.String())
}

func (a App) renderPanes(contentH int) string {
	resultsStyle := ui.StylePane
	previewStyle := ui.StylePane
	if a.focusedPane == PaneResults {
		resultsStyle = ui.StylePaneFocused
	} else {
		previewStyle = ui.StylePaneFocused
	}

	if !a.showPreview {
		return resultsStyle.Width(a.width - 2).Height(contentH - 2).Render(a.resultsView.View())
	}

	resultsW := a.width / 2
	left := resultsStyle.Width(resultsW - 2).Height(contentH - 2).Render(a.resultsView.View())
	right := previewStyle.Width(a.width - resultsW - 2).Height(contentH - 2).Render(a.previewView.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (a App) contextHints() string {
	if a.searchBar.IsActive() {
		return "enter:search  esc:cancel"
	}
	if a.showPreview {
		return "tab:switch pane  o:open  esc:close preview  q:quit"
	}
	return "/:search  f:filter  enter:preview  o:open  ?:help  q:quit"
}

func (a App) renderHelp() string {
	help := `
  grepview

  /          new search (plain text, or /regex/flags)
  enter      preview the selected match
  o          open the selected match in your editor
  h / l      collapse / expand a file's matches
  j / k      move selection
  f          include/exclude file filters
  w          toggle watch mode
  tab        switch between results and preview
  esc        close preview or dialog
  q          quit

  Queries are case-insensitive literals unless written
  as /pattern/flags (flags: i, m, s).

  press any key to close help`
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB")).Render(help)
}
