package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/mwey/grepview/internal/cache"
	"github.com/mwey/grepview/internal/config"
	"github.com/mwey/grepview/internal/tui"
	"github.com/mwey/grepview/internal/watcher"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func main() {
	root := flag.String("C", ".", "Project root to search")
	watch := flag.Bool("watch", false, "Re-run the search when files change")
	editor := flag.String("editor", "", "Editor command for opening matches (defaults to $EDITOR)")
	workers := flag.Int("workers", 0, "Concurrent file loads (0 = config default)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("grepview", version)
		os.Exit(0)
	}

	abs, err := filepath.Abs(*root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(abs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *editor != "" {
		cfg.Editor = *editor
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *watch {
		cfg.Watch = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var w *watcher.Watcher
	if cfg.Watch {
		w, err = watcher.New(cfg.Root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
			os.Exit(1)
		}
		defer w.Close()
	}

	zone.NewGlobal()
	app := tui.NewApp(cfg, cache.NewFileCache(cfg.CacheSizeMB), w)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
