// Package search scans project files for a compiled query pattern and
// aggregates per-file match lists.
package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mwey/grepview/internal/model"
	"github.com/mwey/grepview/internal/query"
)

// Lister enumerates the searchable files of a project, as slash-separated
// paths relative to the project root.
type Lister interface {
	Files() ([]string, error)
}

// Loader resolves a listed path to its full text. A load failure (binary
// content, permissions, the file vanished) is local to that file: the
// engine records it and moves on.
type Loader interface {
	Load(path string) (string, error)
}

const defaultWorkers = 8

// Engine composes a Lister and a Loader into a whole-project search.
type Engine struct {
	lister  Lister
	loader  Loader
	workers int
}

func New(lister Lister, loader Loader, workers int) *Engine {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Engine{lister: lister, loader: loader, workers: workers}
}

// Search compiles raw and scans every listed file, fanning file loads out
// across a bounded worker pool and joining before returning. Results keep
// file-listing order. The only errors returned are a bad query, a failed
// listing, or ctx being cancelled; individual files never fail a search.
func (e *Engine) Search(ctx context.Context, raw string) (*model.ResultSet, error) {
	p, err := query.Compile(raw)
	if err != nil {
		return nil, err
	}

	files, err := e.lister.Files()
	if err != nil {
		return nil, err
	}

	perFile := make([][]model.Match, len(files))
	failed := make([]bool, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := e.loader.Load(path)
			if err != nil {
				failed[i] = true
				return nil
			}
			perFile[i] = Extract(text, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rs := &model.ResultSet{Query: raw, FilesScanned: len(files)}
	for i, matches := range perFile {
		if failed[i] {
			rs.FilesFailed++
			continue
		}
		if len(matches) == 0 {
			continue
		}
		rs.Files = append(rs.Files, model.FileResult{Path: files[i], Matches: matches})
		rs.TotalCount += len(matches)
	}
	return rs, nil
}
