package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mwey/grepview/internal/model"
	"github.com/mwey/grepview/internal/query"
)

// Extract finds every non-overlapping occurrence of p in text and returns
// one Match per occurrence, in document order. It returns nil exactly when
// the pattern has no match anywhere in text.
//
// Positions are 0-based (line, byte column). A match whose text would span
// a newline is clamped to its first line, so Start and End always share a
// line. Excerpts hold the full containing line truncated to
// model.ExcerptLimit; columns are computed against the untruncated line.
func Extract(text string, p *query.Pattern) []model.Match {
	locs := p.Regexp().FindAllStringIndex(text, -1)
	if locs == nil {
		return nil
	}

	starts := lineStarts(text)
	matches := make([]model.Match, 0, len(locs))
	for _, loc := range locs {
		start, end := loc[0], loc[1]

		matched := text[start:end]
		if nl := strings.IndexByte(matched, '\n'); nl >= 0 {
			end = start + nl
		}

		line := lineFor(starts, start)
		col := start - starts[line]

		matches = append(matches, model.Match{
			Start:   model.Position{Line: line, Column: col},
			End:     model.Position{Line: line, Column: col + (end - start)},
			Excerpt: truncateLine(lineAt(text, starts, line)),
		})
	}
	return matches
}

// lineStarts returns the byte offset of the first character of every line.
func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineFor finds the line containing the given byte offset.
func lineFor(starts []int, offset int) int {
	return sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
}

// lineAt returns the full text of line i, without its trailing newline.
func lineAt(text string, starts []int, i int) string {
	from := starts[i]
	to := len(text)
	if i+1 < len(starts) {
		to = starts[i+1] - 1
	}
	return text[from:to]
}

// truncateLine caps a line at model.ExcerptLimit bytes, backing off to a
// rune boundary so the excerpt stays valid UTF-8.
func truncateLine(line string) string {
	if len(line) <= model.ExcerptLimit {
		return line
	}
	cut := model.ExcerptLimit
	for cut > 0 && !utf8.RuneStart(line[cut]) {
		cut--
	}
	return line[:cut]
}
