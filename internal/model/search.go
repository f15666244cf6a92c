package model

// Position is a 0-based location in a file. Column counts bytes from the
// start of the line.
type Position struct {
	Line   int
	Column int
}

// ExcerptLimit bounds the stored excerpt of a matched line. Positions are
// computed against the untruncated line regardless.
const ExcerptLimit = 200

// Match is one located occurrence of a search pattern. Start and End are
// always on the same line; End.Column - Start.Column is the length of the
// matched text. Excerpt holds the containing line truncated to
// ExcerptLimit bytes, so a match far into a long line can point past the
// end of its own excerpt.
type Match struct {
	Start   Position
	End     Position
	Excerpt string
}

// FileResult aggregates the matches found in a single file. Path is
// slash-separated and relative to the project root.
type FileResult struct {
	Path    string
	Matches []Match
}

// ResultSet is the complete outcome of one search invocation, in
// file-listing order. TotalCount counts every match found, including those
// past the display cap; views render at most the cap and show the rest as
// a count.
type ResultSet struct {
	Query        string
	Files        []FileResult
	TotalCount   int
	FilesScanned int
	FilesFailed  int
}

// Empty reports whether the search produced no matches at all.
func (rs *ResultSet) Empty() bool {
	return rs == nil || len(rs.Files) == 0
}
