// Package query turns user-entered search strings into executable patterns.
//
// A query of the form /body/flags is treated as a regular expression with
// optional flags (i, m, s; g and u are accepted for muscle memory but have
// no effect, since Go's FindAll scan is always global and always
// UTF-8-aware). Anything else is a literal, case-insensitive substring
// search.
package query

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptyQuery is returned for an empty input string. Callers treat it as
// "nothing to do" rather than a failure.
var ErrEmptyQuery = errors.New("empty query")

// InvalidPatternError reports a query that cannot be compiled into a usable
// pattern: bad regexp syntax, an unknown flag, or a pattern that can match
// the empty string (which would make a global scan degenerate).
type InvalidPatternError struct {
	Query  string
	Reason string
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %s", e.Query, e.Reason)
}

// Pattern is the compiled form of a user query.
type Pattern struct {
	re      *regexp.Regexp
	raw     string
	literal bool
}

// Regexp exposes the underlying expression for scanning.
func (p *Pattern) Regexp() *regexp.Regexp { return p.re }

// Literal reports whether the query was compiled as a plain substring
// rather than a user-supplied expression.
func (p *Pattern) Literal() bool { return p.literal }

func (p *Pattern) String() string { return p.raw }

// Compile builds a Pattern from raw user input.
//
// Patterns that can match the empty string are rejected: every match must
// advance the scan, and a zero-width global match has no meaningful
// position to report.
func Compile(raw string) (*Pattern, error) {
	if raw == "" {
		return nil, ErrEmptyQuery
	}

	p := &Pattern{raw: raw}

	if body, flags, ok := slashForm(raw); ok {
		prefix, err := inlineFlags(flags)
		if err != nil {
			return nil, &InvalidPatternError{Query: raw, Reason: err.Error()}
		}
		re, err := regexp.Compile(prefix + body)
		if err != nil {
			return nil, &InvalidPatternError{Query: raw, Reason: err.Error()}
		}
		p.re = re
	} else {
		p.re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(raw))
		p.literal = true
	}

	if p.re.MatchString("") {
		return nil, &InvalidPatternError{Query: raw, Reason: "pattern matches the empty string"}
	}
	return p, nil
}

// slashForm splits a /body/flags query. A leading slash with no closing
// slash is not the regex form; it falls through to a literal search.
func slashForm(raw string) (body, flags string, ok bool) {
	if len(raw) < 2 || raw[0] != '/' {
		return "", "", false
	}
	end := strings.LastIndexByte(raw[1:], '/')
	if end < 0 {
		return "", "", false
	}
	end++ // account for the sliced-off leading slash
	return raw[1:end], raw[end+1:], true
}

// inlineFlags converts slash-form flags to a Go inline-flag prefix.
func inlineFlags(flags string) (string, error) {
	var set strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			if !strings.ContainsRune(set.String(), f) {
				set.WriteRune(f)
			}
		case 'g', 'u':
			// Global and unicode are how the scan works anyway.
		default:
			return "", fmt.Errorf("unsupported flag %q", string(f))
		}
	}
	if set.Len() == 0 {
		return "", nil
	}
	return "(?" + set.String() + ")", nil
}
