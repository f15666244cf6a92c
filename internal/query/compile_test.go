package query

import (
	"errors"
	"testing"
)

func TestCompileLiteralEscapesMetacharacters(t *testing.T) {
	p, err := Compile("a.b")
	if err != nil {
		t.Fatalf("Compile(a.b) error: %v", err)
	}
	if !p.Literal() {
		t.Error("expected literal pattern")
	}
	if p.Regexp().MatchString("axb") {
		t.Error("literal a.b matched axb")
	}
	if !p.Regexp().MatchString("a.b") {
		t.Error("literal a.b did not match a.b")
	}
}

func TestCompileLiteralCaseInsensitive(t *testing.T) {
	p, err := Compile("foo")
	if err != nil {
		t.Fatalf("Compile(foo) error: %v", err)
	}
	if !p.Regexp().MatchString("FOO bar") {
		t.Error("literal search should be case-insensitive")
	}
}

func TestCompileSlashFormFindsAllWithoutGlobalFlag(t *testing.T) {
	p, err := Compile("/a/i")
	if err != nil {
		t.Fatalf("Compile(/a/i) error: %v", err)
	}
	got := len(p.Regexp().FindAllString("AAA", -1))
	if got != 3 {
		t.Errorf("found %d matches in AAA, want 3", got)
	}
}

func TestCompileSlashFormCaseSensitiveByDefault(t *testing.T) {
	p, err := Compile("/foo/")
	if err != nil {
		t.Fatalf("Compile(/foo/) error: %v", err)
	}
	if p.Regexp().MatchString("FOO") {
		t.Error("/foo/ should not match FOO without the i flag")
	}
	if p.Literal() {
		t.Error("/foo/ should not be a literal pattern")
	}
}

func TestCompileSlashFormFlags(t *testing.T) {
	tests := []struct {
		raw   string
		text  string
		match bool
	}{
		{"/^bar/m", "foo\nbar", true},
		{"/^bar/", "foo\nbar", false},
		{"/f.o/s", "f\no", true},
		{"/f.o/", "f\no", false},
		{"/foo/gi", "FOO", true},
	}
	for _, tt := range tests {
		p, err := Compile(tt.raw)
		if err != nil {
			t.Errorf("Compile(%s) error: %v", tt.raw, err)
			continue
		}
		if got := p.Regexp().MatchString(tt.text); got != tt.match {
			t.Errorf("Compile(%s).Match(%q) = %v, want %v", tt.raw, tt.text, got, tt.match)
		}
	}
}

func TestCompileUnclosedSlashIsLiteral(t *testing.T) {
	p, err := Compile("/foo")
	if err != nil {
		t.Fatalf("Compile(/foo) error: %v", err)
	}
	if !p.Literal() {
		t.Error("/foo without closing slash should be a literal")
	}
	if !p.Regexp().MatchString("path/foo.go") {
		t.Error("literal /foo should match path/foo.go")
	}
}

func TestCompileInvalidRegexp(t *testing.T) {
	_, err := Compile("/a(b/")
	var perr *InvalidPatternError
	if !errors.As(err, &perr) {
		t.Fatalf("Compile(/a(b/) error = %v, want InvalidPatternError", err)
	}
}

func TestCompileUnknownFlag(t *testing.T) {
	_, err := Compile("/foo/y")
	var perr *InvalidPatternError
	if !errors.As(err, &perr) {
		t.Fatalf("Compile(/foo/y) error = %v, want InvalidPatternError", err)
	}
}

func TestCompileRejectsZeroWidthPatterns(t *testing.T) {
	for _, raw := range []string{"/a*/", "/x?/i", "//", "/^/m"} {
		_, err := Compile(raw)
		var perr *InvalidPatternError
		if !errors.As(err, &perr) {
			t.Errorf("Compile(%s) error = %v, want InvalidPatternError", raw, err)
		}
	}
}

func TestCompileEmptyQuery(t *testing.T) {
	if _, err := Compile(""); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("Compile(\"\") error = %v, want ErrEmptyQuery", err)
	}
}
