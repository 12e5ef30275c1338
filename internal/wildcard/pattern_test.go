package wildcard

import (
	"errors"
	"testing"
)

func TestSegmentMatch(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		candidate string
		want      bool
	}{
		{name: "literal exact", pattern: "docs", candidate: "docs", want: true},
		{name: "literal is case sensitive", pattern: "docs", candidate: "Docs", want: false},
		{name: "literal is anchored at end", pattern: "doc", candidate: "docs", want: false},
		{name: "literal is anchored at start", pattern: "ocs", candidate: "docs", want: false},
		{name: "literal with dot", pattern: "a.txt", candidate: "a.txt", want: true},
		{name: "dot is not any char", pattern: "a.txt", candidate: "abtxt", want: false},
		{name: "star matches empty", pattern: "*", candidate: "", want: true},
		{name: "star matches anything", pattern: "*", candidate: "anything at all", want: true},
		{name: "question matches one", pattern: "?", candidate: "x", want: true},
		{name: "question rejects empty", pattern: "?", candidate: "", want: false},
		{name: "question rejects two", pattern: "?", candidate: "xy", want: false},
		{name: "question matches multibyte rune", pattern: "?", candidate: "é", want: true},
		{name: "hash matches digit", pattern: "#", candidate: "7", want: true},
		{name: "hash rejects letter", pattern: "#", candidate: "a", want: false},
		{name: "hash rejects two digits", pattern: "#", candidate: "12", want: false},
		{name: "composite long", pattern: "*123#?", candidate: "abc1234b", want: true},
		{name: "composite short", pattern: "*123#?", candidate: "12300", want: true},
		{name: "composite missing tail", pattern: "*123#?", candidate: "1230", want: false},
		{name: "composite letter for digit", pattern: "*123#?", candidate: "123a", want: false},
		{name: "digit letter any", pattern: "#a?", candidate: "1aa", want: true},
		{name: "digit letter any rejects letter", pattern: "#a?", candidate: "aaa", want: false},
		{name: "whitespace literal", pattern: "21 Winter*", candidate: "21 WinterSemester", want: true},
		{name: "star in middle", pattern: "Ein*woche", candidate: "Einführungswoche", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q): %v", tt.pattern, err)
			}
			if got := p.Match(tt.candidate); got != tt.want {
				t.Errorf("Compile(%q).Match(%q) = %v, want %v", tt.pattern, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestCompileInvalid(t *testing.T) {
	for _, pattern := range []string{"", "[abc]", "a|b", "(x)", "a$", "^a", `a\b`, "a{2}", "a/b"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := Compile(pattern)
			if !errors.Is(err, ErrInvalidPattern) {
				t.Errorf("Compile(%q) error = %v, want ErrInvalidPattern", pattern, err)
			}
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustCompile("[x]")
}

func TestSegmentEqual(t *testing.T) {
	a := MustCompile("*.go")
	b := MustCompile("*.go")
	c := MustCompile("*.md")

	if !a.Equal(b) {
		t.Error("patterns from equal source should be equal")
	}
	if a.Equal(c) {
		t.Error("patterns from different source should differ")
	}
	if !a.Equal(a) {
		t.Error("pattern should equal itself")
	}
}

func TestHasTokens(t *testing.T) {
	tests := map[string]bool{
		"plain": false,
		"a*":    true,
		"?":     true,
		"v#":    true,
		"a.b-c": false,
		"":      false,
	}
	for in, want := range tests {
		if got := HasTokens(in); got != want {
			t.Errorf("HasTokens(%q) = %v, want %v", in, got, want)
		}
	}
}
