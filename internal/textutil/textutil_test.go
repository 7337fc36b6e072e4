package textutil

import "testing"

func TestWordCount(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"alpha beta gamma", 3},
		{"  tabs\tand\nnewlines  count ", 4},
	}
	for _, tc := range cases {
		if got := WordCount(tc.input); got != tc.want {
			t.Errorf("WordCount(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestSnippet(t *testing.T) {
	if got := Snippet("short text", 50); got != "short text" {
		t.Errorf("expected untruncated snippet, got %q", got)
	}
	if got := Snippet("alpha   beta\ngamma", 50); got != "alpha beta gamma" {
		t.Errorf("expected collapsed whitespace, got %q", got)
	}
	if got := Snippet("abcdefghij", 5); got != "abcde..." {
		t.Errorf("expected truncated snippet, got %q", got)
	}
	if got := Snippet("anything", 0); got != "" {
		t.Errorf("expected empty snippet for zero limit, got %q", got)
	}
}

func TestTitleCase(t *testing.T) {
	if got := TitleCase("high"); got != "High" {
		t.Errorf("TitleCase(high) = %q", got)
	}
	if got := TitleCase("  medium "); got != "Medium" {
		t.Errorf("TitleCase with padding = %q", got)
	}
	if got := TitleCase(""); got != "" {
		t.Errorf("TitleCase empty = %q", got)
	}
}
