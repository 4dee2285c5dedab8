package feed

import (
	"strings"
	"testing"
)

func TestStripHTML_RemovesTags(t *testing.T) {
	got := StripHTML(`<p>Hello <strong>world</strong></p><ul><li>one</li><li>two</li></ul>`)

	if strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Errorf("Expected no markup in %q", got)
	}
	for _, want := range []string{"Hello", "world", "one", "two"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q to contain %q", got, want)
		}
	}
}

func TestStripHTML_CollapsesWhitespace(t *testing.T) {
	got := StripHTML("<p>a</p>\n\n   <p>b</p>")
	if got != "a b" {
		t.Errorf("Expected collapsed text 'a b', got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("Expected short string untouched, got %q", got)
	}
	if got := Truncate("hello", 3); got != "hel" {
		t.Errorf("Expected 'hel', got %q", got)
	}
	// Rune-aware: multi-byte characters must not be split.
	if got := Truncate("한국어테스트", 3); got != "한국어" {
		t.Errorf("Expected '한국어', got %q", got)
	}
}

func TestDescriptionFromContent_Truncates(t *testing.T) {
	content := "<article><p>" + strings.Repeat("word ", 300) + "</p></article>"

	got := DescriptionFromContent(content)

	if len([]rune(got)) > MaxDescriptionLength {
		t.Errorf("Expected at most %d runes, got %d", MaxDescriptionLength, len([]rune(got)))
	}
	if strings.Contains(got, "<") {
		t.Errorf("Expected no markup in %q", got)
	}
}
