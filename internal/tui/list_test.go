package tui

import (
	"strings"
	"testing"

	"github.com/saraHmercha/topsearch/internal/api"
)

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
		{"test", 0, ""},
	}
	for _, tt := range tests {
		got := truncateStr(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestTruncateStrUTF8(t *testing.T) {
	got := truncateStr("théorème égalité", 8)
	want := "théor..."
	if got != want {
		t.Errorf("truncateStr(accented, 8) = %q, want %q", got, want)
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 9)
	want := "one two\nthree\nfour"
	if got != want {
		t.Errorf("wrapText = %q, want %q", got, want)
	}
	if wrapText("   ", 5) != "" {
		t.Error("expected blank input to wrap to empty string")
	}
}

func TestRenderListEmpty(t *testing.T) {
	got := renderList(nil, 0, 9, 40, "No articles")
	if !strings.Contains(got, "No articles") {
		t.Errorf("expected empty label, got %q", got)
	}
}

func TestRenderListScrollsToCursor(t *testing.T) {
	var articles []api.Article
	for _, title := range []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"} {
		articles = append(articles, api.Article{ID: strings.ToLower(title), Title: title})
	}

	// Room for two items; cursor on the fourth.
	got := renderList(articles, 3, 6, 40, "")
	if strings.Contains(got, "Alpha") || !strings.Contains(got, "Delta") {
		t.Errorf("expected window scrolled to cursor, got %q", got)
	}
	if !strings.Contains(got, "> Delta") {
		t.Errorf("expected cursor marker on Delta, got %q", got)
	}
}

func TestRenderListItemMeta(t *testing.T) {
	got := renderListItem(api.Article{ID: "abc", Title: "T", Published: "2019-05-01T00:00:00"}, false, 40)
	if !strings.Contains(got, "2019 · abc") {
		t.Errorf("expected year and id in meta line, got %q", got)
	}
}
