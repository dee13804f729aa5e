package tui

import (
	"strings"
	"testing"
)

func TestEditRune(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
		want string
	}{
		{"append", "ab", "c", "abc"},
		{"backspace", "abc", "backspace", "ab"},
		{"backspace empty", "", "backspace", ""},
		{"ignore enter", "ab", "enter", "ab"},
		{"ignore esc", "ab", "esc", "ab"},
		{"multibyte", "caf", "é", "café"},
		{"multibyte backspace", "café", "backspace", "caf"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := editRune(tc.text, tc.key); got != tc.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tc.text, tc.key, got, tc.want)
			}
		})
	}
}

func TestEditRuneClampsLength(t *testing.T) {
	text := strings.Repeat("a", maxInputLen)
	if got := editRune(text, "b"); got != text {
		t.Error("expected input clamped at maxInputLen")
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "a\nb\nc\nd\n"
	if got := truncateToHeight(s, 2); got != "a\nb\n" {
		t.Errorf("truncateToHeight = %q", got)
	}
	if got := truncateToHeight(s, 0); got != s {
		t.Errorf("maxLines<=0 must return input unchanged, got %q", got)
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("hello", 10); got != "hello" {
		t.Errorf("short string must pass through, got %q", got)
	}
	if got := truncStr("hello world", 6); got != "hello…" {
		t.Errorf("truncStr = %q", got)
	}
}
