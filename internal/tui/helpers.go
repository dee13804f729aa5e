package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 500

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	default:
		if utf8.RuneCountInString(key) == 1 {
			if utf8.RuneCountInString(text) >= maxInputLen {
				return text
			}
			return text + key
		}
		return text
	}
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// formatTime renders a relative timestamp for lists.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// renderField renders one labeled form field with a blinking cursor when
// focused and a dim placeholder when empty.
func renderField(label, value, placeholder string, masked, focused bool, frame int) string {
	shown := value
	if masked && shown != "" {
		shown = strings.Repeat("*", utf8.RuneCountInString(shown))
	}

	prompt := metaStyle.Render(fmt.Sprintf("%-10s", label))
	if focused {
		prompt = inputPromptStyle.Render(fmt.Sprintf("%-10s", label))
		cursor := " "
		if (frame/4)%2 == 0 {
			cursor = accentStyle.Render("█")
		}
		if shown == "" {
			return " " + prompt + cursor
		}
		return " " + prompt + selectedStyle.Render(shown) + cursor
	}
	if shown == "" {
		return " " + prompt + inputPlaceholderStyle.Render(placeholder)
	}
	return " " + prompt + normalStyle.Render(shown)
}

// renderBar renders a horizontal bar of the given width, filled
// proportionally to value/max, in the given color.
func renderBar(value, max, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 1
	}
	fill := 0
	if max > 0 {
		fill = value * width / max
	}
	if value > 0 && fill == 0 {
		fill = 1
	}
	if fill > width {
		fill = width
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", fill))
	return bar + metaStyle.Render(strings.Repeat("░", width-fill))
}
