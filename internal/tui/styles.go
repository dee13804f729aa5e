package tui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nishantpatil/placenet/pkg/domain"
)

// Shimmer animation for the PLACENET logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "P L A C E N E T" as a flowing wave of indigo
// light, deep slate (#232347) -> bright indigo (#818cf8).
func renderShimmerLogo(frame int) string {
	const text = "PLACENET"
	n := len(text)

	var out string
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		// Deep:   (35, 35, 71)    #232347
		// Bright: (129, 140, 248) #818cf8
		r := clampByte(35 + b*(129-35))
		g := clampByte(35 + b*(140-35))
		bl := clampByte(71 + b*(248-71))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color))
		out += s.Render(string(text[i]))

		if i < n-1 {
			out += "  "
		}
	}

	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Accent / action
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#818cf8"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Severity styles for toasts and inline messages
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f0b44a"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a0e0"))

	// Input rendering
	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#818cf8")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3a3f4e"))

	// Notification badge
	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060")).
			Bold(true)

	// Application-status colors mirror the original progress bar palette.
	statusColors = map[domain.ApplicationStatus]lipgloss.Color{
		domain.StatusApplied:     lipgloss.Color("#60a0e0"),
		domain.StatusShortlisted: lipgloss.Color("#f0b44a"),
		domain.StatusInterview:   lipgloss.Color("#b080d0"),
		domain.StatusSelected:    lipgloss.Color("#34d474"),
		domain.StatusRejected:    lipgloss.Color("#e06060"),
	}

	// Role colors for identity lines and admin lists.
	roleColors = map[domain.Role]lipgloss.Color{
		domain.RoleStudent:   lipgloss.Color("#60a0e0"),
		domain.RoleRecruiter: lipgloss.Color("#f0b44a"),
		domain.RoleAdmin:     lipgloss.Color("#c084e0"),
		domain.RoleTPO:       lipgloss.Color("#c084e0"),
	}
)

// StatusStyle returns the style for an application status.
func StatusStyle(s domain.ApplicationStatus) lipgloss.Style {
	if c, ok := statusColors[s]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return normalStyle
}

// RoleStyle returns the style for a role tag.
func RoleStyle(r domain.Role) lipgloss.Style {
	if c, ok := roleColors[r]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return normalStyle
}

// SeverityStyle returns the style for a toast severity.
func SeverityStyle(s domain.Severity) lipgloss.Style {
	switch domain.NormalizeSeverity(s) {
	case domain.SeveritySuccess:
		return successStyle
	case domain.SeverityError:
		return errorStyle
	case domain.SeverityWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

// helpEntry renders a "key label" pair for the help bar.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
