package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/nishantpatil/placenet/pkg/domain"
)

// toastTTL is how long a toast stays on screen.
const toastTTL = 4 * time.Second

// toast is one transient severity-styled message.
type toast struct {
	id       string
	severity domain.Severity
	message  string
	at       time.Time
}

type toastTickMsg time.Time

func toastTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

func newToast(severity domain.Severity, message string) toast {
	return toast{
		id:       uuid.NewString(),
		severity: domain.NormalizeSeverity(severity),
		message:  message,
		at:       time.Now(),
	}
}

// pruneToasts drops toasts past their TTL, preserving order.
func pruneToasts(ts []toast, now time.Time) []toast {
	kept := ts[:0]
	for _, t := range ts {
		if now.Sub(t.at) < toastTTL {
			kept = append(kept, t)
		}
	}
	return kept
}

// renderToasts renders active toasts, newest last, one per line.
func renderToasts(ts []toast) string {
	if len(ts) == 0 {
		return ""
	}
	out := ""
	for _, t := range ts {
		marker := SeverityStyle(t.severity).Render("▌")
		out += " " + marker + " " + normalStyle.Render(t.message) + "\n"
	}
	return out
}
