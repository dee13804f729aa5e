package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nishantpatil/placenet/pkg/client"
	"github.com/nishantpatil/placenet/pkg/domain"
)

// progressWidth is the bar width for application progress.
const progressWidth = 20

type applicationsLoadedMsg struct {
	apps []domain.Application
	err  error
}

type applicationsModel struct {
	client *client.Client

	apps   []domain.Application
	cursor int
	errMsg string
	width  int
	height int
}

func newApplicationsModel(c *client.Client) applicationsModel {
	return applicationsModel{client: c}
}

func (m applicationsModel) Init() tea.Cmd {
	return m.load()
}

func (m applicationsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		apps, err := c.ListMyApplications(context.Background())
		return applicationsLoadedMsg{apps: apps, err: err}
	}
}

func (m applicationsModel) Update(msg tea.Msg) (applicationsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case applicationsLoadedMsg:
		if msg.err != nil {
			m.errMsg = client.Message(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.apps = msg.apps
		if m.cursor >= len(m.apps) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.apps)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "r":
			return m, m.load()
		}
	}
	return m, nil
}

// renderProgress renders the four-stage application ladder as a filled bar
// plus the current stage label.
func renderProgress(status domain.ApplicationStatus) string {
	color := statusColors[status]
	if color == "" {
		color = statusColors[domain.StatusApplied]
	}
	bar := renderBar(status.Percent(), 100, progressWidth, color)
	return bar + " " + StatusStyle(status).Render(fmt.Sprintf("%3d%% %s", status.Percent(), status))
}

func (m applicationsModel) View() string {
	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render("My applications") + "  " + metaStyle.Render(fmt.Sprintf("%d total", len(m.apps))) + "\n\n")

	if m.errMsg != "" {
		return b.String() + " " + errorStyle.Render(m.errMsg) + "\n"
	}
	if len(m.apps) == 0 {
		b.WriteString(" " + dimStyle.Render("you have not applied to any jobs yet") + "\n")
		return b.String()
	}

	for i, a := range m.apps {
		marker := "  "
		titleStyle := normalStyle
		if i == m.cursor {
			marker = accentStyle.Render("> ")
			titleStyle = selectedStyle
		}
		b.WriteString(" " + marker + titleStyle.Render(truncStr(a.Job.Title, 28)) + "  " + dimStyle.Render(a.Job.Company) + "  " + metaStyle.Render(formatTime(a.CreatedAt)) + "\n")
		b.WriteString("    " + renderProgress(a.Status) + "\n")
	}
	return b.String()
}

func (m applicationsModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("r", "refresh")
}
