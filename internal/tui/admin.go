package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nishantpatil/placenet/pkg/client"
	"github.com/nishantpatil/placenet/pkg/domain"
)

// chartWidth is the bar width for analytics charts.
const chartWidth = 24

type adminLoadedMsg struct {
	analytics  *domain.Analytics
	unverified []domain.Identity
	err        error
}

type userVerifiedMsg struct {
	userID string
	err    error
}

// adminModel is the admin/TPO overview: placement analytics plus the
// account verification queue.
type adminModel struct {
	client *client.Client

	analytics  *domain.Analytics
	unverified []domain.Identity
	cursor     int
	statusMsg  string
	errMsg     string
	width      int
	height     int
}

func newAdminModel(c *client.Client) adminModel {
	return adminModel{client: c}
}

func (m adminModel) Init() tea.Cmd {
	return m.load()
}

func (m adminModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		a, err := c.GetAnalytics(context.Background())
		if err != nil {
			return adminLoadedMsg{err: err}
		}
		users, err := c.ListUnverifiedUsers(context.Background())
		if err != nil {
			users = nil
		}
		return adminLoadedMsg{analytics: a, unverified: users}
	}
}

func (m adminModel) verify(userID string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		err := c.VerifyUser(context.Background(), userID)
		return userVerifiedMsg{userID: userID, err: err}
	}
}

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case adminLoadedMsg:
		if msg.err != nil {
			m.errMsg = client.Message(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.analytics = msg.analytics
		m.unverified = msg.unverified
		if m.cursor >= len(m.unverified) {
			m.cursor = 0
		}
		return m, nil

	case userVerifiedMsg:
		if msg.err != nil {
			m.statusMsg = client.Message(msg.err)
			return m, nil
		}
		kept := m.unverified[:0]
		for _, u := range m.unverified {
			if u.ID != msg.userID {
				kept = append(kept, u)
			}
		}
		m.unverified = kept
		if m.cursor >= len(m.unverified) {
			m.cursor = 0
		}
		m.statusMsg = "account verified"
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.unverified)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "v", "enter":
			if len(m.unverified) > 0 {
				return m, m.verify(m.unverified[m.cursor].ID)
			}
		case "r":
			return m, m.load()
		}
	}
	return m, nil
}

func (m adminModel) View() string {
	if m.errMsg != "" {
		return " " + errorStyle.Render(m.errMsg) + "\n"
	}

	var b strings.Builder
	if a := m.analytics; a != nil {
		b.WriteString(" " + selectedStyle.Render("Placement overview") + "\n")
		b.WriteString(" " + metaStyle.Render(fmt.Sprintf("%d students · %d recruiters · %d jobs · %d applications · %d%% placed",
			a.TotalStudents, a.TotalRecruiters, a.TotalJobs, a.TotalApplications, a.PlacementRate())) + "\n\n")

		// Status ladder, always the full set in fixed order.
		max := 0
		for _, p := range a.StatusSeries() {
			if p.Value > max {
				max = p.Value
			}
		}
		for _, p := range a.StatusSeries() {
			color := statusColors[domain.ApplicationStatus(p.Label)]
			b.WriteString(fmt.Sprintf(" %s %s %s\n",
				metaStyle.Render(fmt.Sprintf("%-20s", p.Label)),
				renderBar(p.Value, max, chartWidth, color),
				normalStyle.Render(fmt.Sprintf("%d", p.Value))))
		}

		if len(a.ByBranch) > 0 {
			b.WriteString("\n " + selectedStyle.Render("Placed by branch") + "\n")
			branches := make([]string, 0, len(a.ByBranch))
			for br := range a.ByBranch {
				branches = append(branches, br)
			}
			sort.Strings(branches)
			bmax := 0
			for _, br := range branches {
				if a.ByBranch[br] > bmax {
					bmax = a.ByBranch[br]
				}
			}
			for _, br := range branches {
				b.WriteString(fmt.Sprintf(" %s %s %s\n",
					metaStyle.Render(fmt.Sprintf("%-20s", truncStr(br, 20))),
					renderBar(a.ByBranch[br], bmax, chartWidth, lipgloss.Color("#818cf8")),
					normalStyle.Render(fmt.Sprintf("%d", a.ByBranch[br]))))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(" " + selectedStyle.Render("Verification queue") + "  " + metaStyle.Render(fmt.Sprintf("%d pending", len(m.unverified))) + "\n")
	if len(m.unverified) == 0 {
		b.WriteString(" " + dimStyle.Render("nothing pending") + "\n")
	}
	for i, u := range m.unverified {
		marker := "  "
		nameStyle := normalStyle
		if i == m.cursor {
			marker = accentStyle.Render("> ")
			nameStyle = selectedStyle
		}
		b.WriteString(" " + marker + nameStyle.Render(truncStr(u.Name, 24)) + "  " + dimStyle.Render(u.Email) + "  " + RoleStyle(u.Role).Render(string(u.Role)) + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + dimStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m adminModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("v", "verify") + "  " + helpEntry("r", "refresh")
}
