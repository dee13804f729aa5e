package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nishantpatil/placenet/pkg/client"
	"github.com/nishantpatil/placenet/pkg/domain"
)

type dashboardLoadedMsg struct {
	apps       []domain.Application
	jobs       []domain.Job
	interviews []domain.MockInterview
	err        error
}

// dashboardModel is the student's landing page: application pipeline at a
// glance, upcoming interviews, and the freshest board entries.
type dashboardModel struct {
	client *client.Client

	apps       []domain.Application
	jobs       []domain.Job
	interviews []domain.MockInterview
	errMsg     string
	width      int
	height     int
}

func newDashboardModel(c *client.Client) dashboardModel {
	return dashboardModel{client: c}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.load()
}

func (m dashboardModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		apps, err := c.ListMyApplications(context.Background())
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		jobs, err := c.ListJobs(context.Background())
		if err != nil {
			jobs = nil
		}
		ivs, err := c.ListMyMockInterviews(context.Background())
		if err != nil {
			ivs = nil
		}
		return dashboardLoadedMsg{apps: apps, jobs: jobs, interviews: ivs}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dashboardLoadedMsg:
		if msg.err != nil {
			m.errMsg = client.Message(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.apps = msg.apps
		m.jobs = msg.jobs
		m.interviews = msg.interviews
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.load()
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.errMsg != "" {
		return " " + errorStyle.Render(m.errMsg) + "\n"
	}

	var b strings.Builder

	// Pipeline counts across the status ladder.
	counts := map[domain.ApplicationStatus]int{}
	for _, a := range m.apps {
		counts[a.Status]++
	}
	b.WriteString(" " + selectedStyle.Render("Your pipeline") + "\n")
	pipeline := []domain.ApplicationStatus{
		domain.StatusApplied, domain.StatusShortlisted, domain.StatusInterview, domain.StatusSelected,
	}
	parts := make([]string, 0, len(pipeline))
	for _, s := range pipeline {
		parts = append(parts, StatusStyle(s).Render(fmt.Sprintf("%d %s", counts[s], s)))
	}
	b.WriteString(" " + strings.Join(parts, metaStyle.Render("  ·  ")) + "\n\n")

	// Upcoming interviews.
	upcoming := 0
	for _, iv := range m.interviews {
		if !iv.ScheduledAt.IsZero() && iv.ScheduledAt.After(time.Now()) {
			if upcoming == 0 {
				b.WriteString(" " + selectedStyle.Render("Upcoming interviews") + "\n")
			}
			b.WriteString("  " + normalStyle.Render(truncStr(iv.Topic, 32)) + "  " + dimStyle.Render(iv.ScheduledAt.Format("02 Jan 15:04")) + "\n")
			upcoming++
		}
	}
	if upcoming > 0 {
		b.WriteString("\n")
	}

	// Freshest open jobs.
	b.WriteString(" " + selectedStyle.Render("Latest jobs") + "\n")
	if len(m.jobs) == 0 {
		b.WriteString("  " + dimStyle.Render("nothing on the board yet") + "\n")
	}
	shown := 0
	for _, j := range m.jobs {
		if !j.Open(time.Now()) {
			continue
		}
		b.WriteString("  " + normalStyle.Render(truncStr(j.Title, 32)) + "  " + dimStyle.Render(j.Company) + "  " + metaStyle.Render(formatTime(j.CreatedAt)) + "\n")
		shown++
		if shown == 5 {
			break
		}
	}
	return b.String()
}

func (m dashboardModel) helpKeys() string {
	return helpEntry("r", "refresh")
}
