package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nishantpatil/placenet/pkg/client"
	"github.com/nishantpatil/placenet/pkg/domain"
)

// -- messages --

type jobsLoadedMsg struct {
	jobs []domain.Job
	mine []domain.Application
	err  error
}

type appliedMsg struct {
	jobID string
	err   error
}

type jobCopyMsg struct{ err error }

// -- model --

type jobsModel struct {
	client  *client.Client
	baseURL string

	jobs      []domain.Job
	appliedTo map[string]bool
	cursor    int
	detail    bool
	statusMsg string
	errMsg    string
	width     int
	height    int
}

func newJobsModel(c *client.Client, baseURL string) jobsModel {
	return jobsModel{client: c, baseURL: baseURL, appliedTo: make(map[string]bool)}
}

func (m jobsModel) Init() tea.Cmd {
	return m.load()
}

func (m jobsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		jobs, err := c.ListJobs(context.Background())
		if err != nil {
			return jobsLoadedMsg{err: err}
		}
		// Applications mark which board entries are already applied to.
		mine, err := c.ListMyApplications(context.Background())
		if err != nil {
			mine = nil
		}
		return jobsLoadedMsg{jobs: jobs, mine: mine}
	}
}

func (m jobsModel) apply(jobID string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		_, err := c.Apply(context.Background(), jobID)
		return appliedMsg{jobID: jobID, err: err}
	}
}

func (m jobsModel) copyLink(jobID string) tea.Cmd {
	link := m.baseURL + "/jobs/" + jobID
	return func() tea.Msg {
		return jobCopyMsg{err: clipboard.WriteAll(link)}
	}
}

func (m jobsModel) Update(msg tea.Msg) (jobsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case jobsLoadedMsg:
		if msg.err != nil {
			m.errMsg = client.Message(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.jobs = msg.jobs
		m.appliedTo = make(map[string]bool, len(msg.mine))
		for _, a := range msg.mine {
			m.appliedTo[a.Job.ID] = true
		}
		if m.cursor >= len(m.jobs) {
			m.cursor = 0
		}
		return m, nil

	case appliedMsg:
		if msg.err != nil {
			m.statusMsg = client.Message(msg.err)
			return m, nil
		}
		m.appliedTo[msg.jobID] = true
		m.statusMsg = "application submitted"
		return m, nil

	case jobCopyMsg:
		if msg.err != nil {
			m.statusMsg = "copy failed"
		} else {
			m.statusMsg = "link copied"
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.jobs)-1 {
				m.cursor++
				m.statusMsg = ""
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
				m.statusMsg = ""
			}
		case "enter":
			if len(m.jobs) > 0 {
				m.detail = true
				m.statusMsg = ""
			}
		case "esc":
			m.detail = false
			m.statusMsg = ""
		case "a":
			if len(m.jobs) > 0 {
				job := m.jobs[m.cursor]
				switch {
				case m.appliedTo[job.ID]:
					m.statusMsg = "already applied"
				case !job.Open(time.Now()):
					m.statusMsg = "deadline has passed"
				default:
					return m, m.apply(job.ID)
				}
			}
		case "c":
			if m.detail && len(m.jobs) > 0 {
				return m, m.copyLink(m.jobs[m.cursor].ID)
			}
		case "r":
			return m, m.load()
		}
	}
	return m, nil
}

func (m jobsModel) View() string {
	if m.errMsg != "" {
		return " " + errorStyle.Render(m.errMsg) + "\n"
	}
	if m.detail && len(m.jobs) > 0 {
		return m.detailView(m.jobs[m.cursor])
	}
	return m.listView()
}

func (m jobsModel) listView() string {
	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render("Job board") + "  " + metaStyle.Render(fmt.Sprintf("%d open", len(m.jobs))) + "\n\n")

	if len(m.jobs) == 0 {
		b.WriteString(" " + dimStyle.Render("no jobs posted yet") + "\n")
		return b.String()
	}
	for i, j := range m.jobs {
		marker := "  "
		titleStyle := normalStyle
		if i == m.cursor {
			marker = accentStyle.Render("> ")
			titleStyle = selectedStyle
		}
		line := marker + titleStyle.Render(truncStr(j.Title, 36)) + "  " + dimStyle.Render(j.Company)
		if j.Package != "" {
			line += "  " + metaStyle.Render(j.Package)
		}
		if m.appliedTo[j.ID] {
			line += "  " + successStyle.Render("✓ applied")
		} else if !j.Open(time.Now()) {
			line += "  " + errorStyle.Render("closed")
		}
		b.WriteString(" " + line + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + dimStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m jobsModel) detailView(j domain.Job) string {
	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render(j.Title) + "  " + accentStyle.Render(j.Company) + "\n")

	meta := []string{}
	if j.Location != "" {
		meta = append(meta, j.Location)
	}
	if j.Package != "" {
		meta = append(meta, j.Package)
	}
	if !j.Deadline.IsZero() {
		meta = append(meta, "apply by "+j.Deadline.Format("02 Jan 2006"))
	}
	if len(meta) > 0 {
		b.WriteString(" " + metaStyle.Render(strings.Join(meta, " · ")) + "\n")
	}
	b.WriteString("\n " + normalStyle.Render(j.Description) + "\n")
	if len(j.Skills) > 0 {
		b.WriteString("\n " + dimStyle.Render("skills: "+strings.Join(j.Skills, ", ")) + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.appliedTo[j.ID]:
		b.WriteString(" " + successStyle.Render("✓ you have applied") + "\n")
	case !j.Open(time.Now()):
		b.WriteString(" " + errorStyle.Render("applications closed") + "\n")
	default:
		b.WriteString(" " + dimStyle.Render("press a to apply") + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString(" " + dimStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m jobsModel) helpKeys() string {
	if m.detail {
		return helpEntry("a", "apply") + "  " + helpEntry("c", "copy link") + "  " + helpEntry("esc", "back")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("a", "apply") + "  " + helpEntry("r", "refresh")
}
