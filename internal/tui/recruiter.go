package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nishantpatil/placenet/pkg/client"
	"github.com/nishantpatil/placenet/pkg/domain"
)

// recruiterState is the state machine for the recruiter dashboard.
type recruiterState int

const (
	recJobs       recruiterState = iota
	recPosting                   // new job form
	recApplicants                // triaging one job's applicants
)

// -- messages --

type myJobsLoadedMsg struct {
	jobs []domain.Job
	err  error
}

type jobPostedMsg struct {
	job *domain.Job
	err error
}

type applicantsLoadedMsg struct {
	jobID string
	apps  []domain.Application
	err   error
}

type statusUpdatedMsg struct {
	appID  string
	status domain.ApplicationStatus
	err    error
}

// -- model --

type recruiterModel struct {
	client *client.Client

	state     recruiterState
	jobs      []domain.Job
	cursor    int
	statusMsg string
	errMsg    string

	// post form: title, company, description, location, package, skills
	form      [6]string
	formFocus int

	// applicants
	applicants []domain.Application
	appCursor  int

	frame  int
	width  int
	height int
}

var recruiterFormLabels = [6]string{"title", "company", "about", "location", "package", "skills"}

func newRecruiterModel(c *client.Client) recruiterModel {
	return recruiterModel{client: c}
}

func (m recruiterModel) Init() tea.Cmd {
	return m.loadJobs()
}

func (m recruiterModel) loadJobs() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		jobs, err := c.ListMyJobs(context.Background())
		return myJobsLoadedMsg{jobs: jobs, err: err}
	}
}

func (m recruiterModel) postJob() tea.Cmd {
	c := m.client
	req := client.CreateJobRequest{
		Title:       strings.TrimSpace(m.form[0]),
		Company:     strings.TrimSpace(m.form[1]),
		Description: strings.TrimSpace(m.form[2]),
		Location:    strings.TrimSpace(m.form[3]),
		Package:     strings.TrimSpace(m.form[4]),
	}
	for _, s := range strings.Split(m.form[5], ",") {
		if s = strings.TrimSpace(s); s != "" {
			req.Skills = append(req.Skills, s)
		}
	}
	return func() tea.Msg {
		job, err := c.CreateJob(context.Background(), req)
		return jobPostedMsg{job: job, err: err}
	}
}

func (m recruiterModel) loadApplicants(jobID string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		apps, err := c.ListJobApplications(context.Background(), jobID)
		return applicantsLoadedMsg{jobID: jobID, apps: apps, err: err}
	}
}

func (m recruiterModel) updateStatus(appID string, status domain.ApplicationStatus) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		err := c.UpdateApplicationStatus(context.Background(), appID, status)
		return statusUpdatedMsg{appID: appID, status: status, err: err}
	}
}

func (m recruiterModel) editing() bool { return m.state == recPosting }

func (m recruiterModel) Update(msg tea.Msg) (recruiterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case shimmerTickMsg:
		m.frame++
		return m, nil

	case myJobsLoadedMsg:
		if msg.err != nil {
			m.errMsg = client.Message(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.jobs = msg.jobs
		if m.cursor >= len(m.jobs) {
			m.cursor = 0
		}
		return m, nil

	case jobPostedMsg:
		if msg.err != nil {
			m.statusMsg = client.Message(msg.err)
			return m, nil
		}
		m.state = recJobs
		m.form = [6]string{}
		m.formFocus = 0
		m.statusMsg = "job posted"
		return m, m.loadJobs()

	case applicantsLoadedMsg:
		if msg.err != nil {
			m.statusMsg = client.Message(msg.err)
			return m, nil
		}
		m.state = recApplicants
		m.applicants = msg.apps
		m.appCursor = 0
		return m, nil

	case statusUpdatedMsg:
		if msg.err != nil {
			m.statusMsg = client.Message(msg.err)
			return m, nil
		}
		for i := range m.applicants {
			if m.applicants[i].ID == msg.appID {
				m.applicants[i].Status = msg.status
			}
		}
		m.statusMsg = "moved to " + string(msg.status)
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch m.state {
		case recPosting:
			switch key {
			case "tab", "down":
				m.formFocus = (m.formFocus + 1) % len(m.form)
			case "shift+tab", "up":
				m.formFocus = (m.formFocus + len(m.form) - 1) % len(m.form)
			case "ctrl+s":
				if strings.TrimSpace(m.form[0]) == "" || strings.TrimSpace(m.form[1]) == "" || strings.TrimSpace(m.form[2]) == "" {
					m.statusMsg = "title, company and description are required"
					return m, nil
				}
				m.statusMsg = ""
				return m, m.postJob()
			case "esc":
				m.state = recJobs
				m.statusMsg = ""
			default:
				m.form[m.formFocus] = editRune(m.form[m.formFocus], key)
			}
			return m, nil

		case recApplicants:
			switch key {
			case "j", "down":
				if m.appCursor < len(m.applicants)-1 {
					m.appCursor++
				}
			case "k", "up":
				if m.appCursor > 0 {
					m.appCursor--
				}
			case "s", "i", "a", "x":
				if len(m.applicants) == 0 {
					return m, nil
				}
				app := m.applicants[m.appCursor]
				if app.Status.Terminal() {
					m.statusMsg = "application already decided"
					return m, nil
				}
				var status domain.ApplicationStatus
				switch key {
				case "s":
					status = domain.StatusShortlisted
				case "i":
					status = domain.StatusInterview
				case "a":
					status = domain.StatusSelected
				case "x":
					status = domain.StatusRejected
				}
				return m, m.updateStatus(app.ID, status)
			case "esc":
				m.state = recJobs
				m.statusMsg = ""
			}
			return m, nil

		default: // recJobs
			switch key {
			case "j", "down":
				if m.cursor < len(m.jobs)-1 {
					m.cursor++
				}
			case "k", "up":
				if m.cursor > 0 {
					m.cursor--
				}
			case "enter":
				if len(m.jobs) > 0 {
					m.statusMsg = ""
					return m, m.loadApplicants(m.jobs[m.cursor].ID)
				}
			case "n":
				m.state = recPosting
				m.statusMsg = ""
			case "r":
				return m, m.loadJobs()
			}
			return m, nil
		}
	}
	return m, nil
}

func (m recruiterModel) View() string {
	if m.errMsg != "" {
		return " " + errorStyle.Render(m.errMsg) + "\n"
	}
	switch m.state {
	case recPosting:
		return m.postView()
	case recApplicants:
		return m.applicantsView()
	default:
		return m.jobsView()
	}
}

func (m recruiterModel) jobsView() string {
	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render("Your postings") + "  " + metaStyle.Render(fmt.Sprintf("%d", len(m.jobs))) + "\n\n")
	if len(m.jobs) == 0 {
		b.WriteString(" " + dimStyle.Render("no postings yet, press n to create one") + "\n")
	}
	for i, j := range m.jobs {
		marker := "  "
		titleStyle := normalStyle
		if i == m.cursor {
			marker = accentStyle.Render("> ")
			titleStyle = selectedStyle
		}
		b.WriteString(" " + marker + titleStyle.Render(truncStr(j.Title, 36)) + "  " + metaStyle.Render(formatTime(j.CreatedAt)) + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + dimStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m recruiterModel) postView() string {
	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render("Post a job") + "\n\n")
	placeholders := [6]string{"Backend Engineer", "Acme Corp", "what the role involves", "remote / city", "12 LPA", "comma separated"}
	for i, label := range recruiterFormLabels {
		b.WriteString(renderField(label, m.form[i], placeholders[i], false, m.formFocus == i, m.frame) + "\n")
	}
	b.WriteString("\n " + dimStyle.Render("ctrl+s to post, esc to cancel") + "\n")
	if m.statusMsg != "" {
		b.WriteString(" " + errorStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m recruiterModel) applicantsView() string {
	var b strings.Builder
	title := "Applicants"
	if len(m.jobs) > 0 && m.cursor < len(m.jobs) {
		title = "Applicants · " + m.jobs[m.cursor].Title
	}
	b.WriteString(" " + selectedStyle.Render(title) + "  " + metaStyle.Render(fmt.Sprintf("%d", len(m.applicants))) + "\n\n")

	if len(m.applicants) == 0 {
		b.WriteString(" " + dimStyle.Render("no applications yet") + "\n")
	}
	for i, a := range m.applicants {
		marker := "  "
		nameStyle := normalStyle
		if i == m.appCursor {
			marker = accentStyle.Render("> ")
			nameStyle = selectedStyle
		}
		name := a.StudentName
		if name == "" {
			name = a.StudentID
		}
		b.WriteString(" " + marker + nameStyle.Render(truncStr(name, 28)) + "  " + StatusStyle(a.Status).Render(string(a.Status)) + "  " + metaStyle.Render(formatTime(a.CreatedAt)) + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + dimStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m recruiterModel) helpKeys() string {
	switch m.state {
	case recPosting:
		return helpEntry("tab", "field") + "  " + helpEntry("ctrl+s", "post") + "  " + helpEntry("esc", "cancel")
	case recApplicants:
		return helpEntry("j/k", "nav") + "  " + helpEntry("s", "shortlist") + "  " + helpEntry("i", "interview") + "  " + helpEntry("a", "select") + "  " + helpEntry("x", "reject") + "  " + helpEntry("esc", "back")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "applicants") + "  " + helpEntry("n", "post") + "  " + helpEntry("r", "refresh")
}
