package tui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nishantpatil/placenet/pkg/client"
	"github.com/nishantpatil/placenet/pkg/domain"
)

// profileState is the state machine for profile interactions.
type profileState int

const (
	profileViewing profileState = iota
	profileEditing
	profileUploading // entering a resume file path
)

type profileLoadedMsg struct {
	profile *domain.StudentProfile
	err     error
}

type profileSavedMsg struct {
	profile *domain.StudentProfile
	err     error
}

type resumeUploadedMsg struct {
	url string
	err error
}

type profileModel struct {
	client *client.Client

	profile   *domain.StudentProfile
	state     profileState
	fields    [5]string // branch, degree, grad year, cgpa, skills
	focus     int
	path      string
	statusMsg string
	errMsg    string
	frame     int
	width     int
	height    int
}

var profileFieldLabels = [5]string{"branch", "degree", "grad year", "cgpa", "skills"}

func newProfileModel(c *client.Client) profileModel {
	return profileModel{client: c}
}

func (m profileModel) Init() tea.Cmd {
	return m.load()
}

func (m profileModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		p, err := c.GetStudentProfile(context.Background())
		return profileLoadedMsg{profile: p, err: err}
	}
}

func (m profileModel) save() tea.Cmd {
	c := m.client
	p := domain.StudentProfile{
		Branch: strings.TrimSpace(m.fields[0]),
		Degree: strings.TrimSpace(m.fields[1]),
	}
	if m.profile != nil {
		p.ID = m.profile.ID
		p.ResumeURL = m.profile.ResumeURL
	}
	p.GradYear, _ = strconv.Atoi(strings.TrimSpace(m.fields[2])) //nolint:errcheck // empty field stays zero
	p.CGPA, _ = strconv.ParseFloat(strings.TrimSpace(m.fields[3]), 64)
	for _, s := range strings.Split(m.fields[4], ",") {
		if s = strings.TrimSpace(s); s != "" {
			p.Skills = append(p.Skills, s)
		}
	}
	return func() tea.Msg {
		saved, err := c.SaveStudentProfile(context.Background(), p)
		return profileSavedMsg{profile: saved, err: err}
	}
}

func (m profileModel) upload(path string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return resumeUploadedMsg{err: err}
		}
		defer f.Close() //nolint:errcheck // read-only file
		url, err := c.UploadResume(context.Background(), path, f)
		return resumeUploadedMsg{url: url, err: err}
	}
}

func (m profileModel) editing() bool { return m.state != profileViewing }

func (m *profileModel) startEdit() {
	m.state = profileEditing
	m.focus = 0
	if p := m.profile; p != nil {
		m.fields[0] = p.Branch
		m.fields[1] = p.Degree
		if p.GradYear > 0 {
			m.fields[2] = strconv.Itoa(p.GradYear)
		}
		if p.CGPA > 0 {
			m.fields[3] = strconv.FormatFloat(p.CGPA, 'f', -1, 64)
		}
		m.fields[4] = strings.Join(p.Skills, ", ")
	}
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case shimmerTickMsg:
		m.frame++
		return m, nil

	case profileLoadedMsg:
		// A 404 means no profile yet; the page renders the empty state.
		if msg.err != nil && !client.IsStatus(msg.err, 404) {
			m.errMsg = client.Message(msg.err)
			return m, nil
		}
		m.errMsg = ""
		if msg.err == nil {
			m.profile = msg.profile
		}
		return m, nil

	case profileSavedMsg:
		if msg.err != nil {
			m.statusMsg = client.Message(msg.err)
			return m, nil
		}
		m.profile = msg.profile
		m.state = profileViewing
		m.statusMsg = "profile saved"
		return m, nil

	case resumeUploadedMsg:
		if msg.err != nil {
			m.statusMsg = client.Message(msg.err)
			return m, nil
		}
		if m.profile == nil {
			m.profile = &domain.StudentProfile{}
		}
		m.profile.ResumeURL = msg.url
		m.state = profileViewing
		m.path = ""
		m.statusMsg = "resume uploaded"
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch m.state {
		case profileEditing:
			switch key {
			case "tab", "down":
				m.focus = (m.focus + 1) % len(m.fields)
			case "shift+tab", "up":
				m.focus = (m.focus + len(m.fields) - 1) % len(m.fields)
			case "ctrl+s", "enter":
				return m, m.save()
			case "esc":
				m.state = profileViewing
				m.statusMsg = ""
			default:
				m.fields[m.focus] = editRune(m.fields[m.focus], key)
			}
			return m, nil
		case profileUploading:
			switch key {
			case "enter":
				if strings.TrimSpace(m.path) == "" {
					m.statusMsg = "enter a file path"
					return m, nil
				}
				return m, m.upload(strings.TrimSpace(m.path))
			case "esc":
				m.state = profileViewing
				m.path = ""
				m.statusMsg = ""
			default:
				m.path = editRune(m.path, key)
			}
			return m, nil
		default:
			switch key {
			case "e":
				m.startEdit()
				m.statusMsg = ""
			case "u":
				m.state = profileUploading
				m.statusMsg = ""
			case "r":
				return m, m.load()
			}
			return m, nil
		}
	}
	return m, nil
}

func (m profileModel) View() string {
	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render("Placement profile") + "\n\n")

	if m.errMsg != "" {
		return b.String() + " " + errorStyle.Render(m.errMsg) + "\n"
	}

	switch m.state {
	case profileEditing:
		placeholders := [5]string{"e.g. CSE", "e.g. B.Tech", "e.g. 2026", "e.g. 8.4", "comma separated"}
		for i, label := range profileFieldLabels {
			b.WriteString(renderField(label, m.fields[i], placeholders[i], false, m.focus == i, m.frame) + "\n")
		}
		b.WriteString("\n " + dimStyle.Render("ctrl+s to save, esc to cancel") + "\n")
	case profileUploading:
		b.WriteString(renderField("resume", m.path, "/path/to/resume.pdf", false, true, m.frame) + "\n\n")
		b.WriteString(" " + dimStyle.Render("enter to upload, esc to cancel") + "\n")
	default:
		if m.profile == nil {
			b.WriteString(" " + dimStyle.Render("no profile yet, press e to create one") + "\n")
		} else {
			p := m.profile
			b.WriteString(" " + metaStyle.Render("branch    ") + normalStyle.Render(p.Branch) + "\n")
			b.WriteString(" " + metaStyle.Render("degree    ") + normalStyle.Render(p.Degree) + "\n")
			if p.GradYear > 0 {
				b.WriteString(" " + metaStyle.Render("grad year ") + normalStyle.Render(strconv.Itoa(p.GradYear)) + "\n")
			}
			if p.CGPA > 0 {
				b.WriteString(" " + metaStyle.Render("cgpa      ") + normalStyle.Render(fmt.Sprintf("%.2f", p.CGPA)) + "\n")
			}
			if len(p.Skills) > 0 {
				b.WriteString(" " + metaStyle.Render("skills    ") + normalStyle.Render(strings.Join(p.Skills, ", ")) + "\n")
			}
			if p.ResumeURL != "" {
				b.WriteString(" " + metaStyle.Render("resume    ") + accentStyle.Render(p.ResumeURL) + "\n")
			}
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n " + dimStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m profileModel) helpKeys() string {
	switch m.state {
	case profileEditing:
		return helpEntry("tab", "field") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	case profileUploading:
		return helpEntry("enter", "upload") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("e", "edit") + "  " + helpEntry("u", "upload resume") + "  " + helpEntry("r", "refresh")
}
