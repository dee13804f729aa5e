package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nishantpatil/placenet/pkg/client"
	"github.com/nishantpatil/placenet/pkg/domain"
)

type interviewsLoadedMsg struct {
	interviews []domain.MockInterview
	err        error
}

type interviewRequestedMsg struct {
	interview *domain.MockInterview
	err       error
}

// interviewsModel is the student's mock interview page: list past sessions
// with feedback and scores, request new ones by topic.
type interviewsModel struct {
	client *client.Client

	interviews []domain.MockInterview
	cursor     int
	requesting bool
	topic      string
	statusMsg  string
	errMsg     string
	frame      int
	width      int
	height     int
}

func newInterviewsModel(c *client.Client) interviewsModel {
	return interviewsModel{client: c}
}

func (m interviewsModel) Init() tea.Cmd {
	return m.load()
}

func (m interviewsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ivs, err := c.ListMyMockInterviews(context.Background())
		return interviewsLoadedMsg{interviews: ivs, err: err}
	}
}

func (m interviewsModel) request(topic string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		iv, err := c.RequestMockInterview(context.Background(), topic)
		return interviewRequestedMsg{interview: iv, err: err}
	}
}

func (m interviewsModel) editing() bool { return m.requesting }

func (m interviewsModel) Update(msg tea.Msg) (interviewsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case shimmerTickMsg:
		m.frame++
		return m, nil

	case interviewsLoadedMsg:
		if msg.err != nil {
			m.errMsg = client.Message(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.interviews = msg.interviews
		if m.cursor >= len(m.interviews) {
			m.cursor = 0
		}
		return m, nil

	case interviewRequestedMsg:
		if msg.err != nil {
			m.statusMsg = client.Message(msg.err)
			return m, nil
		}
		m.requesting = false
		m.topic = ""
		m.statusMsg = "interview requested"
		return m, m.load()

	case tea.KeyMsg:
		key := msg.String()
		if m.requesting {
			switch key {
			case "enter":
				if strings.TrimSpace(m.topic) == "" {
					m.statusMsg = "enter a topic first"
					return m, nil
				}
				return m, m.request(strings.TrimSpace(m.topic))
			case "esc":
				m.requesting = false
				m.topic = ""
				m.statusMsg = ""
			default:
				m.topic = editRune(m.topic, key)
			}
			return m, nil
		}
		switch key {
		case "j", "down":
			if m.cursor < len(m.interviews)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "n":
			m.requesting = true
			m.statusMsg = ""
		case "r":
			return m, m.load()
		}
	}
	return m, nil
}

func (m interviewsModel) View() string {
	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render("Mock interviews") + "\n\n")

	if m.errMsg != "" {
		return b.String() + " " + errorStyle.Render(m.errMsg) + "\n"
	}

	if m.requesting {
		b.WriteString(renderField("topic", m.topic, "e.g. data structures", false, true, m.frame) + "\n\n")
		b.WriteString(" " + dimStyle.Render("enter to request, esc to cancel") + "\n")
		if m.statusMsg != "" {
			b.WriteString(" " + errorStyle.Render(m.statusMsg) + "\n")
		}
		return b.String()
	}

	if len(m.interviews) == 0 {
		b.WriteString(" " + dimStyle.Render("no mock interviews yet, press n to request one") + "\n")
	}
	for i, iv := range m.interviews {
		marker := "  "
		titleStyle := normalStyle
		if i == m.cursor {
			marker = accentStyle.Render("> ")
			titleStyle = selectedStyle
		}
		line := " " + marker + titleStyle.Render(truncStr(iv.Topic, 32))
		if iv.Status != "" {
			line += "  " + metaStyle.Render(iv.Status)
		}
		if !iv.ScheduledAt.IsZero() {
			line += "  " + dimStyle.Render(iv.ScheduledAt.Format("02 Jan 15:04"))
		}
		b.WriteString(line + "\n")
		if iv.Feedback != "" {
			b.WriteString("    " + dimStyle.Render(truncStr(iv.Feedback, 60)) + "  " + accentStyle.Render(fmt.Sprintf("%d/10", iv.Score)) + "\n")
		}
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + dimStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m interviewsModel) helpKeys() string {
	if m.requesting {
		return helpEntry("enter", "request") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("n", "request") + "  " + helpEntry("r", "refresh")
}
