package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nishantpatil/placenet/pkg/client"
	"github.com/nishantpatil/placenet/pkg/domain"
)

type allInterviewsLoadedMsg struct {
	interviews []domain.MockInterview
	err        error
}

type feedbackSubmittedMsg struct {
	id  string
	err error
}

// adminInterviewsModel manages mock interviews across all students:
// reviewing requests and recording feedback with a score.
type adminInterviewsModel struct {
	client *client.Client

	interviews []domain.MockInterview
	cursor     int
	scoring    bool
	feedback   string
	score      string
	focus      int // 0=feedback, 1=score
	statusMsg  string
	errMsg     string
	frame      int
	width      int
	height     int
}

func newAdminInterviewsModel(c *client.Client) adminInterviewsModel {
	return adminInterviewsModel{client: c}
}

func (m adminInterviewsModel) Init() tea.Cmd {
	return m.load()
}

func (m adminInterviewsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ivs, err := c.ListMockInterviews(context.Background())
		return allInterviewsLoadedMsg{interviews: ivs, err: err}
	}
}

func (m adminInterviewsModel) submit(id, feedback string, score int) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		err := c.SubmitInterviewFeedback(context.Background(), id, feedback, score)
		return feedbackSubmittedMsg{id: id, err: err}
	}
}

func (m adminInterviewsModel) editing() bool { return m.scoring }

func (m adminInterviewsModel) Update(msg tea.Msg) (adminInterviewsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case shimmerTickMsg:
		m.frame++
		return m, nil

	case allInterviewsLoadedMsg:
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

	case feedbackSubmittedMsg:
		if msg.err != nil {
			m.statusMsg = client.Message(msg.err)
			return m, nil
		}
		m.scoring = false
		m.feedback = ""
		m.score = ""
		m.statusMsg = "feedback recorded"
		return m, m.load()

	case tea.KeyMsg:
		key := msg.String()
		if m.scoring {
			switch key {
			case "tab", "down", "shift+tab", "up":
				m.focus = (m.focus + 1) % 2
			case "ctrl+s", "enter":
				if key == "enter" && m.focus == 0 {
					m.focus = 1
					return m, nil
				}
				score, err := strconv.Atoi(strings.TrimSpace(m.score))
				if err != nil || score < 0 || score > 10 {
					m.statusMsg = "score must be 0-10"
					return m, nil
				}
				if strings.TrimSpace(m.feedback) == "" {
					m.statusMsg = "feedback is required"
					return m, nil
				}
				return m, m.submit(m.interviews[m.cursor].ID, strings.TrimSpace(m.feedback), score)
			case "esc":
				m.scoring = false
				m.statusMsg = ""
			default:
				if m.focus == 0 {
					m.feedback = editRune(m.feedback, key)
				} else {
					m.score = editRune(m.score, key)
				}
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
		case "f", "enter":
			if len(m.interviews) > 0 {
				iv := m.interviews[m.cursor]
				m.scoring = true
				m.focus = 0
				m.feedback = iv.Feedback
				if iv.Score > 0 {
					m.score = strconv.Itoa(iv.Score)
				}
				m.statusMsg = ""
			}
		case "r":
			return m, m.load()
		}
	}
	return m, nil
}

func (m adminInterviewsModel) View() string {
	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render("Mock interview requests") + "  " + metaStyle.Render(fmt.Sprintf("%d", len(m.interviews))) + "\n\n")

	if m.errMsg != "" {
		return b.String() + " " + errorStyle.Render(m.errMsg) + "\n"
	}

	if m.scoring && len(m.interviews) > 0 {
		iv := m.interviews[m.cursor]
		b.WriteString(" " + normalStyle.Render(iv.StudentName) + "  " + dimStyle.Render(iv.Topic) + "\n\n")
		b.WriteString(renderField("feedback", m.feedback, "how did it go", false, m.focus == 0, m.frame) + "\n")
		b.WriteString(renderField("score", m.score, "0-10", false, m.focus == 1, m.frame) + "\n\n")
		b.WriteString(" " + dimStyle.Render("ctrl+s to record, esc to cancel") + "\n")
		if m.statusMsg != "" {
			b.WriteString(" " + errorStyle.Render(m.statusMsg) + "\n")
		}
		return b.String()
	}

	if len(m.interviews) == 0 {
		b.WriteString(" " + dimStyle.Render("no interview requests") + "\n")
	}
	for i, iv := range m.interviews {
		marker := "  "
		nameStyle := normalStyle
		if i == m.cursor {
			marker = accentStyle.Render("> ")
			nameStyle = selectedStyle
		}
		line := " " + marker + nameStyle.Render(truncStr(iv.StudentName, 20)) + "  " + dimStyle.Render(truncStr(iv.Topic, 24))
		if iv.Score > 0 {
			line += "  " + accentStyle.Render(fmt.Sprintf("%d/10", iv.Score))
		} else {
			line += "  " + warningStyle.Render("pending")
		}
		b.WriteString(line + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + dimStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m adminInterviewsModel) helpKeys() string {
	if m.scoring {
		return helpEntry("tab", "field") + "  " + helpEntry("ctrl+s", "record") + "  " + helpEntry("esc", "cancel")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("f", "feedback") + "  " + helpEntry("r", "refresh")
}
