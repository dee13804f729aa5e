package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nishantpatil/placenet/internal/session"
	"github.com/nishantpatil/placenet/pkg/client"
	"github.com/nishantpatil/placenet/pkg/domain"
)

// loginMode switches the page between sign-in and password reset.
type loginMode int

const (
	loginModeSignIn loginMode = iota
	loginModeForgot
)

// -- messages --

type loginResultMsg struct {
	id  *domain.Identity
	err error
}

type resetRequestedMsg struct{ err error }

// -- model --

type loginModel struct {
	session *session.Store
	client  *client.Client

	mode     loginMode
	email    string
	password string
	focus    int // 0=email, 1=password
	busy     bool
	errMsg   string
	infoMsg  string
	from     string // path the user was heading to before the redirect
	width    int
	height   int
	frame    int
}

func newLoginModel(s *session.Store, c *client.Client) loginModel {
	return loginModel{session: s, client: c}
}

func (m loginModel) submit() tea.Cmd {
	s := m.session
	email, password := m.email, m.password
	return func() tea.Msg {
		id, err := s.Login(context.Background(), email, password)
		return loginResultMsg{id: id, err: err}
	}
}

func (m loginModel) requestReset() tea.Cmd {
	c := m.client
	email := m.email
	return func() tea.Msg {
		return resetRequestedMsg{err: c.ForgotPassword(context.Background(), email)}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case shimmerTickMsg:
		m.frame++
		return m, nil

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		return m, nil

	case resetRequestedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = client.Message(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.infoMsg = "if that account exists, a reset link is on its way"
		m.mode = loginModeSignIn
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			if m.mode == loginModeSignIn {
				m.focus = (m.focus + 1) % 2
			}
			return m, nil
		case "enter":
			if m.mode == loginModeForgot {
				if strings.TrimSpace(m.email) == "" {
					m.errMsg = "enter your email first"
					return m, nil
				}
				m.busy = true
				m.errMsg = ""
				return m, m.requestReset()
			}
			if m.focus == 0 {
				m.focus = 1
				return m, nil
			}
			if strings.TrimSpace(m.email) == "" || m.password == "" {
				m.errMsg = "email and password are required"
				return m, nil
			}
			m.busy = true
			m.errMsg = ""
			m.infoMsg = ""
			return m, m.submit()
		case "ctrl+f":
			m.mode = loginModeForgot
			m.focus = 0
			m.errMsg = ""
			m.infoMsg = ""
			return m, nil
		case "esc":
			if m.mode == loginModeForgot {
				m.mode = loginModeSignIn
				m.errMsg = ""
			}
			return m, nil
		default:
			if m.mode == loginModeForgot || m.focus == 0 {
				m.email = editRune(m.email, msg.String())
			} else {
				m.password = editRune(m.password, msg.String())
			}
			return m, nil
		}
	}
	return m, nil
}

func (m loginModel) View() string {
	var b strings.Builder

	if m.mode == loginModeForgot {
		b.WriteString(" " + selectedStyle.Render("Reset password") + "\n\n")
		b.WriteString(renderField("email", m.email, "you@campus.edu", false, true, m.frame) + "\n\n")
		b.WriteString(" " + dimStyle.Render("enter to send the reset link, esc to go back") + "\n")
	} else {
		b.WriteString(" " + selectedStyle.Render("Sign in") + "\n\n")
		if m.from != "" {
			b.WriteString(" " + dimStyle.Render("sign in to continue to "+m.from) + "\n\n")
		}
		b.WriteString(renderField("email", m.email, "you@campus.edu", false, m.focus == 0, m.frame) + "\n")
		b.WriteString(renderField("password", m.password, "••••••••", true, m.focus == 1, m.frame) + "\n\n")
	}

	if m.busy {
		b.WriteString(" " + dimStyle.Render("signing in...") + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(" " + errorStyle.Render(m.errMsg) + "\n")
	}
	if m.infoMsg != "" {
		b.WriteString(" " + successStyle.Render(m.infoMsg) + "\n")
	}
	return b.String()
}

func (m loginModel) helpKeys() string {
	if m.mode == loginModeForgot {
		return helpEntry("enter", "send") + "  " + helpEntry("esc", "back")
	}
	return helpEntry("tab", "field") + "  " + helpEntry("enter", "sign in") + "  " + helpEntry("ctrl+r", "register") + "  " + helpEntry("ctrl+f", "forgot") + "  " + helpEntry("ctrl+c", "quit")
}
