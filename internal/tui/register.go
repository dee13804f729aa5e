package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nishantpatil/placenet/internal/session"
	"github.com/nishantpatil/placenet/pkg/domain"
)

// registerStep walks the sign-up wizard.
type registerStep int

const (
	stepRole registerStep = iota
	stepDetails
	stepPassword
)

// registrableRoles are the roles a visitor may sign up as. Admin and TPO
// accounts are provisioned out of band.
var registrableRoles = []domain.Role{domain.RoleStudent, domain.RoleRecruiter}

type registerResultMsg struct {
	id  *domain.Identity
	err error
}

type registerModel struct {
	session *session.Store

	step       registerStep
	roleCursor int
	name       string
	email      string
	password   string
	confirm    string
	focus      int
	busy       bool
	errMsg     string
	frame      int
}

func newRegisterModel(s *session.Store) registerModel {
	return registerModel{session: s}
}

func (m registerModel) submit() tea.Cmd {
	s := m.session
	name, email, password := m.name, m.email, m.password
	role := registrableRoles[m.roleCursor]
	return func() tea.Msg {
		id, err := s.Register(context.Background(), name, email, password, role)
		return registerResultMsg{id: id, err: err}
	}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		m.frame++
		return m, nil

	case registerResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		key := msg.String()
		switch m.step {
		case stepRole:
			switch key {
			case "j", "down":
				if m.roleCursor < len(registrableRoles)-1 {
					m.roleCursor++
				}
			case "k", "up":
				if m.roleCursor > 0 {
					m.roleCursor--
				}
			case "enter":
				m.step = stepDetails
				m.focus = 0
			}
			return m, nil

		case stepDetails:
			switch key {
			case "tab", "down":
				m.focus = (m.focus + 1) % 2
			case "shift+tab", "up":
				m.focus = (m.focus + 1) % 2
			case "enter":
				if m.focus == 0 {
					m.focus = 1
					return m, nil
				}
				if strings.TrimSpace(m.name) == "" || !strings.Contains(m.email, "@") {
					m.errMsg = "name and a valid email are required"
					return m, nil
				}
				m.errMsg = ""
				m.step = stepPassword
				m.focus = 0
			case "esc":
				m.step = stepRole
			default:
				if m.focus == 0 {
					m.name = editRune(m.name, key)
				} else {
					m.email = editRune(m.email, key)
				}
			}
			return m, nil

		case stepPassword:
			switch key {
			case "tab", "down", "shift+tab", "up":
				m.focus = (m.focus + 1) % 2
			case "enter":
				if m.focus == 0 {
					m.focus = 1
					return m, nil
				}
				if len(m.password) < 6 {
					m.errMsg = "password must be at least 6 characters"
					return m, nil
				}
				if m.password != m.confirm {
					m.errMsg = "passwords do not match"
					return m, nil
				}
				m.busy = true
				m.errMsg = ""
				return m, m.submit()
			case "esc":
				m.step = stepDetails
				m.focus = 0
			default:
				if m.focus == 0 {
					m.password = editRune(m.password, key)
				} else {
					m.confirm = editRune(m.confirm, key)
				}
			}
			return m, nil
		}
	}
	return m, nil
}

func (m registerModel) View() string {
	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render("Create account") + "\n\n")

	switch m.step {
	case stepRole:
		b.WriteString(" " + dimStyle.Render("I am a...") + "\n\n")
		for i, r := range registrableRoles {
			line := "   " + RoleStyle(r).Render(string(r))
			if i == m.roleCursor {
				line = " " + accentStyle.Render("> ") + selectedStyle.Render(string(r))
			}
			b.WriteString(line + "\n")
		}
	case stepDetails:
		b.WriteString(renderField("name", m.name, "Full Name", false, m.focus == 0, m.frame) + "\n")
		b.WriteString(renderField("email", m.email, "you@campus.edu", false, m.focus == 1, m.frame) + "\n")
	case stepPassword:
		b.WriteString(renderField("password", m.password, "min 6 characters", true, m.focus == 0, m.frame) + "\n")
		b.WriteString(renderField("confirm", m.confirm, "repeat password", true, m.focus == 1, m.frame) + "\n")
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(" " + dimStyle.Render("creating account...") + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(" " + errorStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

func (m registerModel) helpKeys() string {
	if m.step == stepRole {
		return helpEntry("j/k", "role") + "  " + helpEntry("enter", "next") + "  " + helpEntry("ctrl+l", "sign in")
	}
	return helpEntry("tab", "field") + "  " + helpEntry("enter", "next") + "  " + helpEntry("esc", "back") + "  " + helpEntry("ctrl+l", "sign in")
}
