package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nishantpatil/placenet/pkg/client"
	"github.com/nishantpatil/placenet/pkg/domain"
)

type notificationsLoadedMsg struct {
	notifications []domain.Notification
	err           error
}

type notificationReadMsg struct {
	id  string // empty when all were marked
	err error
}

// notificationsModel is the notification center overlay. It stays loaded in
// the background so the unread badge is accurate, and resyncs from the
// server whenever a realtime push lands.
type notificationsModel struct {
	client *client.Client

	notifications []domain.Notification
	cursor        int
	errMsg        string
	closed        bool
	width         int
	height        int
}

func newNotificationsModel(c *client.Client) notificationsModel {
	return notificationsModel{client: c}
}

func (m notificationsModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ns, err := c.ListNotifications(context.Background())
		return notificationsLoadedMsg{notifications: ns, err: err}
	}
}

func (m notificationsModel) markRead(id string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		return notificationReadMsg{id: id, err: c.MarkNotificationRead(context.Background(), id)}
	}
}

func (m notificationsModel) markAllRead() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		return notificationReadMsg{err: c.MarkAllNotificationsRead(context.Background())}
	}
}

func (m notificationsModel) unread() int {
	return domain.UnreadCount(m.notifications)
}

func (m notificationsModel) Update(msg tea.Msg) (notificationsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case notificationsLoadedMsg:
		if msg.err != nil {
			m.errMsg = client.Message(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.notifications = msg.notifications
		if m.cursor >= len(m.notifications) {
			m.cursor = 0
		}
		return m, nil

	case notificationReadMsg:
		if msg.err != nil {
			m.errMsg = client.Message(msg.err)
			return m, nil
		}
		for i := range m.notifications {
			if msg.id == "" || m.notifications[i].ID == msg.id {
				m.notifications[i].Read = true
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.notifications)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if len(m.notifications) > 0 && !m.notifications[m.cursor].Read {
				return m, m.markRead(m.notifications[m.cursor].ID)
			}
		case "a":
			if m.unread() > 0 {
				return m, m.markAllRead()
			}
		case "esc", "n":
			m.closed = true
		}
	}
	return m, nil
}

func (m notificationsModel) View() string {
	var b strings.Builder
	title := " " + selectedStyle.Render("Notifications")
	if u := m.unread(); u > 0 {
		title += "  " + badgeStyle.Render(fmt.Sprintf("● %d unread", u))
	}
	b.WriteString(title + "\n\n")

	if m.errMsg != "" {
		return b.String() + " " + errorStyle.Render(m.errMsg) + "\n"
	}
	if len(m.notifications) == 0 {
		b.WriteString(" " + dimStyle.Render("all caught up") + "\n")
		return b.String()
	}
	for i, n := range m.notifications {
		marker := "  "
		msgStyle := dimStyle
		if !n.Read {
			msgStyle = normalStyle
		}
		if i == m.cursor {
			marker = accentStyle.Render("> ")
			msgStyle = selectedStyle
		}
		dot := "  "
		if !n.Read {
			dot = badgeStyle.Render("● ")
		}
		b.WriteString(" " + marker + dot + msgStyle.Render(truncStr(n.Message, 56)) + "  " + metaStyle.Render(formatTime(n.CreatedAt)) + "\n")
	}
	return b.String()
}

func (m notificationsModel) helpKeys() string {
	return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "mark read") + "  " + helpEntry("a", "mark all") + "  " + helpEntry("esc", "close")
}
