package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nishantpatil/placenet/pkg/domain"
)

func loadedNotifications() notificationsLoadedMsg {
	return notificationsLoadedMsg{notifications: []domain.Notification{
		{ID: "n1", Message: "You were shortlisted for Backend Engineer", CreatedAt: time.Now()},
		{ID: "n2", Message: "New job posted: SRE at Acme", Read: true, CreatedAt: time.Now()},
	}}
}

func TestNotificationsUnreadBadge(t *testing.T) {
	m := newNotificationsModel(nil)
	m, _ = m.Update(loadedNotifications())

	if m.unread() != 1 {
		t.Fatalf("expected 1 unread, got %d", m.unread())
	}
	if !strings.Contains(m.View(), "1 unread") {
		t.Errorf("expected unread badge, got:\n%s", m.View())
	}
}

func TestNotificationsMarkReadUpdatesList(t *testing.T) {
	m := newNotificationsModel(nil)
	m, _ = m.Update(loadedNotifications())
	m, _ = m.Update(notificationReadMsg{id: "n1"})

	if m.unread() != 0 {
		t.Errorf("expected 0 unread after marking, got %d", m.unread())
	}
}

func TestNotificationsMarkAllRead(t *testing.T) {
	m := newNotificationsModel(nil)
	m, _ = m.Update(notificationsLoadedMsg{notifications: []domain.Notification{
		{ID: "n1", Message: "one"},
		{ID: "n2", Message: "two"},
	}})
	m, _ = m.Update(notificationReadMsg{})

	if m.unread() != 0 {
		t.Errorf("expected all read, got %d unread", m.unread())
	}
}

func TestNotificationsCloseOnEsc(t *testing.T) {
	m := newNotificationsModel(nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.closed {
		t.Error("expected overlay to close on esc")
	}
}

func TestNotificationsEmptyState(t *testing.T) {
	m := newNotificationsModel(nil)
	m, _ = m.Update(notificationsLoadedMsg{})
	if !strings.Contains(m.View(), "all caught up") {
		t.Errorf("expected empty state, got:\n%s", m.View())
	}
}
