package realtime

import (
	"context"
	"log"
	"sync"

	"github.com/nishantpatil/placenet/pkg/domain"
)

// Opener dials a channel for a user. Swappable for tests.
type Opener func(ctx context.Context, userID string) (*Subscription, error)

// Manager ties the channel's lifetime to the identity's: connected if and
// only if an identity is present. It is constructed in main and disposed on
// unload; there is no package-level singleton.
type Manager struct {
	open Opener
	sink func(domain.Event)

	mu   sync.Mutex
	sub  *Subscription
	user string
}

// NewManager creates a manager that dials socketURL and forwards events to
// sink. Sink is called from the channel's read goroutine.
func NewManager(socketURL string, sink func(domain.Event)) *Manager {
	return &Manager{
		open: func(ctx context.Context, userID string) (*Subscription, error) {
			return Open(ctx, socketURL, userID)
		},
		sink: sink,
	}
}

// NewManagerWithOpener is NewManager with a custom dialer, for tests.
func NewManagerWithOpener(open Opener, sink func(domain.Event)) *Manager {
	return &Manager{open: open, sink: sink}
}

// SetIdentity reacts to a session change. A nil identity closes any open
// channel; a present one closes the previous channel first, then opens a
// fresh one for the new user. Open failures are logged, not surfaced; the
// app works without realtime, just silently.
func (m *Manager) SetIdentity(ctx context.Context, id *domain.Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == nil {
		m.closeLocked()
		return
	}
	if m.sub != nil && m.user == id.ID {
		return // already connected for this user
	}
	// Close before open so a stale room subscription never overlaps the
	// new user's channel.
	m.closeLocked()

	sub, err := m.open(ctx, id.ID)
	if err != nil {
		log.Printf("realtime: open failed: %v", err)
		return
	}
	m.sub = sub
	m.user = id.ID
	go m.forward(sub, id.Role)
}

func (m *Manager) forward(sub *Subscription, role domain.Role) {
	for ev := range sub.Events() {
		if !ev.VisibleTo(role) {
			continue
		}
		if m.sink != nil {
			m.sink(ev)
		}
	}
}

// Connected reports whether a channel is currently open.
func (m *Manager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sub != nil
}

// Close disposes the manager (app shutdown).
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Manager) closeLocked() {
	if m.sub != nil {
		if err := m.sub.Close(); err != nil {
			log.Printf("realtime: close failed: %v", err)
		}
		m.sub = nil
		m.user = ""
	}
}
