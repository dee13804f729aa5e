// Package realtime delivers server-pushed events over a websocket. A
// connection exists only while an identity is present; the manager swaps
// subscriptions on identity change with close-before-open ordering so a
// stale room subscription can never leak across users.
package realtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/nishantpatil/placenet/pkg/domain"
)

// Conn is the subset of the websocket connection the channel needs.
// *websocket.Conn satisfies it; tests substitute a fake.
type Conn interface {
	WriteJSON(v any) error
	ReadJSON(v any) error
	Close() error
}

// joinMessage announces the user id so the server can target room-scoped
// pushes.
type joinMessage struct {
	Event  string `json:"event"`
	UserID string `json:"user_id"`
}

// Subscription is a cancellable handle on one open channel. Close runs
// exactly once per open, no matter how many callers race on it.
type Subscription struct {
	conn   Conn
	events chan domain.Event
	once   sync.Once
	done   chan struct{}
}

// Open dials the socket URL, joins the user's room, and starts forwarding
// events. Reconnect policy is the transport's problem; a read error simply
// ends the subscription.
func Open(ctx context.Context, socketURL, userID string) (*Subscription, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, socketURL, nil)
	if err != nil {
		return nil, fmt.Errorf("realtime.Open: dial: %w", err)
	}
	return newSubscription(conn, userID)
}

func newSubscription(conn Conn, userID string) (*Subscription, error) {
	if err := conn.WriteJSON(joinMessage{Event: "join", UserID: userID}); err != nil {
		conn.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("realtime: join: %w", err)
	}
	s := &Subscription{
		conn:   conn,
		events: make(chan domain.Event, 16),
		done:   make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

func (s *Subscription) readLoop() {
	defer close(s.events)
	for {
		var ev domain.Event
		if err := s.conn.ReadJSON(&ev); err != nil {
			// Transport closed or broke; no retry here.
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		default:
			// Slow consumer: drop rather than block the read loop.
		}
	}
}

// Events is the stream of server pushes. It is closed when the
// subscription ends.
func (s *Subscription) Events() <-chan domain.Event {
	return s.events
}

// Close tears the connection down. Safe to call multiple times; the
// underlying close runs once.
func (s *Subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.conn.Close()
	})
	return err
}
