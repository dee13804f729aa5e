package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishantpatil/placenet/pkg/domain"
)

// fakeConn is an in-memory Conn. Incoming frames are queued on the incoming
// channel; writes and closes are recorded.
type fakeConn struct {
	mu       sync.Mutex
	written  []any
	closes   int
	incoming chan []byte
}

func newFakeConn() *fakeConn {
	return &fakeConn{incoming: make(chan []byte, 8)}
}

func (f *fakeConn) WriteJSON(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, v)
	return nil
}

func (f *fakeConn) ReadJSON(v any) error {
	data, ok := <-f.incoming
	if !ok {
		return errors.New("connection closed")
	}
	return json.Unmarshal(data, v)
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	if f.closes == 1 {
		close(f.incoming)
	}
	return nil
}

func (f *fakeConn) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closes
}

func (f *fakeConn) push(t *testing.T, ev domain.Event) {
	t.Helper()
	data, err := json.Marshal(ev)
	require.NoError(t, err)
	f.incoming <- data
}

func TestSubscriptionSendsJoinOnOpen(t *testing.T) {
	conn := newFakeConn()
	sub, err := newSubscription(conn, "u1")
	require.NoError(t, err)
	defer sub.Close() //nolint:errcheck

	conn.mu.Lock()
	require.Len(t, conn.written, 1)
	join, ok := conn.written[0].(joinMessage)
	conn.mu.Unlock()
	require.True(t, ok)
	assert.Equal(t, "join", join.Event)
	assert.Equal(t, "u1", join.UserID)
}

func TestSubscriptionForwardsEvents(t *testing.T) {
	conn := newFakeConn()
	sub, err := newSubscription(conn, "u1")
	require.NoError(t, err)
	defer sub.Close() //nolint:errcheck

	conn.push(t, domain.Event{Kind: domain.EventNotification, Severity: domain.SeverityError, Message: "interview cancelled"})

	select {
	case ev := <-sub.Events():
		assert.Equal(t, domain.SeverityError, ev.Severity)
		assert.Equal(t, "interview cancelled", ev.Message)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSubscriptionCloseRunsExactlyOnce(t *testing.T) {
	conn := newFakeConn()
	sub, err := newSubscription(conn, "u1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub.Close() //nolint:errcheck
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, conn.closeCount())
}

func TestManagerConnectedIffIdentityPresent(t *testing.T) {
	var conns []*fakeConn
	var mu sync.Mutex
	open := func(_ context.Context, userID string) (*Subscription, error) {
		conn := newFakeConn()
		mu.Lock()
		conns = append(conns, conn)
		mu.Unlock()
		return newSubscription(conn, userID)
	}

	m := NewManagerWithOpener(open, nil)
	assert.False(t, m.Connected())

	id := &domain.Identity{ID: "u1", Email: "a@b.c", Role: domain.RoleStudent}
	m.SetIdentity(context.Background(), id)
	assert.True(t, m.Connected())

	m.SetIdentity(context.Background(), nil)
	assert.False(t, m.Connected())

	m.SetIdentity(context.Background(), id)
	assert.True(t, m.Connected())
	m.Close()

	// present -> absent -> present: exactly one close then one new open.
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, conns, 2, "exactly two opens across the toggle")
	assert.Equal(t, 1, conns[0].closeCount(), "first channel closed exactly once")
}

func TestManagerClosesOldBeforeOpeningNew(t *testing.T) {
	var order []string
	var mu sync.Mutex
	record := func(s string) {
		mu.Lock()
		order = append(order, s)
		mu.Unlock()
	}

	open := func(_ context.Context, userID string) (*Subscription, error) {
		record("open:" + userID)
		conn := newFakeConn()
		return newSubscription(conn, userID)
	}
	m := NewManagerWithOpener(open, nil)

	m.SetIdentity(context.Background(), &domain.Identity{ID: "u1", Email: "a@b.c", Role: domain.RoleStudent})
	first := m.sub
	m.SetIdentity(context.Background(), &domain.Identity{ID: "u2", Email: "b@b.c", Role: domain.RoleRecruiter})

	// The first subscription must be fully closed before the second opened.
	select {
	case _, ok := <-first.Events():
		assert.False(t, ok, "first subscription's event stream must be closed")
	case <-time.After(time.Second):
		t.Fatal("first subscription still open after identity swap")
	}
	mu.Lock()
	assert.Equal(t, []string{"open:u1", "open:u2"}, order)
	mu.Unlock()
	m.Close()
}

func TestManagerReusesChannelForSameUser(t *testing.T) {
	opens := 0
	open := func(_ context.Context, userID string) (*Subscription, error) {
		opens++
		return newSubscription(newFakeConn(), userID)
	}
	m := NewManagerWithOpener(open, nil)
	id := &domain.Identity{ID: "u1", Email: "a@b.c", Role: domain.RoleStudent}

	m.SetIdentity(context.Background(), id)
	m.SetIdentity(context.Background(), id)
	assert.Equal(t, 1, opens, "no duplicate connection for the same user")
	m.Close()
}

func TestManagerFiltersEventsByRole(t *testing.T) {
	conn := newFakeConn()
	open := func(_ context.Context, userID string) (*Subscription, error) {
		return newSubscription(conn, userID)
	}

	got := make(chan domain.Event, 8)
	m := NewManagerWithOpener(open, func(ev domain.Event) { got <- ev })
	m.SetIdentity(context.Background(), &domain.Identity{ID: "u1", Email: "r@b.c", Role: domain.RoleRecruiter})

	// job:new broadcasts target students; a recruiter session must not see it.
	conn.push(t, domain.Event{Kind: domain.EventJobPosted, JobID: "j1"})
	conn.push(t, domain.Event{Kind: domain.EventNotification, Severity: domain.SeverityInfo, Message: "visible"})

	select {
	case ev := <-got:
		assert.Equal(t, "visible", ev.Message, "role-filtered broadcast must be dropped first")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for forwarded event")
	}
	m.Close()
}
