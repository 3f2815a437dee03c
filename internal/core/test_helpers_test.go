package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Harrybandukda/gochat-server/internal/store"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event: %+v", ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// memStore is an in-memory store.MessageStore for hub tests.
type memStore struct {
	mu       sync.Mutex
	group    []*store.GroupMessage
	private  []*store.PrivateMessage
	failNext bool
}

func (m *memStore) SaveGroupMessage(_ context.Context, msg *store.GroupMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext {
		m.failNext = false
		return errors.New("store unavailable")
	}
	saved := *msg
	saved.ID = int64(len(m.group) + 1)
	m.group = append(m.group, &saved)
	msg.ID = saved.ID
	return nil
}

func (m *memStore) SavePrivateMessage(_ context.Context, msg *store.PrivateMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := *msg
	saved.ID = int64(len(m.private) + 1)
	m.private = append(m.private, &saved)
	msg.ID = saved.ID
	return nil
}

func (m *memStore) ListGroupMessages(_ context.Context, room string, limit int) ([]*store.GroupMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*store.GroupMessage
	for i := len(m.group) - 1; i >= 0 && len(out) < limit; i-- {
		if m.group[i].Room == room {
			out = append(out, m.group[i])
		}
	}
	return out, nil
}

func (m *memStore) ListPrivateMessages(_ context.Context, userA, userB string, limit int) ([]*store.PrivateMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*store.PrivateMessage
	for i := len(m.private) - 1; i >= 0 && len(out) < limit; i-- {
		msg := m.private[i]
		if (msg.FromUser == userA && msg.ToUser == userB) || (msg.FromUser == userB && msg.ToUser == userA) {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memStore) savedGroup() []*store.GroupMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*store.GroupMessage(nil), m.group...)
}
