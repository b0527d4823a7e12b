package services

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	mu     sync.Mutex
	events []ConnectEvent
	wrote  chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{wrote: make(chan struct{}, 8)}
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	if evt, ok := v.(ConnectEvent); ok {
		c.events = append(c.events, evt)
	}
	c.mu.Unlock()
	c.wrote <- struct{}{}
	return nil
}

func (c *fakeConn) Close() error { return nil }

func TestHubReconnectReplacesConnection(t *testing.T) {
	userID := uuid.New()
	first := newFakeConn()
	second := newFakeConn()

	RegisterConnectConn(userID, first)
	RegisterConnectConn(userID, second)
	defer UnregisterConnectConn(userID, second)

	deliverLocal(userID, ConnectEvent{Type: EventTypeNewMessage})

	select {
	case <-second.wrote:
	case <-time.After(time.Second):
		t.Fatal("event was not delivered to the replacement connection")
	}
	assert.Empty(t, first.events)
}

func TestUnregisterOnlyRemovesOwnConnection(t *testing.T) {
	userID := uuid.New()
	stale := newFakeConn()
	current := newFakeConn()

	RegisterConnectConn(userID, stale)
	RegisterConnectConn(userID, current)

	// The stale connection's deferred unregister must not evict the
	// replacement.
	UnregisterConnectConn(userID, stale)

	deliverLocal(userID, ConnectEvent{Type: EventTypeNewMessage})

	select {
	case <-current.wrote:
	case <-time.After(time.Second):
		t.Fatal("event was not delivered after stale unregister")
	}

	UnregisterConnectConn(userID, current)
	deliverLocal(userID, ConnectEvent{Type: EventTypeNewMessage})

	select {
	case <-current.wrote:
		t.Fatal("event delivered after connection was unregistered")
	case <-time.After(50 * time.Millisecond):
	}
}
