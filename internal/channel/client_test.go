package channel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal-client/internal/common/config"
	"jobportal-client/internal/common/logger"
	"jobportal-client/internal/models"
)

// wsHarness is a websocket endpoint standing in for the portal's realtime
// server. It records inbound envelopes and can push events to the most
// recent connection.
type wsHarness struct {
	server   *httptest.Server
	upgrader websocket.Upgrader

	mu      sync.Mutex
	conn    *websocket.Conn
	inbound []envelope
	tokens  []string
}

func newWSHarness(t *testing.T) *wsHarness {
	h := &wsHarness{}
	h.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.mu.Lock()
		h.conn = conn
		h.tokens = append(h.tokens, r.URL.Query().Get("token"))
		h.mu.Unlock()

		for {
			var env envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			h.mu.Lock()
			h.inbound = append(h.inbound, env)
			h.mu.Unlock()
		}
	}))
	t.Cleanup(h.server.Close)
	return h
}

func (h *wsHarness) url() string {
	return "ws" + strings.TrimPrefix(h.server.URL, "http")
}

func (h *wsHarness) push(t *testing.T, event string, data interface{}) {
	env, err := newEnvelope(event, data)
	require.NoError(t, err)

	h.mu.Lock()
	conn := h.conn
	h.mu.Unlock()
	require.NotNil(t, conn, "no active connection to push on")
	require.NoError(t, conn.WriteJSON(env))
}

func (h *wsHarness) received() []envelope {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]envelope, len(h.inbound))
	copy(out, h.inbound)
	return out
}

func (h *wsHarness) dropConnection() {
	h.mu.Lock()
	conn := h.conn
	h.conn = nil
	h.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

func (h *wsHarness) connectionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.tokens)
}

type mockBacklog struct {
	ListFunc func(ctx context.Context) ([]models.Notification, error)
}

func (m *mockBacklog) List(ctx context.Context) ([]models.Notification, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

type mockToaster struct {
	mu    sync.Mutex
	added []string
}

func (m *mockToaster) Add(message, kind string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.added = append(m.added, message)
	return "toast-id"
}

func (m *mockToaster) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.added)
}

func testChannelConfig(url string) config.ChannelConfig {
	return config.ChannelConfig{
		URL:           url,
		DialTimeout:   1000,
		WriteTimeout:  1000,
		PingInterval:  200,
		MessageBuffer: 100,
		Backoff: config.BackoffConfig{
			Initial:    20,
			Max:        100,
			Multiplier: 2.0,
			Jitter:     0,
		},
	}
}

func newTestClient(t *testing.T, h *wsHarness, backlog BacklogFetcher, toasts Toaster) *Client {
	c := NewClient(testChannelConfig(h.url()), backlog, toasts, nil, logger.NewTestLogger(t))
	t.Cleanup(c.Close)
	return c
}

func waitForState(t *testing.T, c *Client, want State) {
	t.Helper()
	require.Eventually(t, func() bool {
		return c.Status() == want
	}, 3*time.Second, 10*time.Millisecond)
}

func TestClientConnectsWithCredential(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, nil, nil)

	assert.Equal(t, StateDisconnected, c.Status())

	c.SetCredential("tok-123")
	waitForState(t, c, StateConnected)

	h.mu.Lock()
	tokens := append([]string(nil), h.tokens...)
	h.mu.Unlock()
	require.NotEmpty(t, tokens)
	assert.Equal(t, "tok-123", tokens[0])
}

func TestClientSeedsBacklog(t *testing.T) {
	h := newWSHarness(t)
	backlog := &mockBacklog{
		ListFunc: func(ctx context.Context) ([]models.Notification, error) {
			return []models.Notification{
				{ID: "n2", Title: "New applicant", Message: "Someone applied", IsRead: false},
				{ID: "n1", Title: "Welcome", Message: "Hello", IsRead: true},
			}, nil
		},
	}
	c := newTestClient(t, h, backlog, nil)

	c.SetCredential("tok")
	waitForState(t, c, StateConnected)

	require.Eventually(t, func() bool {
		return len(c.Notifications()) == 2
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, c.UnreadCount())
}

func TestClientReceivesMessages(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, nil, nil)

	var seen []models.ChannelMessage
	var seenMu sync.Mutex
	c.OnMessage(func(msg models.ChannelMessage) {
		seenMu.Lock()
		seen = append(seen, msg)
		seenMu.Unlock()
	})

	c.SetCredential("tok")
	waitForState(t, c, StateConnected)

	h.push(t, EventReceiveMessage, models.ChannelMessage{
		Room: "r1", Author: "bob", Body: "hello", Time: "9:05",
	})

	require.Eventually(t, func() bool {
		return len(c.Messages()) == 1
	}, 3*time.Second, 10*time.Millisecond)

	msgs := c.Messages()
	assert.Equal(t, "bob", msgs[0].Author)
	assert.Equal(t, "hello", msgs[0].Body)

	seenMu.Lock()
	assert.Len(t, seen, 1)
	seenMu.Unlock()
}

func TestClientDropsMalformedEvents(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, nil, nil)

	c.SetCredential("tok")
	waitForState(t, c, StateConnected)

	h.push(t, EventReceiveMessage, map[string]string{"author": "bob"}) // no room
	h.push(t, EventReceiveMessage, models.ChannelMessage{
		Room: "r1", Author: "bob", Body: "still here",
	})

	require.Eventually(t, func() bool {
		return len(c.Messages()) == 1
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, "still here", c.Messages()[0].Body)
}

func TestClientNotificationPush(t *testing.T) {
	h := newWSHarness(t)
	toasts := &mockToaster{}
	c := newTestClient(t, h, nil, toasts)

	c.SetCredential("tok")
	waitForState(t, c, StateConnected)

	n := models.Notification{ID: "n1", Title: "Application update", Message: "Reviewing"}
	h.push(t, EventNotificationNew, n)
	h.push(t, EventNotificationNew, n) // duplicate push is suppressed

	require.Eventually(t, func() bool {
		return len(c.Notifications()) == 1
	}, 3*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, c.UnreadCount())
	assert.Equal(t, 1, toasts.count())

	// A second distinct notification lands at the head of the list.
	h.push(t, EventNotificationNew, models.Notification{ID: "n2", Title: "New message", Message: "hi"})
	require.Eventually(t, func() bool {
		return len(c.Notifications()) == 2
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, "n2", c.Notifications()[0].ID)
	assert.Equal(t, 2, c.UnreadCount())
}

func TestClientSendMessage(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, nil, nil)

	c.SetCredential("tok")
	waitForState(t, c, StateConnected)

	c.SendMessage(models.ChannelMessage{Room: "r1", Author: "alice", Body: "hi", Time: "9:05"})

	assert.Len(t, c.Messages(), 1)

	require.Eventually(t, func() bool {
		return len(h.received()) == 1
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, EventSendMessage, h.received()[0].Event)
}

func TestClientJoinRoom(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, nil, nil)

	c.SetCredential("tok")
	waitForState(t, c, StateConnected)

	c.JoinRoom("room-7")

	require.Eventually(t, func() bool {
		return len(h.received()) == 1
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, EventJoinRoom, h.received()[0].Event)
	assert.JSONEq(t, `{"room":"room-7"}`, string(h.received()[0].Data))
}

func TestClientMarkNotificationRead(t *testing.T) {
	h := newWSHarness(t)
	backlog := &mockBacklog{
		ListFunc: func(ctx context.Context) ([]models.Notification, error) {
			return []models.Notification{
				{ID: "n1", Title: "t", Message: "m", IsRead: false},
			}, nil
		},
	}
	c := newTestClient(t, h, backlog, nil)

	c.SetCredential("tok")
	waitForState(t, c, StateConnected)
	require.Eventually(t, func() bool {
		return c.UnreadCount() == 1
	}, 3*time.Second, 10*time.Millisecond)

	c.MarkNotificationRead("n1")

	assert.Equal(t, 0, c.UnreadCount())
	assert.True(t, c.Notifications()[0].IsRead)

	require.Eventually(t, func() bool {
		return len(h.received()) == 1
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, EventNotificationRead, h.received()[0].Event)
	assert.JSONEq(t, `{"id":"n1"}`, string(h.received()[0].Data))

	// Marking again does not drive the count negative.
	c.MarkNotificationRead("n1")
	assert.Equal(t, 0, c.UnreadCount())
}

func TestClientOpsNoopWhenDisconnected(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, nil, nil)

	c.SendMessage(models.ChannelMessage{Room: "r1", Author: "alice", Body: "hi"})
	c.JoinRoom("r1")
	c.MarkNotificationRead("n1")

	assert.Empty(t, c.Messages())
	assert.Equal(t, StateDisconnected, c.Status())
	assert.Empty(t, h.received())
}

func TestClientReconnectsAfterDrop(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, nil, nil)

	c.SetCredential("tok")
	waitForState(t, c, StateConnected)

	h.dropConnection()

	require.Eventually(t, func() bool {
		return h.connectionCount() >= 2 && c.Status() == StateConnected
	}, 5*time.Second, 10*time.Millisecond)
}

func TestClientDisconnectsOnClearedCredential(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, nil, nil)

	c.SetCredential("tok")
	waitForState(t, c, StateConnected)

	h.push(t, EventReceiveMessage, models.ChannelMessage{Room: "r1", Author: "bob", Body: "hi"})
	require.Eventually(t, func() bool {
		return len(c.Messages()) == 1
	}, 3*time.Second, 10*time.Millisecond)

	c.SetCredential("")
	waitForState(t, c, StateDisconnected)

	// Buffers do not survive a sign-out.
	assert.Empty(t, c.Messages())
	assert.Empty(t, c.Notifications())
	assert.Equal(t, 0, c.UnreadCount())
}

func TestClientReloginSupersedesOldConnection(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, nil, nil)

	c.SetCredential("tok-a")
	waitForState(t, c, StateConnected)

	c.SetCredential("tok-b")
	require.Eventually(t, func() bool {
		h.mu.Lock()
		defer h.mu.Unlock()
		return len(h.tokens) >= 2 && h.tokens[len(h.tokens)-1] == "tok-b"
	}, 5*time.Second, 10*time.Millisecond)
	waitForState(t, c, StateConnected)
}

func TestClientStatusTransitions(t *testing.T) {
	h := newWSHarness(t)
	c := newTestClient(t, h, nil, nil)

	var states []State
	var statesMu sync.Mutex
	c.OnStatus(func(s State) {
		statesMu.Lock()
		states = append(states, s)
		statesMu.Unlock()
	})

	c.SetCredential("tok")
	waitForState(t, c, StateConnected)

	statesMu.Lock()
	defer statesMu.Unlock()
	require.NotEmpty(t, states)
	assert.Equal(t, StateConnecting, states[0])
	assert.Equal(t, StateConnected, states[len(states)-1])
}
