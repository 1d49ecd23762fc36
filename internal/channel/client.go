// Package channel maintains the persistent realtime connection to the
// portal, keyed by the current credential. It receives push events (chat
// messages, notifications), exposes join/send/mark-read operations, and
// buffers messages and unread counts client-side.
package channel

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"jobportal-client/internal/common/config"
	"jobportal-client/internal/common/logger"
	"jobportal-client/internal/common/metrics"
	"jobportal-client/internal/common/observability"
	"jobportal-client/internal/models"
)

// BacklogFetcher seeds the notification list over REST once a credential is
// available, before any push events arrive.
type BacklogFetcher interface {
	List(ctx context.Context) ([]models.Notification, error)
}

// Toaster receives a toast for every pushed notification.
type Toaster interface {
	Add(message, kind string) string
}

// Client owns the process-wide channel connection. Construct once; drive it
// by feeding session changes into SetCredential.
type Client struct {
	cfg     config.ChannelConfig
	backlog BacklogFetcher
	toasts  Toaster
	logger  logger.Logger
	obs     *observability.Observability
	dialer  *websocket.Dialer

	mu    sync.Mutex
	state State
	epoch int
	token string
	conn  *websocket.Conn

	messages      []models.ChannelMessage
	notifications []models.Notification
	unread        int

	statusSubs []StatusHandler
	msgSubs    []MessageHandler
	notifSubs  []NotificationHandler

	// writeMu serializes frames; gorilla permits one concurrent writer.
	writeMu sync.Mutex
}

// NewClient creates a channel client in the Disconnected state.
func NewClient(cfg config.ChannelConfig, backlog BacklogFetcher, toasts Toaster, obs *observability.Observability, log logger.Logger) *Client {
	return &Client{
		cfg:     cfg,
		backlog: backlog,
		toasts:  toasts,
		obs:     obs,
		logger:  log.WithFields(map[string]interface{}{"component": "channel"}),
		dialer: &websocket.Dialer{
			HandshakeTimeout: time.Duration(cfg.DialTimeout) * time.Millisecond,
		},
		state: StateDisconnected,
	}
}

// SetCredential reacts to session changes. A non-empty token (re)connects,
// tearing down any prior connection first so a re-login never leaks the
// previous one. An empty token severs the connection.
func (c *Client) SetCredential(token string) {
	c.mu.Lock()
	c.epoch++
	epoch := c.epoch
	conn := c.conn
	c.conn = nil
	c.token = token
	c.messages = nil
	c.notifications = nil
	c.unread = 0
	c.mu.Unlock()

	metrics.NotificationsUnread.Set(0)

	if conn != nil {
		conn.Close()
	}

	if token == "" {
		c.transition(epoch, StateDisconnected)
		return
	}

	go c.run(token, epoch)
}

// Close tears the connection down for good.
func (c *Client) Close() {
	c.SetCredential("")
}

// run is the connection loop for one credential epoch. It survives dial
// failures and lost connections with jittered exponential backoff, and
// exits when a newer epoch supersedes it.
func (c *Client) run(token string, epoch int) {
	c.seedBacklog(epoch)

	backoff := NewBackoff(c.cfg.Backoff)
	for c.isCurrent(epoch) {
		c.transition(epoch, StateConnecting)

		conn, err := c.dial(token)
		if err != nil {
			metrics.ChannelConnects.WithLabelValues("failure").Inc()
			if !c.isCurrent(epoch) {
				return
			}
			delay := backoff.Next()
			c.logger.Warn("channel connect failed", map[string]interface{}{
				"error":       err.Error(),
				"nextRetryIn": delay.String(),
			})
			c.transition(epoch, StateBackoff)
			time.Sleep(delay)
			continue
		}

		c.mu.Lock()
		if epoch != c.epoch {
			c.mu.Unlock()
			conn.Close()
			return
		}
		c.conn = conn
		c.mu.Unlock()

		metrics.ChannelConnects.WithLabelValues("success").Inc()
		c.transition(epoch, StateConnected)
		c.logger.Info("channel connected", nil)
		backoff.Reset()

		go c.pingLoop(conn)
		c.readLoop(conn)

		metrics.ChannelDisconnects.Inc()
		c.mu.Lock()
		if c.conn == conn {
			c.conn = nil
		}
		c.mu.Unlock()

		if !c.isCurrent(epoch) {
			return
		}
		delay := backoff.Next()
		c.logger.Warn("channel connection lost", map[string]interface{}{
			"nextRetryIn": delay.String(),
		})
		c.transition(epoch, StateBackoff)
		time.Sleep(delay)
	}
}

// dial opens the websocket carrying the credential as a connection-time
// parameter; events themselves are not individually authenticated.
func (c *Client) dial(token string) (*websocket.Conn, error) {
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	conn, _, err := c.dialer.Dial(u.String(), nil)
	return conn, err
}

// seedBacklog fetches the stored notifications once per credential and uses
// them to seed the list and unread counter before push events arrive.
func (c *Client) seedBacklog(epoch int) {
	if c.backlog == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(c.cfg.DialTimeout)*time.Millisecond)
	defer cancel()

	backlog, err := c.backlog.List(ctx)
	if err != nil {
		c.logger.Warn("notification backlog fetch failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	unread := 0
	for _, n := range backlog {
		if !n.IsRead {
			unread++
		}
	}

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	c.notifications = backlog
	c.unread = unread
	c.mu.Unlock()

	metrics.NotificationsUnread.Set(float64(unread))
}

func (c *Client) pingLoop(conn *websocket.Conn) {
	interval := time.Duration(c.cfg.PingInterval) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		c.writeMu.Lock()
		conn.SetWriteDeadline(time.Now().Add(time.Duration(c.cfg.WriteTimeout) * time.Millisecond))
		err := conn.WriteMessage(websocket.PingMessage, nil)
		c.writeMu.Unlock()
		if err != nil {
			return
		}
	}
}

func (c *Client) readLoop(conn *websocket.Conn) {
	readWait := 2 * time.Duration(c.cfg.PingInterval) * time.Millisecond
	conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readWait))
		return nil
	})

	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			c.logger.Debug("channel read ended", map[string]interface{}{
				"error": err.Error(),
			})
			conn.Close()
			return
		}
		conn.SetReadDeadline(time.Now().Add(readWait))
		c.dispatch(env)
	}
}

// dispatch routes one inbound event. Push events are delivered in transport
// order; a malformed payload is dropped, never fatal.
func (c *Client) dispatch(env envelope) {
	start := time.Now()
	metrics.ChannelEvents.WithLabelValues(env.Event).Inc()

	if err := validatePayload(env.Event, env.Data); err != nil {
		metrics.ChannelEventsDropped.WithLabelValues("invalid_payload").Inc()
		c.logger.Warn("dropping malformed channel event", map[string]interface{}{
			"event": env.Event,
			"error": err.Error(),
		})
		return
	}

	switch env.Event {
	case EventReceiveMessage:
		var msg models.ChannelMessage
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			metrics.ChannelEventsDropped.WithLabelValues("decode").Inc()
			return
		}
		c.appendMessage(msg)

	case EventNotificationNew:
		var n models.Notification
		if err := json.Unmarshal(env.Data, &n); err != nil {
			metrics.ChannelEventsDropped.WithLabelValues("decode").Inc()
			return
		}
		c.acceptNotification(n)

	default:
		// Connection lifecycle and unrecognized events are log-only.
		c.logger.Debug("unhandled channel event", map[string]interface{}{
			"event": env.Event,
		})
	}

	if c.obs != nil {
		ctx := context.Background()
		c.obs.RecordEvent(ctx, env.Event)
		c.obs.RecordEventDuration(ctx, time.Since(start), env.Event)
	}
}

func (c *Client) appendMessage(msg models.ChannelMessage) {
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	if c.cfg.MessageBuffer > 0 && len(c.messages) > c.cfg.MessageBuffer {
		c.messages = c.messages[len(c.messages)-c.cfg.MessageBuffer:]
	}
	subs := make([]MessageHandler, len(c.msgSubs))
	copy(subs, c.msgSubs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(msg)
	}
}

// acceptNotification prepends a pushed notification. A push that duplicates
// a backlog entry by id is suppressed.
func (c *Client) acceptNotification(n models.Notification) {
	c.mu.Lock()
	for _, existing := range c.notifications {
		if existing.ID == n.ID {
			c.mu.Unlock()
			metrics.ChannelEventsDropped.WithLabelValues("duplicate").Inc()
			return
		}
	}
	c.notifications = append([]models.Notification{n}, c.notifications...)
	if !n.IsRead {
		c.unread++
	}
	unread := c.unread
	subs := make([]NotificationHandler, len(c.notifSubs))
	copy(subs, c.notifSubs)
	c.mu.Unlock()

	metrics.NotificationsUnread.Set(float64(unread))
	if c.toasts != nil {
		c.toasts.Add(n.Title, "info")
	}
	for _, fn := range subs {
		fn(n)
	}
}

// JoinRoom emits a fire-and-forget join request. No acknowledgment is
// awaited; a no-op unless Connected.
func (c *Client) JoinRoom(roomID string) {
	c.emit(EventJoinRoom, joinPayload{Room: roomID})
}

// SendMessage appends the message locally and emits it outward. The channel
// has no failure signal for sends, so there is no rollback; a no-op unless
// Connected.
func (c *Client) SendMessage(msg models.ChannelMessage) {
	if c.Status() != StateConnected {
		c.logger.Debug("send skipped, channel not connected", nil)
		return
	}
	c.appendMessage(msg)
	c.emit(EventSendMessage, msg)
}

// MarkNotificationRead optimistically flips the local read flag and
// decrements the unread counter (floored at zero), then emits the
// acknowledgment. Best-effort: no rollback on delivery failure; a no-op
// unless Connected.
func (c *Client) MarkNotificationRead(id string) {
	if c.Status() != StateConnected {
		c.logger.Debug("mark-read skipped, channel not connected", nil)
		return
	}

	c.mu.Lock()
	flipped := false
	for i := range c.notifications {
		if c.notifications[i].ID == id {
			if !c.notifications[i].IsRead {
				c.notifications[i].IsRead = true
				flipped = true
			}
			break
		}
	}
	if flipped && c.unread > 0 {
		c.unread--
	}
	unread := c.unread
	c.mu.Unlock()

	metrics.NotificationsUnread.Set(float64(unread))
	c.emit(EventNotificationRead, readPayload{ID: id})
}

func (c *Client) emit(event string, data interface{}) {
	c.mu.Lock()
	conn := c.conn
	state := c.state
	c.mu.Unlock()

	if state != StateConnected || conn == nil {
		c.logger.Debug("emit skipped, channel not connected", map[string]interface{}{
			"event": event,
		})
		return
	}

	env, err := newEnvelope(event, data)
	if err != nil {
		c.logger.Warn("failed to encode outbound event", map[string]interface{}{
			"event": event,
			"error": err.Error(),
		})
		return
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(time.Duration(c.cfg.WriteTimeout) * time.Millisecond))
	if err := conn.WriteJSON(env); err != nil {
		// Best-effort delivery: the loss is invisible to callers.
		c.logger.Warn("outbound event write failed", map[string]interface{}{
			"event": event,
			"error": err.Error(),
		})
	}
}

// Status returns the current connection state.
func (c *Client) Status() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Messages returns a copy of the buffered chat messages in arrival order.
func (c *Client) Messages() []models.ChannelMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ChannelMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Notifications returns a copy of the notification list, newest first.
func (c *Client) Notifications() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

// UnreadCount returns the current unread notification count.
func (c *Client) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unread
}

// OnStatus registers a connection state observer.
func (c *Client) OnStatus(fn StatusHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statusSubs = append(c.statusSubs, fn)
}

// OnMessage registers a chat message observer.
func (c *Client) OnMessage(fn MessageHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgSubs = append(c.msgSubs, fn)
}

// OnNotification registers a notification observer.
func (c *Client) OnNotification(fn NotificationHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifSubs = append(c.notifSubs, fn)
}

func (c *Client) isCurrent(epoch int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return epoch == c.epoch
}

// transition updates state if epoch is still current and fans the change
// out to status subscribers.
func (c *Client) transition(epoch int, state State) {
	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	if c.state == state {
		c.mu.Unlock()
		return
	}
	c.state = state
	subs := make([]StatusHandler, len(c.statusSubs))
	copy(subs, c.statusSubs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
