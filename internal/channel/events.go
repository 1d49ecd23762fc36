package channel

import (
	"encoding/json"

	"jobportal-client/internal/models"
)

// Event names match the wire protocol spoken by the portal backend.
const (
	EventJoinRoom         = "join_room"
	EventSendMessage      = "send_message"
	EventNotificationRead = "notification:read"

	EventReceiveMessage  = "receive_message"
	EventNotificationNew = "notification:new"
)

// envelope frames every event in both directions.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func newEnvelope(event string, data interface{}) (envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return envelope{}, err
	}
	return envelope{Event: event, Data: raw}, nil
}

// joinPayload is the body of a join_room emit.
type joinPayload struct {
	Room string `json:"room"`
}

// readPayload is the body of a notification:read emit.
type readPayload struct {
	ID string `json:"id"`
}

// State is the connection lifecycle of the channel client.
type State string

const (
	// StateDisconnected means no credential, or an explicit teardown.
	StateDisconnected State = "disconnected"
	// StateConnecting means a dial is in flight.
	StateConnecting State = "connecting"
	// StateConnected means events flow.
	StateConnected State = "connected"
	// StateBackoff means the connection was lost and a reconnect is pending.
	StateBackoff State = "backoff"
)

// MessageHandler observes chat messages as they are appended.
type MessageHandler func(models.ChannelMessage)

// NotificationHandler observes notifications as they arrive.
type NotificationHandler func(models.Notification)

// StatusHandler observes connection state changes.
type StatusHandler func(State)
