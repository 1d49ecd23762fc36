package models

import (
	"fmt"
	"time"
)

// ChannelMessage is one chat message exchanged over the realtime channel.
// Local sends and remote receipts share this shape; ordering is arrival
// order with no deduplication or delivery acknowledgment.
type ChannelMessage struct {
	Room   string `json:"room"`
	Author string `json:"author"`
	Body   string `json:"message"`
	Time   string `json:"time"` // display label, HH:MM of send time
}

// TimeLabel renders the send-time label attached to outgoing messages.
func TimeLabel(t time.Time) string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}
