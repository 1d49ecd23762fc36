package models

import (
	"fmt"
	"time"
)

// Notification is a single entry in the user's notification feed.
type Notification struct {
	ID         string    `json:"_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"isRead"`
	EntityType string    `json:"entityType,omitempty"`
	EntityID   string    `json:"entityId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Age renders the notification timestamp relative to now, the way the feed
// displays it.
func (n Notification) Age(now time.Time) string {
	diff := now.Sub(n.CreatedAt)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return n.CreatedAt.Format("1/2/2006")
	}
}
