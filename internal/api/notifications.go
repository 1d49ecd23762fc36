package api

import (
	"context"
	"encoding/json"
	"fmt"

	"jobportal-client/internal/models"
)

const (
	surfaceNotifications = "notifications"
	surfaceChat          = "chat"
)

// NotificationsService covers the notification backlog endpoint. The feed
// itself is pushed over the realtime channel; REST only seeds it.
type NotificationsService struct {
	c *Client
}

func (c *Client) Notifications() *NotificationsService {
	return &NotificationsService{c: c}
}

// List fetches the stored notification backlog, newest first.
func (s *NotificationsService) List(ctx context.Context) ([]models.Notification, error) {
	var env envelope
	if err := s.c.get(ctx, surfaceNotifications, "/notifications", &env); err != nil {
		return nil, err
	}

	var notifications []models.Notification
	if err := json.Unmarshal(env.Data, &notifications); err != nil {
		return nil, fmt.Errorf("decoding notifications: %w", err)
	}
	return notifications, nil
}

// ChatService covers the chat bootstrap endpoint.
type ChatService struct {
	c *Client
}

func (c *Client) Chat() *ChatService {
	return &ChatService{c: c}
}

// Bootstrap opens (or returns) the chat room between the current user and a
// counterpart, yielding the room id to join on the channel.
func (s *ChatService) Bootstrap(ctx context.Context, participantID string) (string, error) {
	body := map[string]string{"participantId": participantID}

	var env envelope
	if err := s.c.post(ctx, surfaceChat, "/chat", body, &env); err != nil {
		return "", err
	}

	var payload struct {
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return "", fmt.Errorf("decoding chat bootstrap: %w", err)
	}
	return payload.RoomID, nil
}
