package channel

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Inbound payloads are validated before dispatch so a malformed push event
// is dropped and counted instead of corrupting local state.

const messageSchemaJSON = `{
	"type": "object",
	"properties": {
		"room":    {"type": "string", "minLength": 1},
		"author":  {"type": "string", "minLength": 1},
		"message": {"type": "string"},
		"time":    {"type": "string"}
	},
	"required": ["room", "author", "message"]
}`

const notificationSchemaJSON = `{
	"type": "object",
	"properties": {
		"_id":       {"type": "string", "minLength": 1},
		"title":     {"type": "string", "minLength": 1},
		"message":   {"type": "string"},
		"isRead":    {"type": "boolean"},
		"createdAt": {"type": "string"}
	},
	"required": ["_id", "title", "message"]
}`

var (
	messageSchema      = gojsonschema.NewStringLoader(messageSchemaJSON)
	notificationSchema = gojsonschema.NewStringLoader(notificationSchemaJSON)
)

// validatePayload checks raw against the schema for the given event.
// Events without a registered schema pass through.
func validatePayload(event string, raw json.RawMessage) error {
	var schema gojsonschema.JSONLoader
	switch event {
	case EventReceiveMessage:
		schema = messageSchema
	case EventNotificationNew:
		schema = notificationSchema
	default:
		return nil
	}

	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("validating %s payload: %w", event, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return fmt.Errorf("invalid %s payload: %s", event, strings.Join(details, "; "))
	}
	return nil
}
