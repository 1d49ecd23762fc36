package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		message  string
		wantKind Kind
		wantMsg  string
	}{
		{"401 maps to auth", 401, "token expired", KindAuth, "token expired"},
		{"401 without message gets default", 401, "", KindAuth, "Authentication failed"},
		{"400 maps to validation", 400, "email already registered", KindValidation, "email already registered"},
		{"404 maps to validation", 404, "job not found", KindValidation, "job not found"},
		{"500 maps to server", 500, "boom", KindServer, "boom"},
		{"502 without message gets default", 502, "", KindServer, "Server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromStatus(tt.status, tt.message)
			assert.Equal(t, tt.wantKind, err.Kind)
			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, tt.wantMsg, err.Message)
		})
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNetwork(NewNetworkError(io.EOF)))
	assert.True(t, IsAuth(NewAuthError("")))
	assert.True(t, IsValidation(NewValidationError(422, "bad salary range")))
	assert.True(t, IsServer(NewServerError(500, "")))

	assert.False(t, IsAuth(NewNetworkError(io.EOF)))
	assert.False(t, IsNetwork(fmt.Errorf("plain error")))
}

func TestPredicates_WrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("saving job: %w", NewAuthError("expired"))
	assert.True(t, IsAuth(wrapped))

	apiErr, ok := AsAPIError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, 401, apiErr.Status)
}

func TestNetworkErrorUnwrap(t *testing.T) {
	err := NewNetworkError(io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, "Network Error", err.Message)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "job not found", UserMessage(NewValidationError(404, "job not found")))
	assert.Equal(t, "plain", UserMessage(fmt.Errorf("plain")))
}
