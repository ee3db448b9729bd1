package api

import (
	"errors"
	"fmt"
)

// GenericUserMessage is shown when the server gives nothing usable back.
const GenericUserMessage = "Error happens"

// APIError is a non-2xx response. The backend reports failures in either
// an "error" or a "message" body field; both are captured.
type APIError struct {
	Status   int
	ErrField string `json:"error"`
	Message  string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.UserMessage())
}

// UserMessage returns the text to surface to the user: the server's
// "error" field, then "message", then a generic fallback.
func (e *APIError) UserMessage() string {
	if e.ErrField != "" {
		return e.ErrField
	}
	if e.Message != "" {
		return e.Message
	}
	return GenericUserMessage
}

// UserMessage extracts a user-facing message from any error surfaced by
// the client, falling back to the generic text for transport failures.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return GenericUserMessage
}
