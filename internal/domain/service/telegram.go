package service

import (
	"context"
)

// Telegram Bot API methods used by the notifier.
const (
	MethodSendMessage = "sendMessage"
	MethodSendVenue   = "sendVenue"
)

// TelegramAPI is the outbound message transport. Implementations own the
// retry policy and the request timeout; exhaustion surfaces as an error.
type TelegramAPI interface {
	// Call posts the payload to the named Bot API method.
	Call(ctx context.Context, method string, payload map[string]any) error
}
