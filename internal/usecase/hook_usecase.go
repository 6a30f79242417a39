// Package usecase defines the application-layer interfaces and their
// input/output types.
package usecase

import (
	"context"

	"brewscout/internal/domain/entity"
)

// SenderInput describes the sender of a webhook delivery.
type SenderInput struct {
	TUID      int64
	Username  string
	FirstName string
	LastName  string
	IsBot     bool
}

// HookInput is one inbound Telegram webhook delivery, already validated at
// the transport boundary.
type HookInput struct {
	UpdateID int64
	Sender   SenderInput
	Message  entity.InboundMessage
}

// HookUsecase turns an inbound webhook delivery into zero or more outbound
// Telegram messages.
type HookUsecase interface {
	// ProcessHook runs the pipeline once, in a single deterministic pass.
	// Expected not-found conditions map to user-facing replies, not errors;
	// a returned error means infrastructure failed for this request.
	ProcessHook(ctx context.Context, input *HookInput) error
}
