package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"brewscout/internal/delivery/http/response"
	"brewscout/internal/domain/entity"
	"brewscout/internal/domain/service"
	"brewscout/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// HookHandlerParams holds dependencies for HookHandler, injected by Fx.
type HookHandlerParams struct {
	fx.In

	HookUC usecase.HookUsecase
	Runner service.TaskRunner
	Logger *slog.Logger
}

// HookHandler receives Telegram webhook deliveries.
type HookHandler struct {
	hookUC usecase.HookUsecase
	runner service.TaskRunner
	logger *slog.Logger
}

// NewHookHandler is the constructor for HookHandler.
func NewHookHandler(params HookHandlerParams) *HookHandler {
	return &HookHandler{
		hookUC: params.HookUC,
		runner: params.Runner,
		logger: params.Logger,
	}
}

// TelegramUserRequest is the sender block of a Telegram update.
type TelegramUserRequest struct {
	ID        int64  `json:"id" validate:"required"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// TelegramChatRequest identifies the chat to reply into.
type TelegramChatRequest struct {
	ID int64 `json:"id" validate:"required"`
}

// TelegramLocationRequest is a shared geographic point.
type TelegramLocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// TelegramMessageRequest is the message block of a Telegram update.
type TelegramMessageRequest struct {
	MessageID int64                    `json:"message_id"`
	From      *TelegramUserRequest     `json:"from" validate:"required"`
	Chat      *TelegramChatRequest     `json:"chat" validate:"required"`
	Text      string                   `json:"text"`
	Location  *TelegramLocationRequest `json:"location"`
}

// TelegramUpdateRequest is the webhook body Telegram posts for each update.
// Update kinds without a message block (edits, channel posts) are rejected.
type TelegramUpdateRequest struct {
	UpdateID int64                   `json:"update_id" validate:"required"`
	Message  *TelegramMessageRequest `json:"message" validate:"required"`
}

// ReceiveTelegramUpdate accepts one webhook delivery. The update is processed
// in the background and the endpoint answers 204 immediately, so Telegram
// never retries a delivery because the pipeline was slow. Passing
// ?run_sync=true processes in place instead, surfacing pipeline errors as 500.
func (h *HookHandler) ReceiveTelegramUpdate(c echo.Context) error {
	var req TelegramUpdateRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid update payload")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := toHookInput(&req)

	mode := service.RunAsync
	if c.QueryParam("run_sync") == "true" {
		mode = service.RunSync
	}

	taskName := fmt.Sprintf("telegram-update-%d", req.UpdateID)
	if err := h.runner.Dispatch(c.Request().Context(), taskName, mode, func(ctx context.Context) error {
		return h.hookUC.ProcessHook(ctx, input)
	}); err != nil {
		h.logger.Error("Webhook processing failed",
			slog.Int64("updateID", req.UpdateID),
			slog.Any("error", err),
		)

		return response.InternalServerError(c, "HOOK_FAILED", "Failed to process update")
	}

	return c.NoContent(http.StatusNoContent)
}

func toHookInput(req *TelegramUpdateRequest) *usecase.HookInput {
	msg := entity.InboundMessage{
		ChatID: req.Message.Chat.ID,
		Text:   req.Message.Text,
	}
	if loc := req.Message.Location; loc != nil {
		msg.Location = &entity.Location{
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		}
	}

	return &usecase.HookInput{
		UpdateID: req.UpdateID,
		Sender: usecase.SenderInput{
			TUID:      req.Message.From.ID,
			Username:  req.Message.From.Username,
			FirstName: req.Message.From.FirstName,
			LastName:  req.Message.From.LastName,
			IsBot:     req.Message.From.IsBot,
		},
		Message: msg,
	}
}
