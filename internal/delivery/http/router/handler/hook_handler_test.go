package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"brewscout/internal/delivery/http/validator"
	"brewscout/internal/domain/service"
	"brewscout/internal/errors"
	"brewscout/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHookUsecase struct {
	gotInput *usecase.HookInput
	err      error
}

func (f *fakeHookUsecase) ProcessHook(_ context.Context, input *usecase.HookInput) error {
	f.gotInput = input

	return f.err
}

// inlineRunner executes every task in place so tests observe the outcome
// without goroutine synchronization.
type inlineRunner struct {
	gotMode service.RunMode
	gotName string
}

func (r *inlineRunner) Dispatch(ctx context.Context, name string, mode service.RunMode, task func(context.Context) error) error {
	r.gotMode = mode
	r.gotName = name

	if mode == service.RunSync {
		return task(ctx)
	}

	// Async failures are swallowed, matching the real runner.
	_ = task(ctx)

	return nil
}

func newHookTestServer(uc usecase.HookUsecase, runner service.TaskRunner) (*echo.Echo, *HookHandler) {
	e := echo.New()
	e.Validator = validator.New()

	h := NewHookHandler(HookHandlerParams{
		HookUC: uc,
		Runner: runner,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return e, h
}

func performHook(e *echo.Echo, h *HookHandler, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.ReceiveTelegramUpdate(c)

	return rec
}

func TestReceiveTelegramUpdateAcceptsLocation(t *testing.T) {
	uc := &fakeHookUsecase{}
	runner := &inlineRunner{}
	e, h := newHookTestServer(uc, runner)

	body := `{
		"update_id": 42,
		"message": {
			"message_id": 7,
			"from": {"id": 1001, "is_bot": false, "first_name": "Ada", "username": "ada"},
			"chat": {"id": 2002},
			"location": {"latitude": 59.9311, "longitude": 30.3609}
		}
	}`

	rec := performHook(e, h, "/api/v1/hooks/telegram", body)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, service.RunAsync, runner.gotMode)

	require.NotNil(t, uc.gotInput)
	assert.Equal(t, int64(42), uc.gotInput.UpdateID)
	assert.Equal(t, int64(1001), uc.gotInput.Sender.TUID)
	assert.Equal(t, "ada", uc.gotInput.Sender.Username)
	assert.Equal(t, int64(2002), uc.gotInput.Message.ChatID)
	require.NotNil(t, uc.gotInput.Message.Location)
	assert.InDelta(t, 59.9311, uc.gotInput.Message.Location.Latitude, 1e-9)
	assert.InDelta(t, 30.3609, uc.gotInput.Message.Location.Longitude, 1e-9)
}

func TestReceiveTelegramUpdateRejectsMalformedJSON(t *testing.T) {
	uc := &fakeHookUsecase{}
	e, h := newHookTestServer(uc, &inlineRunner{})

	rec := performHook(e, h, "/api/v1/hooks/telegram", `{"update_id": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.gotInput)
}

func TestReceiveTelegramUpdateRejectsMissingSender(t *testing.T) {
	uc := &fakeHookUsecase{}
	e, h := newHookTestServer(uc, &inlineRunner{})

	body := `{"update_id": 42, "message": {"chat": {"id": 2002}, "text": "hi"}}`
	rec := performHook(e, h, "/api/v1/hooks/telegram", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.gotInput)
}

func TestReceiveTelegramUpdateAsyncSwallowsPipelineError(t *testing.T) {
	uc := &fakeHookUsecase{err: errors.New("pipeline down")}
	e, h := newHookTestServer(uc, &inlineRunner{})

	body := `{"update_id": 42, "message": {"from": {"id": 1001}, "chat": {"id": 2002}, "text": "/start"}}`
	rec := performHook(e, h, "/api/v1/hooks/telegram", body)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestReceiveTelegramUpdateSyncSurfacesPipelineError(t *testing.T) {
	uc := &fakeHookUsecase{err: errors.New("pipeline down")}
	runner := &inlineRunner{}
	e, h := newHookTestServer(uc, runner)

	body := `{"update_id": 42, "message": {"from": {"id": 1001}, "chat": {"id": 2002}, "text": "/start"}}`
	rec := performHook(e, h, "/api/v1/hooks/telegram?run_sync=true", body)

	assert.Equal(t, service.RunSync, runner.gotMode)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
