// Package telegram implements the outbound Bot API transport with a bounded
// retry policy.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"brewscout/config"
	"brewscout/internal/domain/service"
	"brewscout/internal/errors"

	"github.com/gojektech/heimdall/v6"
	"github.com/gojektech/heimdall/v6/httpclient"
	"go.uber.org/fx"
)

const backoffExponent = 2.0

// ClientParams defines the required parameters
type ClientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

type client struct {
	http   *httpclient.Client
	apiURL string
	token  string
	logger *slog.Logger
}

// NewClient creates the retrying Bot API client. Attempts are bounded by the
// configured retry count and spaced by capped exponential backoff; a single
// attempt is bounded by the configured request timeout.
func NewClient(params ClientParams) (service.TelegramAPI, error) {
	cfg := params.Config.Telegram
	if cfg == nil {
		return nil, errors.New("telegram configuration is required")
	}

	backoff := heimdall.NewExponentialBackoff(
		cfg.BackoffInitial,
		cfg.BackoffMax,
		backoffExponent,
		cfg.BackoffInitial/2, // jitter
	)

	httpClient := httpclient.NewClient(
		httpclient.WithHTTPTimeout(cfg.RequestTimeout),
		httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
		httpclient.WithRetryCount(cfg.RetryCount),
	)

	return &client{
		http:   httpClient,
		apiURL: cfg.APIURL,
		token:  cfg.Token,
		logger: params.Logger,
	}, nil
}

// Call posts the payload to the named Bot API method. A non-2xx reply after
// retry exhaustion surfaces as an error carrying Telegram's description.
func (c *client) Call(ctx context.Context, method string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal telegram payload")
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.apiURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to build telegram request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "telegram %s request failed", method)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read telegram response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("telegram %s returned %s: %s", method, resp.Status, apiDescription(respBody))
	}

	c.logger.Debug("Telegram call succeeded", slog.String("method", method))

	return nil
}

// apiDescription pulls the human-readable error out of a Bot API reply.
func apiDescription(body []byte) string {
	var reply struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &reply); err != nil || reply.Description == "" {
		return string(body)
	}

	return reply.Description
}
