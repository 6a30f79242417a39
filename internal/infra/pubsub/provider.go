// Package pubsub publishes processed-hook events for downstream analytics.
package pubsub

import (
	"context"
	"log/slog"

	"brewscout/config"
	"brewscout/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const providerGoogle = "google"

// noopPublisher is a no-op implementation when Pub/Sub is disabled
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishHookEvent(_ context.Context, event *service.HookEvent) error {
	p.logger.Debug("[NoopPubSub] Event publishing disabled, skipping",
		slog.String("outcome", event.Outcome),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher creates an EventPublisher based on configuration
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" || cfg.Provider == "noop" {
		logger.Info("PubSub not configured, using no-op publisher")

		return &noopPublisher{logger: logger}, nil
	}

	if cfg.Provider != providerGoogle {
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}

	if cfg.ProjectID == "" {
		return nil, errors.New("project ID is required for google provider")
	}
	if cfg.TopicID == "" {
		return nil, errors.New("topic ID is required for google provider")
	}

	publisher, err := NewGooglePubSubPublisher(params.Ctx, cfg.ProjectID, cfg.TopicID, logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}
