package service

import (
	"context"
)

// Hook outcomes published for analytics after each processed webhook.
const (
	OutcomeWelcomeSent  = "welcome_sent"
	OutcomeIgnoredText  = "ignored_text"
	OutcomeNoLocation   = "no_location"
	OutcomeCityNotFound = "city_not_found"
	OutcomeNoShops      = "no_shops"
	OutcomeNoNearby     = "no_nearby"
	OutcomeVenuesSent   = "venues_sent"
)

// HookEvent summarizes one processed webhook delivery.
type HookEvent struct {
	Username   string `json:"username"`
	ChatID     int64  `json:"chat_id"`
	Outcome    string `json:"outcome"`
	CityName   string `json:"city_name,omitempty"`
	VenueCount int    `json:"venue_count,omitempty"`
}

// EventPublisher defines the interface for publishing hook events to a
// message queue. Publishing is best-effort and never fails the request.
type EventPublisher interface {
	// PublishHookEvent publishes a processed-hook event.
	PublishHookEvent(ctx context.Context, event *HookEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
