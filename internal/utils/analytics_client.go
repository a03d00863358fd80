// analytics_client.go wraps the PostHog client so callers never have to care
// whether analytics is configured.
package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// AnalyticsClient is a nil-safe wrapper around posthog.Client. Portal and API
// activity events flow through it; when no API key is configured every call
// is a no-op.
type AnalyticsClient struct {
	client posthog.Client
	logger *slog.Logger
}

// NewAnalyticsClient initializes the PostHog client. An empty API key yields
// a disabled (but usable) client.
func NewAnalyticsClient(apiKey string, endpoint string, logger *slog.Logger) *AnalyticsClient {
	if apiKey == "" {
		logger.Warn("Analytics API key is empty, activity tracking disabled.")
		return &AnalyticsClient{}
	}
	c, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize analytics client", slog.String("error", err.Error()))
		return &AnalyticsClient{}
	}
	return &AnalyticsClient{client: c, logger: logger}
}

// IsInitialized reports whether events will actually be sent.
func (a *AnalyticsClient) IsInitialized() bool {
	return a != nil && a.client != nil
}

// Enqueue sends a capture event for the given distinct id.
func (a *AnalyticsClient) Enqueue(distinctID string, event string, properties map[string]any) {
	if !a.IsInitialized() {
		return
	}
	if err := a.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil && a.logger != nil {
		a.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes and shuts down the underlying client.
func (a *AnalyticsClient) Close() {
	if a.IsInitialized() {
		a.client.Close()
	}
}
