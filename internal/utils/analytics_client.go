// analytics_client.go wraps posthog.Client so callers never have to care
// whether analytics is configured.
package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// AnalyticsClientWrapper guards a posthog client that may be uninitialized.
type AnalyticsClientWrapper struct {
	client posthog.Client
	logger *slog.Logger
}

// InitializeAnalyticsClient returns a wrapper; with an empty API key the
// wrapper is inert and every Enqueue is a no-op.
func InitializeAnalyticsClient(apiKey string, logger *slog.Logger) *AnalyticsClientWrapper {
	if apiKey == "" {
		logger.Warn("Analytics API key is empty, not initializing analytics client.")
		return &AnalyticsClientWrapper{}
	}
	wrapper := AnalyticsClientWrapper{logger: logger}
	wrapper.client, _ = posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	return &wrapper
}

func (w *AnalyticsClientWrapper) IsInitialized() bool {
	return w.client != nil
}

func (w *AnalyticsClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if w.client == nil {
		return
	}
	w.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
}

func (w *AnalyticsClientWrapper) Close() {
	if w.client == nil {
		return
	}
	w.client.Close()
}
