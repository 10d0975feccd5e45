// Package utils holds small helpers shared by services and handlers.
package utils

import (
	"log/slog"

	"github.com/fxdesk/remittance_backend/internal/core/ports/gateways"
	"github.com/posthog/posthog-go"
)

// DefaultPosthogEndpoint is the EU ingestion host.
const DefaultPosthogEndpoint = "https://eu.i.posthog.com"

// PosthogClientWrapper sends product analytics events for the desk and the settlement pipelines.
// A wrapper without a client, as returned when no API key is configured, drops every event.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
	// common is merged into every event; per-event properties win on conflict.
	common map[string]any
}

var _ gateways.EventTracker = (*PosthogClientWrapper)(nil)

// InitializePosthogClient connects to posthog at endpoint. It never fails: a missing key or a
// client that cannot be built yields a wrapper that drops events.
func InitializePosthogClient(apiKey, endpoint string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, analytics events will be dropped")
		return &PosthogClientWrapper{logger: logger}
	}
	if endpoint == "" {
		endpoint = DefaultPosthogEndpoint
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to create posthog client, analytics events will be dropped", slog.String("error", err.Error()))
		return &PosthogClientWrapper{logger: logger}
	}
	logger.Info("Posthog client initialized", slog.String("endpoint", endpoint))
	return newPosthogWrapper(client, logger)
}

func newPosthogWrapper(client posthog.Client, logger *slog.Logger) *PosthogClientWrapper {
	return &PosthogClientWrapper{
		posthogClient: client,
		logger:        logger,
		common:        map[string]any{"app": "remit_backend"},
	}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w.posthogClient != nil
}

// Enqueue queues event for distinctID, normally the acting user's id.
func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if w.posthogClient == nil {
		return
	}
	props := make(posthog.Properties, len(w.common)+len(properties))
	for k, v := range w.common {
		props[k] = v
	}
	for k, v := range properties {
		props[k] = v
	}
	err := w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: props,
	})
	if err != nil && w.logger != nil {
		w.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
		return
	}
	if w.logger != nil {
		w.logger.Debug("Enqueued analytics event", slog.String("distinct_id", distinctID), slog.String("event", event))
	}
}

// Close flushes queued events.
func (w *PosthogClientWrapper) Close() {
	if w.posthogClient == nil {
		return
	}
	if err := w.posthogClient.Close(); err != nil && w.logger != nil {
		w.logger.Warn("Failed to flush analytics events", slog.String("error", err.Error()))
	}
}
