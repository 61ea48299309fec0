// Package events provides outbound EventDispatcher adapters. The HTTP
// dispatcher delivers domain events to an external webhook sink through the
// instrumented platform client; the log dispatcher writes them to the
// structured log and is used by the local profile.
package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lumeo-app/board-service/internal/domain/board"
	"github.com/lumeo-app/board-service/internal/platform/fanout"
	"github.com/lumeo-app/board-service/internal/platform/httpclient"
	"github.com/lumeo-app/board-service/internal/ports"
)

// maxDeliveryWorkers bounds concurrent webhook deliveries for one batch.
// Batches are small (at most a handful of events per use case), so a low
// bound keeps ordering pressure off the sink without serializing fully.
const maxDeliveryWorkers = 4

// envelope is the wire format posted to the event sink.
type envelope struct {
	Name       string         `json:"name"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

// Compile-time interface checks.
var (
	_ ports.EventDispatcher = (*HTTPDispatcher)(nil)
	_ ports.EventDispatcher = (*LogDispatcher)(nil)
)

// HTTPDispatcher posts each domain event to the configured sink path as a
// JSON envelope. Deliveries within a batch fan out with bounded concurrency;
// per-event failures are joined so one slow or dead delivery never hides the
// others.
type HTTPDispatcher struct {
	client *httpclient.Client
	path   string
	logger *slog.Logger
}

// NewHTTPDispatcher creates a dispatcher that delivers events via the given
// platform client to path (relative to the client's base URL).
func NewHTTPDispatcher(client *httpclient.Client, path string, logger *slog.Logger) *HTTPDispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HTTPDispatcher{client: client, path: path, logger: logger}
}

// DispatchAll delivers the batch, returning the joined errors of all failed
// deliveries. Successful deliveries within a partially failed batch are not
// rolled back; events are fire-and-forget past the persist.
func (d *HTTPDispatcher) DispatchAll(ctx context.Context, batch []board.Event) error {
	if len(batch) == 0 {
		return nil
	}

	results := fanout.Run(ctx, maxDeliveryWorkers, batch,
		func(ctx context.Context, e board.Event) (struct{}, error) {
			return struct{}{}, d.deliver(ctx, e)
		})

	var errs []error
	for i, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("delivering %s: %w", batch[i].EventName(), res.Err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	d.logger.InfoContext(ctx, "event batch delivered",
		slog.String("sink", d.client.Name()),
		slog.Int("events", len(batch)),
	)
	return nil
}

func (d *HTTPDispatcher) deliver(ctx context.Context, e board.Event) error {
	body, err := json.Marshal(toEnvelope(e))
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	url := d.client.BaseURL() + d.path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(ctx, req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sink returned status %d", resp.StatusCode)
	}
	return nil
}

// Name implements ports.HealthChecker by delegating to the underlying
// client's circuit breaker state.
func (d *HTTPDispatcher) Name() string { return "event-sink" }

// HealthCheck implements ports.HealthChecker.
func (d *HTTPDispatcher) HealthCheck(ctx context.Context) error {
	return d.client.HealthCheck(ctx)
}

// toEnvelope flattens a domain event into its wire payload. Unknown event
// types get an empty payload rather than failing the batch; the name and
// timestamp still carry signal.
func toEnvelope(e board.Event) envelope {
	env := envelope{
		Name:       e.EventName(),
		OccurredAt: e.OccurredAt(),
	}
	switch ev := e.(type) {
	case board.BoardCreated:
		env.Payload = map[string]any{
			"board_id": ev.BoardID,
			"owner_id": ev.OwnerID,
			"type":     ev.Type.String(),
		}
	case board.CardCompleted:
		env.Payload = map[string]any{
			"board_id": ev.BoardID,
			"card_id":  ev.CardID,
			"owner_id": ev.OwnerID,
		}
	default:
		env.Payload = map[string]any{}
	}
	return env
}

// LogDispatcher writes events to the structured log instead of a network
// sink. Used when no sink is configured.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher creates a log-only dispatcher.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogDispatcher{logger: logger}
}

// DispatchAll logs each event. Never fails.
func (d *LogDispatcher) DispatchAll(ctx context.Context, batch []board.Event) error {
	for _, e := range batch {
		env := toEnvelope(e)
		d.logger.InfoContext(ctx, "domain event",
			slog.String("event", env.Name),
			slog.Time("occurred_at", env.OccurredAt),
			slog.Any("payload", env.Payload),
		)
	}
	return nil
}
