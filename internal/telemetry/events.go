// Package telemetry publishes domain events to the message bus for
// downstream consumers (notification fan-out, analytics, audit).
package telemetry

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

// Event types emitted by the messaging service.
const (
	EventMessageSent      = "message.sent"
	EventMessageRead      = "message.read"
	EventStreakChanged    = "streak.changed"
	EventSideWriteFailed  = "side.write_failed"
	EventHistoryRebuilt   = "history.rebuilt"
	EventRealtimeDelivery = "realtime.delivery"
	EventWSConnect        = "ws.connect"
	EventWSDisconnect     = "ws.disconnect"
)

// Envelope is the versioned wire shape shared by every event.
type Envelope struct {
	SchemaVersion int     `json:"schema_version"`
	EventType     string  `json:"event_type"`
	OccurredAt    string  `json:"occurred_at"`
	Service       string  `json:"service"`
	Environment   string  `json:"environment"`
	RequestID     string  `json:"request_id,omitempty"`
	UserID        *string `json:"user_id,omitempty"`
	Payload       any     `json:"payload"`
}

// Emitter publishes enveloped domain events, routing each by
// "<service>.<event_type>".
type Emitter struct {
	publisher   Publisher
	service     string
	environment string
	log         *zap.Logger
}

func NewEmitter(publisher Publisher, service, environment string, log *zap.Logger) *Emitter {
	return &Emitter{
		publisher:   publisher,
		service:     service,
		environment: environment,
		log:         log,
	}
}

// Emit publishes one event. Failures are logged, never propagated: the
// event bus is best-effort and must not fail the request path.
func (e *Emitter) Emit(ctx context.Context, eventType, requestID string, userID *string, payload any) {
	if e == nil || e.publisher == nil {
		return
	}

	envelope := Envelope{
		SchemaVersion: 1,
		EventType:     eventType,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339Nano),
		Service:       e.service,
		Environment:   e.environment,
		RequestID:     requestID,
		UserID:        userID,
		Payload:       payload,
	}

	routingKey := e.service + "." + eventType
	if err := e.publisher.Publish(ctx, routingKey, envelope); err != nil {
		e.log.Warn("telemetry publish failed",
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}
