package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// MessagePublisher - часть rabbitmq_producer.Publisher, которая нужна адаптеру
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// EventValidator проверяет тело события по контракту перед отправкой
type EventValidator interface {
	ValidateEvent(body []byte) error
}

// EventPublisherAdapter публикует доменные события, routing key равен типу события.
type EventPublisherAdapter struct {
	producer  MessagePublisher
	validator EventValidator
}

// NewEventPublisherAdapter - validator может быть nil, тогда контракт не проверяется
func NewEventPublisherAdapter(producer MessagePublisher, validator EventValidator) (*EventPublisherAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &EventPublisherAdapter{producer: producer, validator: validator}, nil
}

func (a *EventPublisherAdapter) Publish(ctx context.Context, event domain.Event) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "EventPublisherAdapter",
		"event_type": event.Type,
		"event_id":   event.ID.String(),
	})

	body, err := json.Marshal(event)
	if err != nil {
		adapterLogger.Error("Failed to marshal event to JSON", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to marshal event %s: %w", event.Type, err)
	}
	if a.validator != nil {
		if err := a.validator.ValidateEvent(body); err != nil {
			adapterLogger.Error("Event does not match contract", err, nil)
			return fmt.Errorf("rabbitmq adapter: event %s rejected by contract: %w", event.Type, err)
		}
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		MessageId:    event.ID.String(),
		Type:         event.Type,
		Headers:      make(amqp.Table),
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, event.Type, msg); err != nil {
		adapterLogger.Error("Failed to publish event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish event %s: %w", event.Type, err)
	}

	adapterLogger.Debug("Event published", nil)
	return nil
}

// NoopEventPublisher используется, когда RABBITMQ_URL не задан
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(ctx context.Context, event domain.Event) error {
	contextkeys.LoggerFromContext(ctx).Debug("Event bus disabled, event dropped", port.Fields{"event_type": event.Type})
	return nil
}
