// Package kafka publishes order lifecycle events to a Kafka topic. Delivery
// is best effort: the owning transaction has already committed when a
// publish runs, so failures are logged and swallowed instead of failing the
// state change.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// statusChangedEvent is the wire shape of one order status change.
type statusChangedEvent struct {
	OrderID     string     `json:"orderId"`
	UserID      string     `json:"userId"`
	StoreID     string     `json:"storeId"`
	Status      string     `json:"status"`
	RiderID     *string    `json:"riderId,omitempty"`
	TotalPrice  int64      `json:"totalPrice"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	OccurredAt  time.Time  `json:"occurredAt"`
}

// OrderEventPublisher implements the OrderEventPublisher port on a Kafka
// topic. Messages are keyed by order id so one order's changes stay ordered
// within a partition.
type OrderEventPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewOrderEventPublisher creates a publisher writing to topic on the given
// comma-separated broker list.
func NewOrderEventPublisher(brokers, topic string, logger *slog.Logger) *OrderEventPublisher {
	return &OrderEventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(strings.Split(brokers, ",")...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
		logger: logger,
	}
}

// Close flushes and closes the underlying writer.
func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}

// PublishStatusChanged emits the order's current status. A broker failure is
// logged and reported as a transient error; callers treat it as best effort.
func (p *OrderEventPublisher) PublishStatusChanged(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	event := statusChangedEvent{
		OrderID:     aggregate.ID().String(),
		UserID:      aggregate.UserID().String(),
		StoreID:     aggregate.StoreID().String(),
		Status:      aggregate.Status().String(),
		TotalPrice:  aggregate.TotalPrice(),
		CompletedAt: aggregate.CompletedAt(),
		OccurredAt:  time.Now().UTC(),
	}
	if riderID := aggregate.Rider(); riderID != nil {
		raw := riderID.String()
		event.RiderID = &raw
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "publish order status change failed",
			slog.String("orderId", event.OrderID),
			slog.String("status", event.Status),
			slog.Any("error", err),
		)
		return errs.NewTransientError("publish order status change", err)
	}

	p.logger.DebugContext(ctx, "order status change published",
		slog.String("orderId", event.OrderID),
		slog.String("status", event.Status),
	)
	return nil
}
