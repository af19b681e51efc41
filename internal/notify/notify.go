// Package notify publishes order lifecycle events for the kitchen display.
package notify

import (
	"context"
	"time"
)

type EventType string

const (
	EventOrderCreated  EventType = "order.created"
	EventStatusChanged EventType = "order.status_changed"
	EventOrderCleared  EventType = "order.cleared"
	EventOrderPaid     EventType = "order.paid"
)

type Event struct {
	Type       EventType `json:"type"`
	OrderID    string    `json:"order_id"`
	TableID    string    `json:"table_id"`
	Status     string    `json:"status"`
	Total      int64     `json:"total"`
	ItemCount  int       `json:"item_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RoutingKey is the topic key the event is published under, e.g. order.preparing.
func (e Event) RoutingKey() string {
	return "order." + e.Status
}

type Notifier interface {
	Publish(ctx context.Context, e Event) error
}

type nopNotifier struct{}

// NewNopNotifier returns a Notifier that drops every event. Used when no
// broker is configured.
func NewNopNotifier() Notifier {
	return nopNotifier{}
}

func (nopNotifier) Publish(context.Context, Event) error { return nil }
