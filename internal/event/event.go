// Package event publishes order lifecycle events to the configured broker.
package event

import (
	"context"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/google/uuid"
)

const TypeOrderCreated = "OrderCreated"

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID           int64              `json:"id"`
	CustomerName string             `json:"customer_name"`
	Total        string             `json:"total"`
	Items        []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

func NewOrderCreated(o *model.Order) *OrderCreatedEvent {
	items := make([]OrderItemPayload, 0, len(o.Items))
	for _, it := range o.Items {
		var productID int64
		if it.ProductID != nil {
			productID = *it.ProductID
		}
		items = append(items, OrderItemPayload{
			ProductID:   productID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal.StringFixed(2),
		})
	}

	return &OrderCreatedEvent{
		EventID:   uuid.NewString(),
		EventType: TypeOrderCreated,
		Payload: OrderPayload{
			ID:           o.ID,
			CustomerName: o.CustomerName,
			Total:        o.Total.StringFixed(2),
			Items:        items,
		},
		Timestamp: o.CreatedAt.UTC(),
	}
}

func (e *OrderCreatedEvent) Key() string {
	return strconv.FormatInt(e.Payload.ID, 10)
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, evt *OrderCreatedEvent) error
	Close() error
}

type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, *OrderCreatedEvent) error { return nil }
func (NoopPublisher) Close() error                                                 { return nil }
