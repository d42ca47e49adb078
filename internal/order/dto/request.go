package dto

import (
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/fekuna/omnipos-menu-service/internal/order/pricing"
)

type CustomerRequest struct {
	Name    string `json:"name" validate:"notblank,max=200"`
	Phone   string `json:"phone" validate:"max=40"`
	Address string `json:"address" validate:"max=500"`
}

type CartItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,min=1,max=999"`
}

// CreateOrderRequest carries no prices: totals are always computed from the catalog.
type CreateOrderRequest struct {
	Customer CustomerRequest   `json:"customer"`
	Items    []CartItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes    string            `json:"notes" validate:"max=1000"`
}

func (r *CreateOrderRequest) ToInput() *PlaceOrderInput {
	items := make([]pricing.CartItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = pricing.CartItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return &PlaceOrderInput{
		Customer: Customer{Name: r.Customer.Name, Phone: r.Customer.Phone, Address: r.Customer.Address},
		Items:    items,
		Notes:    r.Notes,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CreateOrderResponse struct {
	OrderID   int64             `json:"orderId"`
	Total     json.Number       `json:"total"`
	DeepLink  string            `json:"deepLink"`
	Message   string            `json:"message"`
	Status    model.OrderStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	Items     []model.OrderItem `json:"items"`
}

func NewCreateOrderResponse(p *PlacedOrder) *CreateOrderResponse {
	return &CreateOrderResponse{
		OrderID:   p.Order.ID,
		Total:     model.Money(p.Order.Total),
		DeepLink:  p.DeepLink,
		Message:   p.Message,
		Status:    p.Order.Status,
		CreatedAt: p.Order.CreatedAt,
		Items:     p.Order.Items,
	}
}
