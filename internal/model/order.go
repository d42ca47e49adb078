package model

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists the workflow states in lifecycle order. The first one is
// the initial state of every new order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

type Order struct {
	BaseModel
	CustomerName    string          `db:"customer_name" json:"customerName"`
	CustomerPhone   *string         `db:"customer_phone" json:"customerPhone"`
	CustomerAddress *string         `db:"customer_address" json:"customerAddress"`
	Observations    *string         `db:"observations" json:"observations"`
	Total           decimal.Decimal `db:"total" json:"total"`
	Status          OrderStatus     `db:"status" json:"status"`
	Items           []OrderItem     `db:"-" json:"items"`
}

// OrderItem is a snapshot of a product taken when the order was placed.
// ProductID becomes nil when the product is later deleted; the snapshot stays.
type OrderItem struct {
	ID          int64           `db:"id" json:"id"`
	OrderID     int64           `db:"order_id" json:"orderId"`
	LineNo      int             `db:"line_no" json:"lineNo"`
	ProductID   *int64          `db:"product_id" json:"productId"`
	ProductName string          `db:"product_name" json:"productName"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unitPrice"`
	Subtotal    decimal.Decimal `db:"subtotal" json:"subtotal"`
}
