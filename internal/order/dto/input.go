package dto

import (
	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/fekuna/omnipos-menu-service/internal/order/pricing"
)

type Customer struct {
	Name    string
	Phone   string
	Address string
}

type PlaceOrderInput struct {
	Customer Customer
	Items    []pricing.CartItem
	Notes    string
}

type PlacedOrder struct {
	Order    *model.Order
	Message  string
	DeepLink string
}

type OrderFilters struct {
	Status string
	Limit  int
}
