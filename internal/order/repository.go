package order

import (
	"context"

	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/fekuna/omnipos-menu-service/internal/order/dto"
)

type Repository interface {
	// Create writes the order and its items in one transaction, filling in
	// the generated ids and the creation timestamp.
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id int64) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (bool, error)
}

// ProductReader is the catalog read path the pricing step depends on.
type ProductReader interface {
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
}
