package unit

import (
	"context"

	"github.com/fekuna/omnipos-menu-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, unit *model.UnitMeasure) error
	FindByID(ctx context.Context, id int64) (*model.UnitMeasure, error)
	FindAll(ctx context.Context) ([]model.UnitMeasure, error)
	Update(ctx context.Context, unit *model.UnitMeasure) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// FindStock returns the unit, quantity and prices of every product.
	FindStock(ctx context.Context) ([]model.Product, error)
}
