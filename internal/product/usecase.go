package product

import (
	"context"
	"io"

	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/fekuna/omnipos-menu-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	SetAvailability(ctx context.Context, id int64, available bool) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	// ExportProducts writes the whole catalog as an xlsx workbook.
	ExportProducts(ctx context.Context, w io.Writer) error
}
