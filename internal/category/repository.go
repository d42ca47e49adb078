package category

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-menu-service/internal/category/dto"
	"github.com/fekuna/omnipos-menu-service/internal/model"
)

var (
	ErrHasChildren = errors.New("category has subcategories")
	ErrHasProducts = errors.New("category has products")
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	// Delete removes the category and reports how many products it detached.
	// Subcategories fail with ErrHasChildren. Products fail with ErrHasProducts
	// unless uncategorize is set. The checks and the delete share one transaction.
	Delete(ctx context.Context, id int64, uncategorize bool) (deleted bool, uncategorized int, err error)

	CountChildren(ctx context.Context, id int64) (int, error)
	// FindCategorizedProducts returns products that belong to some category, ordered by name.
	FindCategorizedProducts(ctx context.Context, onlyAvailable bool) ([]model.Product, error)
	FindProductsByCategoryIDs(ctx context.Context, ids []int64, onlyAvailable bool) ([]model.Product, error)
}
