package category

import (
	"context"

	"github.com/fekuna/omnipos-menu-service/internal/category/dto"
	"github.com/fekuna/omnipos-menu-service/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64, force bool) error

	// GetTree returns root categories ordered by name with subcategories and
	// products attached.
	GetTree(ctx context.Context) ([]model.Category, error)
	// GetMenu is GetTree restricted to available products.
	GetMenu(ctx context.Context) ([]model.Category, error)
}
