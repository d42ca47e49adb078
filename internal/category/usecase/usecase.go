package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fekuna/omnipos-menu-service/internal/apperror"
	"github.com/fekuna/omnipos-menu-service/internal/cache"
	"github.com/fekuna/omnipos-menu-service/internal/category"
	"github.com/fekuna/omnipos-menu-service/internal/category/dto"
	"github.com/fekuna/omnipos-menu-service/internal/database"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/model"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, cache *cache.RedisClient, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.Validation("category name is required")
	}
	if err := uc.checkParent(ctx, 0, input.ParentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cat := &model.Category{
		BaseModel: model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Name:      name,
		ParentID:  input.ParentID,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, writeError("create category", name, err)
	}

	go uc.invalidateMenu(context.Background(), false)
	return cat, nil
}

// GetCategory returns the category with its subcategories and available products.
func (uc *categoryUseCase) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	cat, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}

	subs, err := uc.repo.FindAll(ctx, &dto.CategoryFilters{ParentID: &id})
	if err != nil {
		return nil, apperror.Persistence("list subcategories", err)
	}
	ids := []int64{cat.ID}
	for _, sub := range subs {
		ids = append(ids, sub.ID)
	}
	products, err := uc.repo.FindProductsByCategoryIDs(ctx, ids, true)
	if err != nil {
		return nil, apperror.Persistence("list products", err)
	}

	byCategory := groupByCategory(products)
	cat.Products = nonNil(byCategory[cat.ID])
	cat.Subcategories = subs
	for i := range cat.Subcategories {
		cat.Subcategories[i].Products = nonNil(byCategory[cat.Subcategories[i].ID])
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error) {
	categories, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, apperror.Persistence("list categories", err)
	}
	return categories, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.Validation("category name is required")
	}

	cat, err := uc.find(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.ParentSet {
		if err := uc.checkParent(ctx, input.ID, input.ParentID); err != nil {
			return nil, err
		}
		cat.ParentID = input.ParentID
	}

	cat.Name = name
	cat.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, writeError("update category", name, err)
	}

	go uc.invalidateMenu(context.Background(), false)
	return uc.find(ctx, input.ID)
}

// DeleteCategory refuses while subcategories exist. Products block deletion
// unless force is set, in which case they become uncategorized.
func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int64, force bool) error {
	deleted, products, err := uc.repo.Delete(ctx, id, force)
	switch {
	case errors.Is(err, category.ErrHasChildren), database.IsForeignKeyViolation(err):
		return apperror.Conflict("category has subcategories; delete or move them first")
	case errors.Is(err, category.ErrHasProducts):
		return apperror.Conflict("category has products; pass force=true to uncategorize them")
	case err != nil:
		return apperror.Persistence("delete category", err)
	}
	if !deleted {
		return apperror.NotFound("category", id)
	}

	uc.logger.Info("category deleted", zap.Int64("category_id", id), zap.Int("uncategorized_products", products))
	go uc.invalidateMenu(context.Background(), products > 0)
	return nil
}

func (uc *categoryUseCase) GetTree(ctx context.Context) ([]model.Category, error) {
	return uc.buildTree(ctx, false)
}

func (uc *categoryUseCase) GetMenu(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	if found, err := uc.cache.GetJSON(ctx, cache.KeyMenu, &cached); err == nil && found {
		return cached, nil
	}

	menu, err := uc.buildTree(ctx, true)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.SetJSON(ctx, cache.KeyMenu, menu, cache.DefaultTTL); err != nil {
		uc.logger.Warn("failed to cache menu", zap.Error(err))
	}
	return menu, nil
}

// buildTree assembles the category tree from two queries: every category and
// every categorized product, both ordered by name.
func (uc *categoryUseCase) buildTree(ctx context.Context, onlyAvailable bool) ([]model.Category, error) {
	categories, err := uc.repo.FindAll(ctx, nil)
	if err != nil {
		return nil, apperror.Persistence("list categories", err)
	}
	products, err := uc.repo.FindCategorizedProducts(ctx, onlyAvailable)
	if err != nil {
		return nil, apperror.Persistence("list products", err)
	}
	return assembleTree(categories, products), nil
}

func assembleTree(categories []model.Category, products []model.Product) []model.Category {
	byCategory := groupByCategory(products)

	children := map[int64][]model.Category{}
	for _, c := range categories {
		if c.ParentID != nil {
			c.Products = nonNil(byCategory[c.ID])
			c.Subcategories = []model.Category{}
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	roots := []model.Category{}
	for _, c := range categories {
		if c.ParentID != nil {
			continue
		}
		c.Products = nonNil(byCategory[c.ID])
		c.Subcategories = children[c.ID]
		if c.Subcategories == nil {
			c.Subcategories = []model.Category{}
		}
		roots = append(roots, c)
	}
	return roots
}

// checkParent enforces one level of nesting: the parent must exist, must be a
// top-level category, and the category being moved must not have children.
func (uc *categoryUseCase) checkParent(ctx context.Context, id int64, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	if *parentID <= 0 {
		return apperror.Validation("parentId must be a positive id")
	}
	if id != 0 && *parentID == id {
		return apperror.Validation("a category cannot be its own parent")
	}

	parent, err := uc.repo.FindByID(ctx, *parentID)
	if err != nil {
		return apperror.Persistence("find parent category", err)
	}
	if parent == nil {
		return apperror.NotFound("parent category", *parentID)
	}
	if !parent.IsRoot() {
		return apperror.Validation("categories can only be nested one level deep")
	}

	if id != 0 {
		children, err := uc.repo.CountChildren(ctx, id)
		if err != nil {
			return apperror.Persistence("count subcategories", err)
		}
		if children > 0 {
			return apperror.Validation("a category with subcategories cannot become a subcategory")
		}
	}
	return nil
}

func (uc *categoryUseCase) find(ctx context.Context, id int64) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence("find category", err)
	}
	if cat == nil {
		return nil, apperror.NotFound("category", id)
	}
	return cat, nil
}

func (uc *categoryUseCase) invalidateMenu(ctx context.Context, products bool) {
	patterns := []string{cache.PatternMenu}
	if products {
		patterns = append(patterns, cache.PatternProducts)
	}
	for _, pattern := range patterns {
		if err := uc.cache.DeletePattern(ctx, pattern); err != nil {
			uc.logger.Warn("failed to invalidate cache", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}

func writeError(op, name string, err error) error {
	if database.IsUniqueViolation(err) {
		return apperror.Conflict("a category named \"" + name + "\" already exists")
	}
	return apperror.Persistence(op, err)
}

func groupByCategory(products []model.Product) map[int64][]model.Product {
	out := map[int64][]model.Product{}
	for _, p := range products {
		if p.CategoryID != nil {
			out[*p.CategoryID] = append(out[*p.CategoryID], p)
		}
	}
	return out
}

func nonNil(products []model.Product) []model.Product {
	if products == nil {
		return []model.Product{}
	}
	return products
}
