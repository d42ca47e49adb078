package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-menu-service/internal/apperror"
	"github.com/fekuna/omnipos-menu-service/internal/category"
	"github.com/fekuna/omnipos-menu-service/internal/category/dto"
	"github.com/fekuna/omnipos-menu-service/internal/category/repository"
	"github.com/fekuna/omnipos-menu-service/internal/database/dbtest"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) (category.UseCase, *sqlx.DB) {
	db := dbtest.New(t)
	return NewCategoryUseCase(repository.NewPGRepository(db), nil, logger.NewNop()), db
}

func TestCreateCategory(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	root, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "  Bebidas "})
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", root.Name)
	assert.True(t, root.IsRoot())

	child, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Sucos", ParentID: &root.ID})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)
}

func TestCreateCategoryRules(t *testing.T) {
	uc, db := newUseCase(t)
	ctx := context.Background()
	root := dbtest.InsertCategory(t, db, "Bebidas", nil)
	child := dbtest.InsertCategory(t, db, "Sucos", &root)
	missing := int64(404)

	_, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "   "})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Bebidas"})
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Naturais", ParentID: &child})
	assert.True(t, apperror.Is(err, apperror.KindValidation), "nesting below a subcategory")

	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Naturais", ParentID: &missing})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUpdateCategoryRules(t *testing.T) {
	uc, db := newUseCase(t)
	ctx := context.Background()
	drinks := dbtest.InsertCategory(t, db, "Bebidas", nil)
	snacks := dbtest.InsertCategory(t, db, "Lanches", nil)
	dbtest.InsertCategory(t, db, "Sucos", &drinks)

	_, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: snacks, Name: "Lanches", ParentID: &snacks, ParentSet: true})
	assert.True(t, apperror.Is(err, apperror.KindValidation), "self parent")

	_, err = uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: drinks, Name: "Bebidas", ParentID: &snacks, ParentSet: true})
	assert.True(t, apperror.Is(err, apperror.KindValidation), "category with children cannot be nested")

	_, err = uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: 999, Name: "X"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	updated, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: snacks, Name: "Lanches Quentes", ParentID: &drinks, ParentSet: true})
	require.NoError(t, err)
	assert.Equal(t, "Lanches Quentes", updated.Name)
	require.NotNil(t, updated.ParentName)
	assert.Equal(t, "Bebidas", *updated.ParentName)
}

func TestUpdateCategoryKeepsParentUnlessSet(t *testing.T) {
	uc, db := newUseCase(t)
	ctx := context.Background()
	drinks := dbtest.InsertCategory(t, db, "Bebidas", nil)
	juices := dbtest.InsertCategory(t, db, "Sucos", &drinks)

	renamed, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: juices, Name: "Sucos naturais"})
	require.NoError(t, err)
	assert.Equal(t, "Sucos naturais", renamed.Name)
	require.NotNil(t, renamed.ParentID)
	assert.Equal(t, drinks, *renamed.ParentID)

	moved, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: juices, Name: "Sucos naturais", ParentSet: true})
	require.NoError(t, err)
	assert.Nil(t, moved.ParentID)
}

func TestDeleteCategoryWithSubcategoryConflicts(t *testing.T) {
	uc, db := newUseCase(t)
	ctx := context.Background()
	parent := dbtest.InsertCategory(t, db, "Bebidas", nil)
	dbtest.InsertCategory(t, db, "Sucos", &parent)

	err := uc.DeleteCategory(ctx, parent, true)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, 2, dbtest.Count(t, db, "categories"))
}

func TestDeleteCategoryWithProducts(t *testing.T) {
	uc, db := newUseCase(t)
	ctx := context.Background()
	cat := dbtest.InsertCategory(t, db, "Salgados", nil)
	dbtest.InsertProduct(t, db, "Coxinha", "6.50", &cat, true)

	err := uc.DeleteCategory(ctx, cat, false)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, 1, dbtest.Count(t, db, "categories"))

	require.NoError(t, uc.DeleteCategory(ctx, cat, true))
	assert.Equal(t, 0, dbtest.Count(t, db, "categories"))
	assert.Equal(t, 1, dbtest.Count(t, db, "products"))

	err = uc.DeleteCategory(ctx, cat, false)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestGetTreeAndMenu(t *testing.T) {
	uc, db := newUseCase(t)
	ctx := context.Background()
	drinks := dbtest.InsertCategory(t, db, "Bebidas", nil)
	juices := dbtest.InsertCategory(t, db, "Sucos", &drinks)
	snacks := dbtest.InsertCategory(t, db, "Lanches", nil)
	dbtest.InsertProduct(t, db, "Suco de Laranja", "8.00", &juices, true)
	dbtest.InsertProduct(t, db, "Suco de Uva", "8.00", &juices, false)
	dbtest.InsertProduct(t, db, "X-Burger", "22.00", &snacks, true)
	dbtest.InsertProduct(t, db, "Avulso", "1.00", nil, true)

	tree, err := uc.GetTree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Bebidas", tree[0].Name)
	assert.Equal(t, "Lanches", tree[1].Name)
	assert.Empty(t, tree[0].Products)
	require.Len(t, tree[0].Subcategories, 1)
	assert.Len(t, tree[0].Subcategories[0].Products, 2)
	assert.Empty(t, tree[1].Subcategories)

	menu, err := uc.GetMenu(ctx)
	require.NoError(t, err)
	require.Len(t, menu, 2)
	require.Len(t, menu[0].Subcategories[0].Products, 1)
	assert.Equal(t, "Suco de Laranja", menu[0].Subcategories[0].Products[0].Name)
}

func TestGetCategory(t *testing.T) {
	uc, db := newUseCase(t)
	ctx := context.Background()
	drinks := dbtest.InsertCategory(t, db, "Bebidas", nil)
	juices := dbtest.InsertCategory(t, db, "Sucos", &drinks)
	dbtest.InsertProduct(t, db, "Água", "3.00", &drinks, true)
	dbtest.InsertProduct(t, db, "Suco de Uva", "8.00", &juices, true)
	snacks := dbtest.InsertCategory(t, db, "Salgados", nil)
	dbtest.InsertProduct(t, db, "Pastel", "7.00", &snacks, true)

	cat, err := uc.GetCategory(ctx, drinks)
	require.NoError(t, err)
	assert.Len(t, cat.Products, 1)
	require.Len(t, cat.Subcategories, 1)
	assert.Len(t, cat.Subcategories[0].Products, 1)

	_, err = uc.GetCategory(ctx, 999)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestAssembleTreeKeepsEmptySlices(t *testing.T) {
	tree := assembleTree([]model.Category{{BaseModel: model.BaseModel{ID: 1}, Name: "Vazia"}}, nil)
	require.Len(t, tree, 1)
	assert.NotNil(t, tree[0].Products)
	assert.NotNil(t, tree[0].Subcategories)
}
