package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/fekuna/omnipos-menu-service/internal/apperror"
	"github.com/fekuna/omnipos-menu-service/internal/database/dbtest"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/product"
	"github.com/fekuna/omnipos-menu-service/internal/product/dto"
	"github.com/fekuna/omnipos-menu-service/internal/product/repository"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func newUseCase(t *testing.T) (product.UseCase, *sqlx.DB) {
	db := dbtest.New(t)
	return NewProductUseCase(repository.NewPGRepository(db), nil, nil, logger.NewNop()), db
}

func TestCreateProduct(t *testing.T) {
	uc, db := newUseCase(t)
	ctx := context.Background()
	cat := dbtest.InsertCategory(t, db, "Salgados", nil)

	cost := decimal.RequireFromString("4.333")
	p, err := uc.CreateProduct(ctx, &dto.CreateProductInput{
		Name:       "  Coxinha ",
		Price:      decimal.RequireFromString("10.499"),
		CostPrice:  &cost,
		CategoryID: &cat,
	})
	require.NoError(t, err)

	assert.NotZero(t, p.ID)
	assert.Equal(t, "Coxinha", p.Name)
	assert.True(t, p.Available)
	assert.Equal(t, "10.50", p.Price.StringFixed(2))

	stored, err := uc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("10.5")))
	assert.True(t, stored.CostPrice.Valid)
	assert.Equal(t, "4.33", stored.CostPrice.Decimal.StringFixed(2))
}

func TestCreateProductValidation(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.CreateProduct(ctx, &dto.CreateProductInput{Name: " ", Price: decimal.NewFromInt(1)})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = uc.CreateProduct(ctx, &dto.CreateProductInput{Name: "Coxinha", Price: decimal.NewFromInt(-1)})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestCreateProductUnknownCategory(t *testing.T) {
	uc, _ := newUseCase(t)
	missing := int64(77)

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Name: "Coxinha", Price: decimal.NewFromInt(5), CategoryID: &missing,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "category 77")
}

func TestUpdateKeepsAvailabilityWhenOmitted(t *testing.T) {
	uc, db := newUseCase(t)
	ctx := context.Background()
	id := dbtest.InsertProduct(t, db, "Coxinha", "10.50", nil, false)

	p, err := uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID:                 id,
		CreateProductInput: dto.CreateProductInput{Name: "Coxinha grande", Price: decimal.RequireFromString("12")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Coxinha grande", p.Name)
	assert.False(t, p.Available)

	_, err = uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID:                 999,
		CreateProductInput: dto.CreateProductInput{Name: "x", Price: decimal.Zero},
	})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestDeleteProductNotFound(t *testing.T) {
	uc, _ := newUseCase(t)
	err := uc.DeleteProduct(context.Background(), 123)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestExportProducts(t *testing.T) {
	uc, db := newUseCase(t)
	dbtest.InsertProduct(t, db, "Coxinha", "10.50", nil, true)
	dbtest.InsertProduct(t, db, "Pastel", "8.00", nil, false)

	var buf bytes.Buffer
	require.NoError(t, uc.ExportProducts(context.Background(), &buf))

	book, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, book.Sheets, 1)

	sheet := book.Sheets[0]
	assert.Equal(t, "Produtos", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "Nome", sheet.Rows[0].Cells[1].Value)
	assert.Equal(t, "Coxinha", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "10.50", sheet.Rows[1].Cells[3].Value)
}
