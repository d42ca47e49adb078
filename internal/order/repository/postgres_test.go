package repository

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-menu-service/internal/database/dbtest"
	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/fekuna/omnipos-menu-service/internal/order/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(productID int64, name, unit string, qty int) *model.Order {
	price := decimal.RequireFromString(unit)
	sub := price.Mul(decimal.NewFromInt(int64(qty)))
	return &model.Order{
		CustomerName: "Maria",
		Total:        sub,
		Status:       model.OrderStatusPending,
		Items: []model.OrderItem{
			{ProductID: &productID, ProductName: name, Quantity: qty, UnitPrice: price, Subtotal: sub},
		},
	}
}

func TestCreateAndFind(t *testing.T) {
	db := dbtest.New(t)
	repo := NewPGRepository(db)
	ctx := context.Background()
	pid := dbtest.InsertProduct(t, db, "Coxinha", "10.50", nil, true)

	o := newOrder(pid, "Coxinha", "10.50", 2)
	require.NoError(t, repo.Create(ctx, o))
	assert.NotZero(t, o.ID)
	assert.False(t, o.CreatedAt.IsZero())
	assert.NotZero(t, o.Items[0].ID)
	assert.Equal(t, 1, o.Items[0].LineNo)

	got, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.OrderStatusPending, got.Status)
	assert.Equal(t, "21.00", got.Total.StringFixed(2))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Coxinha", got.Items[0].ProductName)
	assert.Equal(t, "21.00", got.Items[0].Subtotal.StringFixed(2))

	missing, err := repo.FindByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateIsAtomic(t *testing.T) {
	db := dbtest.New(t)
	repo := NewPGRepository(db)
	pid := dbtest.InsertProduct(t, db, "Coxinha", "10.50", nil, true)

	o := newOrder(pid, "Coxinha", "10.50", 1)
	ghost := int64(4040)
	// second line violates the product foreign key after the order row was inserted
	o.Items = append(o.Items, model.OrderItem{
		ProductID: &ghost, ProductName: "Fantasma", Quantity: 1,
		UnitPrice: decimal.NewFromInt(1), Subtotal: decimal.NewFromInt(1),
	})

	require.Error(t, repo.Create(context.Background(), o))
	assert.Equal(t, 0, dbtest.Count(t, db, "orders"))
	assert.Equal(t, 0, dbtest.Count(t, db, "order_items"))
}

func TestLineItemsAreSnapshots(t *testing.T) {
	db := dbtest.New(t)
	repo := NewPGRepository(db)
	ctx := context.Background()
	pid := dbtest.InsertProduct(t, db, "Coxinha", "10.50", nil, true)

	o := newOrder(pid, "Coxinha", "10.50", 2)
	require.NoError(t, repo.Create(ctx, o))

	_, err := db.Exec(db.Rebind(`UPDATE products SET price = ?, name = ? WHERE id = ?`), "99.90", "Coxinha Premium", pid)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.50", got.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "Coxinha", got.Items[0].ProductName)
	assert.Equal(t, "21.00", got.Total.StringFixed(2))

	_, err = db.Exec(db.Rebind(`DELETE FROM products WHERE id = ?`), pid)
	require.NoError(t, err)

	got, err = repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Nil(t, got.Items[0].ProductID)
	assert.Equal(t, "Coxinha", got.Items[0].ProductName)
}

func TestFindAllAndUpdateStatus(t *testing.T) {
	db := dbtest.New(t)
	repo := NewPGRepository(db)
	ctx := context.Background()
	pid := dbtest.InsertProduct(t, db, "Coxinha", "10.50", nil, true)

	first := newOrder(pid, "Coxinha", "10.50", 1)
	require.NoError(t, repo.Create(ctx, first))
	second := newOrder(pid, "Coxinha", "10.50", 3)
	require.NoError(t, repo.Create(ctx, second))

	ok, err := repo.UpdateStatus(ctx, first.ID, model.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateStatus(ctx, 999, model.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := repo.FindAll(ctx, &dto.OrderFilters{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	require.Len(t, all[0].Items, 1)
	assert.Equal(t, 3, all[0].Items[0].Quantity)

	confirmed, err := repo.FindAll(ctx, &dto.OrderFilters{Status: string(model.OrderStatusConfirmed)})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, first.ID, confirmed[0].ID)
}
