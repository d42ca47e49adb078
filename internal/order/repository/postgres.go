package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-menu-service/internal/database"
	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/fekuna/omnipos-menu-service/internal/order/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	o.UpdatedAt = o.CreatedAt

	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		orderQuery := tx.Rebind(`
			INSERT INTO orders (
				customer_name, customer_phone, customer_address, observations,
				total, status, created_at, updated_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`)
		err := tx.QueryRowxContext(ctx, orderQuery,
			o.CustomerName, o.CustomerPhone, o.CustomerAddress, o.Observations,
			o.Total, o.Status, o.CreatedAt, o.UpdatedAt,
		).Scan(&o.ID)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		itemQuery := tx.Rebind(`
			INSERT INTO order_items (
				order_id, line_no, product_id, product_name, quantity, unit_price, subtotal
			)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`)
		for i := range o.Items {
			it := &o.Items[i]
			it.OrderID = o.ID
			it.LineNo = i + 1
			err := tx.QueryRowxContext(ctx, itemQuery,
				it.OrderID, it.LineNo, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.Subtotal,
			).Scan(&it.ID)
			if err != nil {
				return fmt.Errorf("insert order item %d: %w", it.LineNo, err)
			}
		}
		return nil
	})
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o, r.DB.Rebind(`SELECT * FROM orders WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	items := []model.OrderItem{}
	err = r.DB.SelectContext(ctx, &items,
		r.DB.Rebind(`SELECT * FROM order_items WHERE order_id = ? ORDER BY line_no`), id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, error) {
	query := `SELECT * FROM orders`
	args := []any{}
	if f != nil && f.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, f.Status)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if f != nil && f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	orders := []model.Order{}
	if err := r.DB.SelectContext(ctx, &orders, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	inQuery, inArgs, err := sqlx.In(`SELECT * FROM order_items WHERE order_id IN (?) ORDER BY order_id, line_no`, ids)
	if err != nil {
		return nil, err
	}
	var items []model.OrderItem
	if err := r.DB.SelectContext(ctx, &items, r.DB.Rebind(inQuery), inArgs...); err != nil {
		return nil, err
	}

	byOrder := make(map[int64][]model.OrderItem, len(orders))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []model.OrderItem{}
		}
	}
	return orders, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		r.DB.Rebind(`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`),
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
