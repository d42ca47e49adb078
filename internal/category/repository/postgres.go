package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-menu-service/internal/category"
	"github.com/fekuna/omnipos-menu-service/internal/category/dto"
	"github.com/fekuna/omnipos-menu-service/internal/database"
	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (name, parent_id, created_at, updated_at)
        VALUES (:name, :parent_id, :created_at, :updated_at)
        RETURNING id
    `
	stmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	return stmt.QueryRowxContext(ctx, c).Scan(&c.ID)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	var cat model.Category
	query := r.DB.Rebind(`
        SELECT c.*, p.name AS parent_name
        FROM categories c
        LEFT JOIN categories p ON p.id = c.parent_id
        WHERE c.id = ?
    `)
	err := r.DB.GetContext(ctx, &cat, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	conditions := []string{}
	args := []interface{}{}

	if f != nil && f.RootsOnly {
		conditions = append(conditions, "c.parent_id IS NULL")
	}
	if f != nil && f.ParentID != nil {
		conditions = append(conditions, "c.parent_id = ?")
		args = append(args, *f.ParentID)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
        SELECT c.*, p.name AS parent_name
        FROM categories c
        LEFT JOIN categories p ON p.id = c.parent_id%s
        ORDER BY c.name ASC, c.id ASC
    `, whereClause)

	categories := []model.Category{}
	if err := r.DB.SelectContext(ctx, &categories, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET parent_id = :parent_id,
            name = :name,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id int64, uncategorize bool) (bool, int, error) {
	var (
		deleted       bool
		uncategorized int
	)
	err := database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		// postgres: block product and subcategory writes that reference this row
		if tx.DriverName() != database.DriverSQLite {
			var locked int64
			err := tx.GetContext(ctx, &locked, tx.Rebind(`SELECT id FROM categories WHERE id = ? FOR UPDATE`), id)
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			if err != nil {
				return err
			}
		}

		var children int
		if err := tx.GetContext(ctx, &children, tx.Rebind(`SELECT count(*) FROM categories WHERE parent_id = ?`), id); err != nil {
			return err
		}
		if children > 0 {
			return category.ErrHasChildren
		}

		var products int
		if err := tx.GetContext(ctx, &products, tx.Rebind(`SELECT count(*) FROM products WHERE category_id = ?`), id); err != nil {
			return err
		}
		if products > 0 {
			if !uncategorize {
				return category.ErrHasProducts
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE products SET category_id = NULL WHERE category_id = ?`), id); err != nil {
				return err
			}
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM categories WHERE id = ?`), id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		deleted = n > 0
		if deleted {
			uncategorized = products
		}
		return nil
	})
	return deleted, uncategorized, err
}

func (r *PGRepository) CountChildren(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, r.DB.Rebind(`SELECT count(*) FROM categories WHERE parent_id = ?`), id)
	return count, err
}

func (r *PGRepository) FindCategorizedProducts(ctx context.Context, onlyAvailable bool) ([]model.Product, error) {
	query := `SELECT * FROM products WHERE category_id IS NOT NULL`
	args := []interface{}{}
	if onlyAvailable {
		query += ` AND available = ?`
		args = append(args, true)
	}
	query += ` ORDER BY name ASC, id ASC`

	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) FindProductsByCategoryIDs(ctx context.Context, ids []int64, onlyAvailable bool) ([]model.Product, error) {
	products := []model.Product{}
	if len(ids) == 0 {
		return products, nil
	}

	query := `SELECT * FROM products WHERE category_id IN (?)`
	args := []interface{}{ids}
	if onlyAvailable {
		query += ` AND available = ?`
		args = append(args, true)
	}
	query += ` ORDER BY name ASC, id ASC`

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, err
	}
	if err := r.DB.SelectContext(ctx, &products, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}
	return products, nil
}
