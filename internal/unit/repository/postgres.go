package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, u *model.UnitMeasure) error {
	query := `
        INSERT INTO unit_measures (name, abbreviation, description, created_at, updated_at)
        VALUES (:name, :abbreviation, :description, :created_at, :updated_at)
        RETURNING id
    `
	stmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	return stmt.QueryRowxContext(ctx, u).Scan(&u.ID)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.UnitMeasure, error) {
	var u model.UnitMeasure
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`SELECT * FROM unit_measures WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.UnitMeasure, error) {
	units := []model.UnitMeasure{}
	if err := r.DB.SelectContext(ctx, &units, `SELECT * FROM unit_measures ORDER BY name ASC`); err != nil {
		return nil, err
	}
	return units, nil
}

func (r *PGRepository) Update(ctx context.Context, u *model.UnitMeasure) (bool, error) {
	query := `
        UPDATE unit_measures
        SET name = :name,
            abbreviation = :abbreviation,
            description = :description,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, u)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *PGRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM unit_measures WHERE id = ?`), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *PGRepository) FindStock(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	query := `SELECT id, name, price, cost_price, quantity, unit FROM products ORDER BY id ASC`
	if err := r.DB.SelectContext(ctx, &products, query); err != nil {
		return nil, err
	}
	return products, nil
}
