package repository

import (
	"context"

	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, h *model.Highlight) error {
	query := `
        INSERT INTO highlights (product_id, reason, display_order, active, created_at)
        VALUES (:product_id, :reason, :display_order, :active, :created_at)
        RETURNING id
    `
	stmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	return stmt.QueryRowxContext(ctx, h).Scan(&h.ID)
}

func (r *PGRepository) FindActive(ctx context.Context) ([]model.Highlight, error) {
	highlights := []model.Highlight{}
	query := r.DB.Rebind(`SELECT * FROM highlights WHERE active = ? ORDER BY display_order ASC, id ASC`)
	if err := r.DB.SelectContext(ctx, &highlights, query, true); err != nil {
		return nil, err
	}
	return highlights, nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM highlights WHERE id = ?`), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
