package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-menu-service/internal/database"
	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/fekuna/omnipos-menu-service/internal/suggestion/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, s *model.Suggestion) error {
	query := `
        INSERT INTO suggestions (title, description, votes, category, created_at)
        VALUES (:title, :description, :votes, :category, :created_at)
        RETURNING id
    `
	stmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	return stmt.QueryRowxContext(ctx, s).Scan(&s.ID)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Suggestion, error) {
	return findByID(ctx, r.DB, id)
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.SuggestionFilters) ([]model.Suggestion, error) {
	args := []interface{}{}
	whereClause := ""
	if f != nil && f.SearchQuery != "" {
		pattern := "%" + strings.ToLower(f.SearchQuery) + "%"
		whereClause = " WHERE LOWER(title) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?"
		args = append(args, pattern, pattern)
	}

	orderBy := "votes DESC, created_at DESC, id DESC"
	if f != nil && f.Sort == dto.SortRecent {
		orderBy = "created_at DESC, id DESC"
	}

	query := fmt.Sprintf(`SELECT * FROM suggestions%s ORDER BY %s`, whereClause, orderBy)

	suggestions := []model.Suggestion{}
	if err := r.DB.SelectContext(ctx, &suggestions, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (r *PGRepository) Vote(ctx context.Context, id int64, delta int) (*model.Suggestion, error) {
	var s *model.Suggestion
	err := database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(`
            UPDATE suggestions
            SET votes = CASE WHEN votes + ? < 0 THEN 0 ELSE votes + ? END
            WHERE id = ?
        `), delta, delta, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil || n == 0 {
			return err
		}
		s, err = findByID(ctx, tx, id)
		return err
	})
	return s, err
}

func (r *PGRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM suggestions WHERE id = ?`), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

type getter interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Rebind(query string) string
}

// findByID runs against either the pool or an open transaction.
func findByID(ctx context.Context, q getter, id int64) (*model.Suggestion, error) {
	var s model.Suggestion
	err := q.GetContext(ctx, &s, q.Rebind(`SELECT * FROM suggestions WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
