// Package dbtest builds migrated in-memory SQLite databases for tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-menu-service/internal/database"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func New(t testing.TB) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewDB(ctx, &database.Config{Driver: database.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(ctx, db))

	t.Cleanup(func() { db.Close() })
	return db
}

func InsertCategory(t testing.TB, db *sqlx.DB, name string, parentID *int64) int64 {
	t.Helper()
	now := time.Now().UTC()
	var id int64
	err := db.QueryRowx(db.Rebind(
		`INSERT INTO categories (name, parent_id, created_at, updated_at) VALUES (?, ?, ?, ?) RETURNING id`),
		name, parentID, now, now,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func InsertProduct(t testing.TB, db *sqlx.DB, name, price string, categoryID *int64, available bool) int64 {
	t.Helper()
	now := time.Now().UTC()
	var id int64
	err := db.QueryRowx(db.Rebind(
		`INSERT INTO products (name, price, available, category_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`),
		name, price, available, categoryID, now, now,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func Count(t testing.TB, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, "SELECT count(*) FROM "+table))
	return n
}
