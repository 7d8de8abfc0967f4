package books

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Store is the PostgreSQL-backed book repository.
type Store struct {
	db *sqlx.DB
}

// New wraps an open pool. driverName selects sqlx's bind style and must be
// the name the pool was opened with ("pgx" or "postgres").
func New(db *sql.DB, driverName string) *Store {
	return &Store{db: sqlx.NewDb(db, driverName)}
}

// Ping reports whether the database answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
