package books

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS books (
    id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    title        VARCHAR(255) NOT NULL,
    author       VARCHAR(255) NOT NULL,
    isbn         VARCHAR(13) UNIQUE,
    year         INTEGER NOT NULL CHECK (year >= 1000 AND year <= 2100),
    description  TEXT,
    is_available BOOLEAN NOT NULL DEFAULT TRUE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS idx_books_author ON books (author)`,
	`CREATE INDEX IF NOT EXISTS idx_books_year ON books (year)`,
	`CREATE INDEX IF NOT EXISTS idx_books_available ON books (is_available)`,
}

// EnsureSchema creates the books table and its indexes if they are missing.
// It never touches existing rows, so it runs on every start.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
