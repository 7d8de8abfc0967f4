package books

import (
	"context"
	"fmt"

	"github.com/5w1tchy/smart-library-api/internal/models"
)

// Query returns one page of books matching f, newest first, together with
// the total number of matches. Both statements run on the same connection.
func (s *Store) Query(ctx context.Context, f models.BookFilter, skip, limit int) ([]models.Book, int, error) {
	countSQL, countArgs, err := buildCountQuery(f)
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	pageSQL, pageArgs, err := buildPageQuery(f, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("build page: %w", err)
	}

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer conn.Close()

	var total int
	if err := conn.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	var rows []bookRow
	if err := conn.SelectContext(ctx, &rows, pageSQL, pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}

	out := make([]models.Book, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, total, nil
}

// Count returns the number of books matching f.
func (s *Store) Count(ctx context.Context, f models.BookFilter) (int, error) {
	q, args, err := buildCountQuery(f)
	if err != nil {
		return 0, err
	}
	var total int
	if err := s.db.GetContext(ctx, &total, q, args...); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return total, nil
}
