package books

import (
	"context"

	"github.com/5w1tchy/smart-library-api/internal/models"
	"github.com/doug-martin/goqu/v9"
)

// Insert stores d and returns the persisted row, id and timestamps included.
// A duplicate isbn yields ErrConflict.
func (s *Store) Insert(ctx context.Context, d models.BookDraft) (models.Book, error) {
	q, args, err := dialect.Insert(tableBooks).Prepared(true).
		Rows(goqu.Record{
			"title":        d.Title,
			"author":       d.Author,
			"isbn":         nullable(d.ISBN),
			"year":         d.Year,
			"description":  nullable(d.Description),
			"is_available": d.IsAvailable,
		}).
		Returning(bookColumns...).
		ToSQL()
	if err != nil {
		return models.Book{}, err
	}
	var row bookRow
	if err := s.db.GetContext(ctx, &row, q, args...); err != nil {
		return models.Book{}, mapError(err)
	}
	return row.toModel(), nil
}
