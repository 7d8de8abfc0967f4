package books

import (
	"context"

	"github.com/5w1tchy/smart-library-api/internal/models"
	"github.com/doug-martin/goqu/v9"
)

// FindByID returns the book with the given id or ErrNotFound.
func (s *Store) FindByID(ctx context.Context, id int64) (models.Book, error) {
	q, args, err := dialect.From(tableBooks).Prepared(true).
		Select(bookColumns...).
		Where(goqu.C("id").Eq(id)).
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
