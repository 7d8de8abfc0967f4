package books

import (
	"context"

	"github.com/5w1tchy/smart-library-api/internal/models"
	"github.com/doug-martin/goqu/v9"
)

// Delete removes the book and returns the row as it was just before removal.
func (s *Store) Delete(ctx context.Context, id int64) (models.Book, error) {
	q, args, err := dialect.Delete(tableBooks).Prepared(true).
		Where(goqu.C("id").Eq(id)).
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
