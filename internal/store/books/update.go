package books

import (
	"context"

	"github.com/5w1tchy/smart-library-api/internal/models"
	"github.com/doug-martin/goqu/v9"
)

// patchRecord lists only the supplied columns. updated_at is always bumped.
func patchRecord(p models.BookPatch) goqu.Record {
	rec := goqu.Record{"updated_at": goqu.L("NOW()")}
	if p.Title != nil {
		rec["title"] = *p.Title
	}
	if p.Author != nil {
		rec["author"] = *p.Author
	}
	if p.ISBN != nil {
		rec["isbn"] = *p.ISBN
	}
	if p.Year != nil {
		rec["year"] = *p.Year
	}
	if p.Description != nil {
		rec["description"] = *p.Description
	}
	if p.IsAvailable != nil {
		rec["is_available"] = *p.IsAvailable
	}
	return rec
}

// Update merges p into the book with the given id and returns the new row.
// Fields left nil in p keep their stored value.
func (s *Store) Update(ctx context.Context, id int64, p models.BookPatch) (models.Book, error) {
	q, args, err := dialect.Update(tableBooks).Prepared(true).
		Set(patchRecord(p)).
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
