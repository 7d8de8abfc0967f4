package books

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/5w1tchy/smart-library-api/internal/models"
)

const tableBooks = "books"

var bookColumns = []any{
	"id", "title", "author", "isbn", "year", "description", "is_available", "created_at", "updated_at",
}

// bookRow mirrors one row of the books table.
type bookRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Author      string         `db:"author"`
	ISBN        sql.NullString `db:"isbn"`
	Year        int            `db:"year"`
	Description sql.NullString `db:"description"`
	IsAvailable flexBool       `db:"is_available"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// toModel is the single row -> entity mapping used by every query.
func (r bookRow) toModel() models.Book {
	b := models.Book{
		ID:          r.ID,
		Title:       r.Title,
		Author:      r.Author,
		Year:        r.Year,
		IsAvailable: bool(r.IsAvailable),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
	if r.ISBN.Valid {
		s := r.ISBN.String
		b.ISBN = &s
	}
	if r.Description.Valid {
		s := r.Description.String
		b.Description = &s
	}
	return b
}

// flexBool scans booleans stored as BOOLEAN, integers or text.
type flexBool bool

func (b *flexBool) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*b = false
	case bool:
		*b = flexBool(v)
	case int64:
		*b = v != 0
	case []byte:
		return b.parse(string(v))
	case string:
		return b.parse(v)
	default:
		return fmt.Errorf("is_available: unsupported type %T", src)
	}
	return nil
}

func (b *flexBool) parse(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("is_available: %w", err)
	}
	*b = flexBool(v)
	return nil
}
