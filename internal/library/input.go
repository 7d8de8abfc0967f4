package library

import (
	"bytes"

	"github.com/5w1tchy/smart-library-api/internal/models"
	"github.com/5w1tchy/smart-library-api/internal/validate"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Optional records whether a JSON field was supplied. An explicit null
// counts as not supplied.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] { return Optional[T]{Value: v, Set: true} }

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Optional[T]{Value: v, Set: true}
	return nil
}

// BookInput is the request body for create and update.
type BookInput struct {
	Title       Optional[string] `json:"title"`
	Author      Optional[string] `json:"author"`
	ISBN        Optional[string] `json:"isbn"`
	Year        Optional[int]    `json:"year"`
	Description Optional[string] `json:"description"`
	IsAvailable Optional[bool]   `json:"is_available"`
}

// DecodeBookInput parses a request body. Unknown fields are ignored and an
// empty body decodes to an input with nothing supplied.
func DecodeBookInput(body []byte) (BookInput, error) {
	var in BookInput
	if len(bytes.TrimSpace(body)) == 0 {
		return in, nil
	}
	if err := json.Unmarshal(body, &in); err != nil {
		return BookInput{}, FieldInvalid("body", "json_invalid", "request body is not a valid book object: "+err.Error())
	}
	return in, nil
}

// patch validates every supplied field and returns the normalized values.
func (in BookInput) patch() (models.BookPatch, validate.Errors) {
	var (
		p    models.BookPatch
		errs validate.Errors
	)
	if in.Title.Set {
		if v, err := validate.RequireBounded("title", in.Title.Value, 1, models.MaxTitleLen); err != nil {
			errs.Add("title", "string_length", err.Error())
		} else {
			p.Title = &v
		}
	}
	if in.Author.Set {
		if v, err := validate.RequireBounded("author", in.Author.Value, 1, models.MaxAuthorLen); err != nil {
			errs.Add("author", "string_length", err.Error())
		} else {
			p.Author = &v
		}
	}
	if in.ISBN.Set {
		if v, err := validate.ISBN(in.ISBN.Value); err != nil {
			errs.Add("isbn", "string_pattern_mismatch", err.Error())
		} else {
			p.ISBN = &v
		}
	}
	if in.Year.Set {
		if err := validate.IntRange("year", in.Year.Value, models.MinYear, models.MaxYear); err != nil {
			errs.Add("year", "range", err.Error())
		} else {
			y := in.Year.Value
			p.Year = &y
		}
	}
	if in.Description.Set {
		if v, err := validate.MaxLen("description", in.Description.Value, models.MaxDescriptionLen); err != nil {
			errs.Add("description", "string_length", err.Error())
		} else {
			p.Description = &v
		}
	}
	if in.IsAvailable.Set {
		v := in.IsAvailable.Value
		p.IsAvailable = &v
	}
	return p, errs
}

// draft validates a create request: title, author and year are required,
// is_available defaults to true.
func (in BookInput) draft() (models.BookDraft, validate.Errors) {
	p, errs := in.patch()
	if !in.Title.Set {
		errs.Add("title", "missing", "title is required")
	}
	if !in.Author.Set {
		errs.Add("author", "missing", "author is required")
	}
	if !in.Year.Set {
		errs.Add("year", "missing", "year is required")
	}
	if errs.Any() {
		return models.BookDraft{}, errs
	}
	d := models.BookDraft{
		Title:       *p.Title,
		Author:      *p.Author,
		ISBN:        p.ISBN,
		Year:        *p.Year,
		Description: p.Description,
		IsAvailable: true,
	}
	if p.IsAvailable != nil {
		d.IsAvailable = *p.IsAvailable
	}
	return d, nil
}
