package library

import (
	"net/url"
	"strconv"

	"github.com/5w1tchy/smart-library-api/internal/models"
	"github.com/5w1tchy/smart-library-api/internal/validate"
)

// ListParams is a validated list request.
type ListParams struct {
	Filter models.BookFilter
	Skip   int
	Limit  int
}

// Page is one list result.
type Page struct {
	Books      []models.Book
	Pagination Pagination
}

// ParseListParams validates list query parameters, collecting every
// problem instead of stopping at the first.
func (s *Service) ParseListParams(q url.Values) (ListParams, error) {
	p := ListParams{Limit: s.defaultPageSize}
	var errs validate.Errors

	if raw := q.Get("skip"); raw != "" {
		n, err := validate.ParseInt(raw)
		switch {
		case err != nil:
			errs.Add("skip", "int_parsing", "skip must be an integer")
		case n < 0:
			errs.Add("skip", "greater_than_equal", "skip must be greater than or equal to 0")
		default:
			p.Skip = n
		}
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := validate.ParseInt(raw)
		switch {
		case err != nil:
			errs.Add("limit", "int_parsing", "limit must be an integer")
		case n < 1 || n > s.maxPageSize:
			errs.Add("limit", "range", "limit must be between 1 and "+strconv.Itoa(s.maxPageSize))
		default:
			p.Limit = n
		}
	}
	if raw := q.Get("year"); raw != "" {
		n, err := validate.ParseInt(raw)
		if err != nil {
			errs.Add("year", "int_parsing", "year must be an integer")
		} else if err := validate.IntRange("year", n, models.MinYear, models.MaxYear); err != nil {
			errs.Add("year", "range", err.Error())
		} else {
			p.Filter.Year = &n
		}
	}
	if raw := q.Get("available_only"); raw != "" {
		v, err := validate.ParseBool(raw)
		if err != nil {
			errs.Add("available_only", "bool_parsing", "available_only must be a boolean")
		} else {
			p.Filter.AvailableOnly = v
		}
	}
	p.Filter.Author = validate.Text(q.Get("author"))
	p.Filter.Title = validate.Text(q.Get("title"))
	p.Filter.Search = validate.Text(q.Get("search"))

	if errs.Any() {
		return ListParams{}, Validation(errs)
	}
	return p, nil
}
