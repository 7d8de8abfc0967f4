package books

import (
	"github.com/5w1tchy/smart-library-api/internal/models"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
)

var dialect = goqu.Dialect("postgres")

// filterExpressions turns the supplied filters into AND-ed conjuncts.
// Absent filters contribute nothing.
func filterExpressions(f models.BookFilter) []exp.Expression {
	conj := make([]exp.Expression, 0, 5)
	if f.Author != "" {
		conj = append(conj, goqu.C("author").ILike(containsPattern(f.Author)))
	}
	if f.Title != "" {
		conj = append(conj, goqu.C("title").ILike(containsPattern(f.Title)))
	}
	if f.Search != "" {
		p := containsPattern(f.Search)
		conj = append(conj, goqu.Or(
			goqu.C("title").ILike(p),
			goqu.C("author").ILike(p),
		))
	}
	if f.Year != nil {
		conj = append(conj, goqu.C("year").Eq(*f.Year))
	}
	if f.AvailableOnly {
		conj = append(conj, goqu.C("is_available").IsTrue())
	}
	return conj
}

// filtered is the shared base for the count and page queries; both must
// see the same predicate set or the pagination metadata drifts from the rows.
func filtered(f models.BookFilter) *goqu.SelectDataset {
	ds := dialect.From(tableBooks).Prepared(true)
	if conj := filterExpressions(f); len(conj) > 0 {
		ds = ds.Where(conj...)
	}
	return ds
}

func buildCountQuery(f models.BookFilter) (string, []any, error) {
	return filtered(f).Select(goqu.COUNT(goqu.Star())).ToSQL()
}

func buildPageQuery(f models.BookFilter, skip, limit int) (string, []any, error) {
	return filtered(f).
		Select(bookColumns...).
		Order(goqu.C("created_at").Desc(), goqu.C("id").Desc()).
		Limit(uint(limit)).
		Offset(uint(skip)).
		ToSQL()
}
