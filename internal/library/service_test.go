package library_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/5w1tchy/smart-library-api/internal/events"
	"github.com/5w1tchy/smart-library-api/internal/library"
	"github.com/5w1tchy/smart-library-api/internal/models"
	"github.com/5w1tchy/smart-library-api/internal/store/books"
	"github.com/5w1tchy/smart-library-api/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureEvents struct {
	mu  sync.Mutex
	got []events.Event
}

func (c *captureEvents) Enqueue(ev events.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, ev)
	return true
}

func (c *captureEvents) Ping(context.Context) error { return nil }

func (c *captureEvents) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.got))
	for _, ev := range c.got {
		out = append(out, ev.Type)
	}
	return out
}

type countRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countRecorder) BookMutation(op, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[op+"/"+result]++
}

func newService(t *testing.T) (*library.Service, *captureEvents, *countRecorder) {
	t.Helper()
	ev := &captureEvents{}
	rec := &countRecorder{}
	svc := library.NewService(books.NewMemory(), library.Options{
		DefaultPageSize: 100,
		MaxPageSize:     1000,
		Events:          ev,
		Metrics:         rec,
	})
	return svc, ev, rec
}

func input(t *testing.T, body string) library.BookInput {
	t.Helper()
	in, err := library.DecodeBookInput([]byte(body))
	require.NoError(t, err)
	return in
}

func codeOf(t *testing.T, err error) (string, int) {
	t.Helper()
	var e *library.Error
	require.True(t, errors.As(err, &e), "want *library.Error, got %T", err)
	return e.Code, e.Status
}

func TestCreate_DefaultsAndNormalizes(t *testing.T) {
	svc, ev, rec := newService(t)

	b, err := svc.Create(t.Context(), input(t, `{"title":"  Dune ","author":"Frank Herbert","year":1965}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, "Dune", b.Title)
	assert.True(t, b.IsAvailable, "is_available defaults to true")
	assert.Nil(t, b.ISBN)
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)
	assert.Equal(t, []string{events.BookCreated}, ev.types())
	assert.Equal(t, 1, rec.counts["create/ok"])
}

func TestCreate_ValidationCollectsAllFields(t *testing.T) {
	svc, ev, _ := newService(t)

	_, err := svc.Create(t.Context(), input(t, `{"title":"","isbn":"12345","year":999}`))
	code, status := codeOf(t, err)
	assert.Equal(t, library.CodeValidation, code)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	var e *library.Error
	errors.As(err, &e)
	fields := map[string]bool{}
	for _, fe := range e.Details["errors"].(validate.Errors) {
		fields[fe.Field] = true
	}
	for _, f := range []string{"title", "author", "isbn", "year"} {
		assert.True(t, fields[f], "missing error for %s", f)
	}
	assert.Empty(t, ev.types())
}

func TestCreate_TooLongFields(t *testing.T) {
	svc, _, _ := newService(t)
	long := strings.Repeat("x", 256)
	_, err := svc.Create(t.Context(), library.BookInput{
		Title:  library.Some(long),
		Author: library.Some("A"),
		Year:   library.Some(2000),
	})
	code, _ := codeOf(t, err)
	assert.Equal(t, library.CodeValidation, code)

	_, err = svc.Create(t.Context(), library.BookInput{
		Title:       library.Some("T"),
		Author:      library.Some("A"),
		Year:        library.Some(2000),
		Description: library.Some(strings.Repeat("d", 2001)),
	})
	code, _ = codeOf(t, err)
	assert.Equal(t, library.CodeValidation, code)
}

func TestCreate_DuplicateISBNConflicts(t *testing.T) {
	svc, _, rec := newService(t)
	body := `{"title":"T","author":"A","year":2000,"isbn":"9783161484100"}`
	_, err := svc.Create(t.Context(), input(t, body))
	require.NoError(t, err)

	_, err = svc.Create(t.Context(), input(t, body))
	code, status := codeOf(t, err)
	assert.Equal(t, library.CodeConflict, code)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, 1, rec.counts["create/conflict"])
}

func TestGet_NotFound(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Get(t.Context(), 42)
	code, status := codeOf(t, err)
	assert.Equal(t, library.CodeNotFound, code)
	assert.Equal(t, http.StatusNotFound, status)
	assert.EqualError(t, err, "Book with ID 42 not found")
}

func TestUpdate_MergesSuppliedFields(t *testing.T) {
	svc, ev, _ := newService(t)
	orig, err := svc.Create(t.Context(), input(t, `{"title":"T","author":"A","year":2000,"description":"keep"}`))
	require.NoError(t, err)

	got, err := svc.Update(t.Context(), orig.ID, input(t, `{"year":2001,"description":null}`))
	require.NoError(t, err)
	assert.Equal(t, 2001, got.Year)
	assert.Equal(t, "T", got.Title)
	require.NotNil(t, got.Description, "null means not supplied")
	assert.Equal(t, "keep", *got.Description)
	assert.True(t, got.UpdatedAt.After(orig.UpdatedAt))
	assert.Equal(t, orig.CreatedAt, got.CreatedAt)
	assert.Equal(t, []string{events.BookCreated, events.BookUpdated}, ev.types())
}

func TestUpdate_ErrorPrecedence(t *testing.T) {
	svc, _, _ := newService(t)

	// invalid fields win over a missing row
	_, err := svc.Update(t.Context(), 99, input(t, `{"year":5}`))
	code, status := codeOf(t, err)
	assert.Equal(t, library.CodeValidation, code)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	// a missing row wins over an empty update
	_, err = svc.Update(t.Context(), 99, input(t, `{}`))
	code, _ = codeOf(t, err)
	assert.Equal(t, library.CodeNotFound, code)

	b, err := svc.Create(t.Context(), input(t, `{"title":"T","author":"A","year":2000}`))
	require.NoError(t, err)
	_, err = svc.Update(t.Context(), b.ID, input(t, `{"unknown":"x","title":null}`))
	code, status = codeOf(t, err)
	assert.Equal(t, library.CodeValidation, code)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDelete_ReturnsSnapshotThenNotFound(t *testing.T) {
	svc, ev, _ := newService(t)
	b, err := svc.Create(t.Context(), input(t, `{"title":"T","author":"A","year":2000}`))
	require.NoError(t, err)

	gone, err := svc.Delete(t.Context(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, gone.ID)
	assert.Equal(t, "T", gone.Title)

	_, err = svc.Delete(t.Context(), b.ID)
	code, _ := codeOf(t, err)
	assert.Equal(t, library.CodeNotFound, code)
	assert.Equal(t, []string{events.BookCreated, events.BookDeleted}, ev.types())
}

func TestList_PagesAndCounts(t *testing.T) {
	svc, _, _ := newService(t)
	for i := 0; i < 25; i++ {
		_, err := svc.Create(t.Context(), library.BookInput{
			Title:  library.Some("Book"),
			Author: library.Some("Author"),
			Year:   library.Some(2000 + i%3),
		})
		require.NoError(t, err)
	}

	params, err := svc.ParseListParams(url.Values{"skip": {"20"}, "limit": {"10"}})
	require.NoError(t, err)
	page, err := svc.List(t.Context(), params)
	require.NoError(t, err)
	assert.Len(t, page.Books, 5)
	assert.Equal(t, 25, page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.Page)
	assert.False(t, page.Pagination.HasNext)

	params, err = svc.ParseListParams(url.Values{"year": {"2001"}})
	require.NoError(t, err)
	page, err = svc.List(t.Context(), params)
	require.NoError(t, err)
	assert.Equal(t, 8, page.Pagination.Total)
	assert.Equal(t, 100, page.Pagination.Limit)
	for i := 1; i < len(page.Books); i++ {
		assert.Greater(t, page.Books[i-1].ID, page.Books[i].ID, "newest first")
	}
}

func TestList_MaxSkipHasNoNextPage(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Create(t.Context(), input(t, `{"title":"Dune","author":"Frank Herbert","year":1965}`))
	require.NoError(t, err)

	params, err := svc.ParseListParams(url.Values{"skip": {strconv.Itoa(math.MaxInt)}, "limit": {"10"}})
	require.NoError(t, err)
	page, err := svc.List(t.Context(), params)
	require.NoError(t, err)
	assert.Empty(t, page.Books)
	assert.Equal(t, 1, page.Pagination.Total)
	assert.False(t, page.Pagination.HasNext)
	assert.Nil(t, page.Pagination.NextPage)
	assert.True(t, page.Pagination.HasPrev)
}

func TestParseListParams_Invalid(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.ParseListParams(url.Values{
		"skip":           {"-1"},
		"limit":          {"1001"},
		"year":           {"abc"},
		"available_only": {"maybe"},
	})
	var e *library.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, http.StatusUnprocessableEntity, e.Status)
	assert.Len(t, e.Details["errors"], 4)

	_, err = svc.ParseListParams(url.Values{"limit": {"0"}})
	assert.Error(t, err)
}

func TestParseListParams_Defaults(t *testing.T) {
	svc, _, _ := newService(t)
	p, err := svc.ParseListParams(url.Values{"author": {" Tolkien "}, "available_only": {"yes"}})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Skip)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, models.BookFilter{Author: "Tolkien", AvailableOnly: true}, p.Filter)
}

type failingStore struct{ *books.MemoryStore }

func (failingStore) Query(context.Context, models.BookFilter, int, int) ([]models.Book, int, error) {
	return nil, 0, errors.New("connection refused")
}

func (failingStore) Ping(context.Context) error { return errors.New("connection refused") }

func TestList_InternalErrorCarriesCause(t *testing.T) {
	svc := library.NewService(failingStore{books.NewMemory()}, library.Options{})
	_, err := svc.List(t.Context(), library.ListParams{Limit: 10})

	var e *library.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, library.CodeInternal, e.Code)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
	assert.Equal(t, "connection refused", e.Details["error"])
}

func TestHealth(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Create(t.Context(), input(t, `{"title":"T","author":"A","year":2000}`))
	require.NoError(t, err)

	h := svc.Health(t.Context())
	assert.Equal(t, "operational", h.Status)
	assert.Equal(t, "healthy", h.Services["database"])
	assert.Equal(t, "healthy", h.Services["events"])
	assert.Equal(t, 1, h.Metrics["total_books"])

	down := library.NewService(failingStore{books.NewMemory()}, library.Options{})
	h = down.Health(t.Context())
	assert.Equal(t, "unhealthy: connection refused", h.Services["database"])
	assert.Equal(t, "disabled", h.Services["events"])
}
