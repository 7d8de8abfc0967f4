package books

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/5w1tchy/smart-library-api/internal/models"
	"golang.org/x/text/cases"
)

// MemoryStore keeps books in process memory. It honors the same contract
// as Store and backs DB_DRIVER=memory and the service tests.
type MemoryStore struct {
	mu     sync.RWMutex
	books  map[int64]models.Book
	nextID int64
	now    func() time.Time
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		books: make(map[int64]models.Book),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryStore) EnsureSchema(context.Context) error { return nil }

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Insert(_ context.Context, d models.BookDraft) (models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d.ISBN != nil && m.isbnTaken(*d.ISBN, 0) {
		return models.Book{}, ErrConflict
	}
	m.nextID++
	ts := m.now()
	b := models.Book{
		ID:          m.nextID,
		Title:       d.Title,
		Author:      d.Author,
		ISBN:        cloneString(d.ISBN),
		Year:        d.Year,
		Description: cloneString(d.Description),
		IsAvailable: d.IsAvailable,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	m.books[b.ID] = b
	return clone(b), nil
}

func (m *MemoryStore) FindByID(_ context.Context, id int64) (models.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[id]
	if !ok {
		return models.Book{}, ErrNotFound
	}
	return clone(b), nil
}

func (m *MemoryStore) Update(_ context.Context, id int64, p models.BookPatch) (models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.books[id]
	if !ok {
		return models.Book{}, ErrNotFound
	}
	if p.ISBN != nil && m.isbnTaken(*p.ISBN, id) {
		return models.Book{}, ErrConflict
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.ISBN != nil {
		b.ISBN = cloneString(p.ISBN)
	}
	if p.Year != nil {
		b.Year = *p.Year
	}
	if p.Description != nil {
		b.Description = cloneString(p.Description)
	}
	if p.IsAvailable != nil {
		b.IsAvailable = *p.IsAvailable
	}
	ts := m.now()
	if !ts.After(b.UpdatedAt) {
		ts = b.UpdatedAt.Add(time.Microsecond)
	}
	b.UpdatedAt = ts
	m.books[id] = b
	return clone(b), nil
}

func (m *MemoryStore) Delete(_ context.Context, id int64) (models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return models.Book{}, ErrNotFound
	}
	delete(m.books, id)
	return clone(b), nil
}

func (m *MemoryStore) Query(_ context.Context, f models.BookFilter, skip, limit int) ([]models.Book, int, error) {
	matched := m.match(f)
	total := len(matched)
	if skip >= total {
		return []models.Book{}, total, nil
	}
	end := total
	if skip+limit < end {
		end = skip + limit
	}
	out := make([]models.Book, 0, end-skip)
	for _, b := range matched[skip:end] {
		out = append(out, clone(b))
	}
	return out, total, nil
}

func (m *MemoryStore) Count(_ context.Context, f models.BookFilter) (int, error) {
	return len(m.match(f)), nil
}

// match returns the filtered books sorted newest first.
func (m *MemoryStore) match(f models.BookFilter) []models.Book {
	fold := cases.Fold()
	contains := func(haystack, needle string) bool {
		return strings.Contains(fold.String(haystack), fold.String(needle))
	}

	m.mu.RLock()
	out := make([]models.Book, 0, len(m.books))
	for _, b := range m.books {
		if f.Author != "" && !contains(b.Author, f.Author) {
			continue
		}
		if f.Title != "" && !contains(b.Title, f.Title) {
			continue
		}
		if f.Search != "" && !contains(b.Title, f.Search) && !contains(b.Author, f.Search) {
			continue
		}
		if f.Year != nil && b.Year != *f.Year {
			continue
		}
		if f.AvailableOnly && !b.IsAvailable {
			continue
		}
		out = append(out, b)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (m *MemoryStore) isbnTaken(isbn string, except int64) bool {
	for id, b := range m.books {
		if id != except && b.ISBN != nil && *b.ISBN == isbn {
			return true
		}
	}
	return false
}

func clone(b models.Book) models.Book {
	b.ISBN = cloneString(b.ISBN)
	b.Description = cloneString(b.Description)
	return b
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
