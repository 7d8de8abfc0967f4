// Package library holds the book use cases: validation, listing with
// pagination, and mapping store failures onto API errors.
package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/5w1tchy/smart-library-api/internal/events"
	"github.com/5w1tchy/smart-library-api/internal/models"
	"github.com/5w1tchy/smart-library-api/internal/store/books"
	"go.uber.org/zap"
)

// Store is the persistence contract. books.Store and books.MemoryStore
// both satisfy it.
type Store interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, d models.BookDraft) (models.Book, error)
	FindByID(ctx context.Context, id int64) (models.Book, error)
	Update(ctx context.Context, id int64, p models.BookPatch) (models.Book, error)
	Delete(ctx context.Context, id int64) (models.Book, error)
	Query(ctx context.Context, f models.BookFilter, skip, limit int) ([]models.Book, int, error)
	Count(ctx context.Context, f models.BookFilter) (int, error)
	Ping(ctx context.Context) error
}

// Events receives change notifications; events.Queue implements it.
type Events interface {
	Enqueue(ev events.Event) bool
	Ping(ctx context.Context) error
}

// Recorder counts mutation outcomes; metrics.Metrics implements it.
type Recorder interface {
	BookMutation(op, result string)
}

type Options struct {
	DefaultPageSize int
	MaxPageSize     int
	Events          Events
	Metrics         Recorder
	Logger          *zap.Logger
}

type Service struct {
	store           Store
	events          Events
	metrics         Recorder
	log             *zap.Logger
	defaultPageSize int
	maxPageSize     int
}

func NewService(store Store, opts Options) *Service {
	s := &Service{
		store:           store,
		events:          opts.Events,
		metrics:         opts.Metrics,
		log:             opts.Logger,
		defaultPageSize: opts.DefaultPageSize,
		maxPageSize:     opts.MaxPageSize,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.maxPageSize <= 0 {
		s.maxPageSize = 1000
	}
	if s.defaultPageSize <= 0 || s.defaultPageSize > s.maxPageSize {
		s.defaultPageSize = min(100, s.maxPageSize)
	}
	return s
}

func (s *Service) List(ctx context.Context, p ListParams) (Page, error) {
	rows, total, err := s.store.Query(ctx, p.Filter, p.Skip, p.Limit)
	if err != nil {
		return Page{}, s.mapStoreError(0, err)
	}
	return Page{Books: rows, Pagination: Paginate(total, p.Skip, p.Limit)}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (models.Book, error) {
	b, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.Book{}, s.mapStoreError(id, err)
	}
	return b, nil
}

func (s *Service) Create(ctx context.Context, in BookInput) (models.Book, error) {
	d, errs := in.draft()
	if errs.Any() {
		s.record("create", "invalid")
		return models.Book{}, Validation(errs)
	}
	b, err := s.store.Insert(ctx, d)
	if err != nil {
		s.record("create", resultOf(err))
		return models.Book{}, s.mapStoreError(0, err)
	}
	s.record("create", "ok")
	s.emit(events.BookCreated, b)
	return b, nil
}

// Update merges the supplied fields into book id. PUT and PATCH both land
// here; neither requires the full field set.
func (s *Service) Update(ctx context.Context, id int64, in BookInput) (models.Book, error) {
	p, errs := in.patch()
	if errs.Any() {
		s.record("update", "invalid")
		return models.Book{}, Validation(errs)
	}
	if _, err := s.store.FindByID(ctx, id); err != nil {
		s.record("update", resultOf(err))
		return models.Book{}, s.mapStoreError(id, err)
	}
	if p.Empty() {
		s.record("update", "invalid")
		return models.Book{}, EmptyUpdate()
	}
	b, err := s.store.Update(ctx, id, p)
	if err != nil {
		s.record("update", resultOf(err))
		return models.Book{}, s.mapStoreError(id, err)
	}
	s.record("update", "ok")
	s.emit(events.BookUpdated, b)
	return b, nil
}

// Delete removes book id and returns it as it was before removal.
func (s *Service) Delete(ctx context.Context, id int64) (models.Book, error) {
	b, err := s.store.Delete(ctx, id)
	if err != nil {
		s.record("delete", resultOf(err))
		return models.Book{}, s.mapStoreError(id, err)
	}
	s.record("delete", "ok")
	s.emit(events.BookDeleted, b)
	return b, nil
}

func (s *Service) mapStoreError(id int64, err error) error {
	switch {
	case errors.Is(err, books.ErrNotFound):
		return NotFound(id)
	case errors.Is(err, books.ErrConflict):
		return Conflict(err)
	case errors.Is(err, books.ErrInvalid):
		return FieldInvalid("body", "constraint", "value violates a table constraint")
	case errors.Is(err, context.Canceled):
		return Internal(fmt.Errorf("request cancelled: %w", err))
	}
	s.log.Error("book store failure", zap.Int64("book_id", id), zap.Error(err))
	return Internal(err)
}

func resultOf(err error) string {
	switch {
	case errors.Is(err, books.ErrNotFound):
		return "not_found"
	case errors.Is(err, books.ErrConflict):
		return "conflict"
	case errors.Is(err, books.ErrInvalid):
		return "invalid"
	}
	return "error"
}

func (s *Service) record(op, result string) {
	if s.metrics != nil {
		s.metrics.BookMutation(op, result)
	}
}

func (s *Service) emit(typ string, b models.Book) {
	if s.events == nil {
		return
	}
	if !s.events.Enqueue(events.New(typ, b)) {
		s.log.Warn("book event dropped", zap.String("type", typ), zap.Int64("book_id", b.ID))
	}
}
