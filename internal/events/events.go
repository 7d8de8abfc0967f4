// Package events carries book change notifications from the service to
// subscribers outside the process.
package events

import (
	"context"
	"time"

	"github.com/5w1tchy/smart-library-api/internal/models"
)

const (
	BookCreated = "book.created"
	BookUpdated = "book.updated"
	BookDeleted = "book.deleted"
)

type Event struct {
	Type       string      `json:"type"`
	BookID     int64       `json:"book_id"`
	Book       models.Book `json:"book"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func New(typ string, b models.Book) Event {
	return Event{Type: typ, BookID: b.ID, Book: b, OccurredAt: time.Now().UTC()}
}

// Publisher delivers a batch of events. Implementations must be safe for
// concurrent use by multiple queue workers.
type Publisher interface {
	Publish(ctx context.Context, batch []Event) error
	Ping(ctx context.Context) error
}

// Nop discards everything. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, []Event) error { return nil }
func (Nop) Ping(context.Context) error             { return nil }
