package models

import "time"

const (
	MinYear           = 1000
	MaxYear           = 2100
	MaxTitleLen       = 255
	MaxAuthorLen      = 255
	MaxDescriptionLen = 2000
)

// Book is the persisted entity as returned to clients.
type Book struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	ISBN        *string   `json:"isbn"`
	Year        int       `json:"year"`
	Description *string   `json:"description"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookDraft is a validated book that has not been stored yet.
type BookDraft struct {
	Title       string
	Author      string
	ISBN        *string
	Year        int
	Description *string
	IsAvailable bool
}

// BookPatch holds the fields a caller supplied for a merge-update.
// A nil pointer means "leave unchanged".
type BookPatch struct {
	Title       *string
	Author      *string
	ISBN        *string
	Year        *int
	Description *string
	IsAvailable *bool
}

// Empty reports whether no field was supplied.
func (p BookPatch) Empty() bool {
	return p.Title == nil && p.Author == nil && p.ISBN == nil &&
		p.Year == nil && p.Description == nil && p.IsAvailable == nil
}

// BookFilter carries the optional list filters. Zero values mean "not supplied".
type BookFilter struct {
	Author        string
	Title         string
	Search        string
	Year          *int
	AvailableOnly bool
}
