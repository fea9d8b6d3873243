package models

import (
	"time"
)

// Note represents a personal note, visible only to its author
type Note struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Text      string    `json:"text" db:"text"`
	Slug      string    `json:"slug" db:"slug"`
	AuthorID  string    `json:"author" db:"author_id"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// OwnerID returns the note author
func (n *Note) OwnerID() string { return n.AuthorID }

// Private is true: a note exists only for its author
func (n *Note) Private() bool { return true }

// MaxNoteTitleLength mirrors the title column size
const MaxNoteTitleLength = 100
