package models

import (
	"time"
)

// Comment represents a comment on an article
type Comment struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"news" db:"article_id"`
	AuthorID  string    `json:"author" db:"author_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// OwnerID returns the comment author
func (c *Comment) OwnerID() string { return c.AuthorID }

// Private is false: comments are shown to everyone on the article page
func (c *Comment) Private() bool { return false }
