package models

import (
	"time"
)

// Article represents a news item. Articles are read-only over HTTP.
type Article struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Text        string    `json:"text" db:"text"`
	PublishDate time.Time `json:"date" db:"publish_date"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
}

// OwnerID is empty: articles belong to no site user
func (a *Article) OwnerID() string { return "" }

// Private reports whether only the owner may view the article
func (a *Article) Private() bool { return false }

// ArticleNDJSON represents an article record from NDJSON import
type ArticleNDJSON struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
	Date  string `json:"date,omitempty"`
}

// MaxArticleTitleLength mirrors the title column size
const MaxArticleTitleLength = 50
