package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/newsnotes/internal/database"
	"github.com/newsnotes/internal/models"
)

// Constraint violations surfaced by the store
var (
	ErrDuplicateSlug     = errors.New("note slug already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation
const uniqueViolation = "23505"

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	BatchInsert(ctx context.Context, articles []*models.Article) (int, error)
	GetByID(ctx context.Context, id string) (*models.Article, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Article, error)
	GetAllIDs(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.Article) error) error
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error)
	UpdateText(ctx context.Context, id, text string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// NoteRepository defines the interface for note data operations
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	GetBySlug(ctx context.Context, slug string) (*models.Note, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*models.Note, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Article ArticleRepository
	Comment CommentRepository
	Note    NoteRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
		Note:    NewNoteRepo(db),
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// isUUID reports whether id can be compared with a UUID column. Other ids
// cannot match any row.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
