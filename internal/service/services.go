package service

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/newsnotes/internal/access"
	"github.com/newsnotes/internal/config"
	"github.com/newsnotes/internal/metrics"
	"github.com/newsnotes/internal/models"
	"github.com/newsnotes/internal/repository"
	"github.com/newsnotes/internal/validation"
)

// ErrInvalidCredentials is returned by Authenticate for an unknown user or wrong password
var ErrInvalidCredentials = errors.New("invalid username or password")

// ArticleDetail is an article with its comments, oldest first
type ArticleDetail struct {
	Article  *models.Article
	Comments []*models.Comment
}

// NewsService defines the operations of the news site
type NewsService interface {
	ListArticles(ctx context.Context) ([]*models.Article, error)
	GetArticleDetail(ctx context.Context, articleID string) (*ArticleDetail, error)
	CreateComment(ctx context.Context, id access.Identity, articleID string, form *models.CommentForm) (*models.Comment, error)
	GetComment(ctx context.Context, id access.Identity, commentID string, op access.Operation) (*models.Comment, error)
	EditComment(ctx context.Context, id access.Identity, commentID string, form *models.CommentForm) (*models.Comment, error)
	DeleteComment(ctx context.Context, id access.Identity, commentID string) (*models.Comment, error)
}

// NotesService defines the operations of the notes site
type NotesService interface {
	ListNotes(ctx context.Context, id access.Identity) ([]*models.Note, error)
	GetNote(ctx context.Context, id access.Identity, slug string, op access.Operation) (*models.Note, error)
	CreateNote(ctx context.Context, id access.Identity, form *models.NoteForm) (*models.Note, error)
	EditNote(ctx context.Context, id access.Identity, slug string, form *models.NoteForm) (*models.Note, error)
	DeleteNote(ctx context.Context, id access.Identity, slug string) error
}

// UserService defines account operations
type UserService interface {
	SignUp(ctx context.Context, form *models.SignupForm) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Identify(ctx context.Context, userID string) (access.Identity, error)
}

// ImportService defines the article import operations
type ImportService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportArticles(ctx context.Context, r io.Reader) (*ImportResult, error)
}

// ExportService defines the article export and statistics operations
type ExportService interface {
	StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error
	GetCount(ctx context.Context, resource string) (int, error)
}

// Services holds all service interfaces
type Services struct {
	News   NewsService
	Notes  NotesService
	Users  UserService
	Import ImportService
	Export ExportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	validator := validation.NewValidator(cfg.Content)

	return &Services{
		News:   newNewsService(repos, validator, cfg.Content, log),
		Notes:  newNotesService(repos.Note, validator, log),
		Users:  newUserService(repos.User, validator, log),
		Import: newImportService(repos.Article, cfg, log),
		Export: newExportService(repos, log),
	}
}

// denied records and returns a policy refusal
func denied(kind string, op access.Operation, err error) error {
	switch {
	case errors.Is(err, access.ErrUnauthenticated):
		metrics.RecordDenied(kind, op.String(), "unauthenticated")
	case errors.Is(err, access.ErrNotFound):
		metrics.RecordDenied(kind, op.String(), "not_found")
	}
	return err
}

// invalid records the rejected fields of a form error and returns err
func invalid(kind string, err error) error {
	var formErr *validation.FormError
	if errors.As(err, &formErr) {
		metrics.RecordValidationFailure(kind, formErr.Fields)
	}
	return err
}
