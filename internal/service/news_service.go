package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/newsnotes/internal/access"
	"github.com/newsnotes/internal/config"
	"github.com/newsnotes/internal/metrics"
	"github.com/newsnotes/internal/models"
	"github.com/newsnotes/internal/ordering"
	"github.com/newsnotes/internal/repository"
	"github.com/newsnotes/internal/validation"
)

const kindComment = "comment"

// newsService is the concrete implementation of NewsService
type newsService struct {
	articles  repository.ArticleRepository
	comments  repository.CommentRepository
	validator *validation.Validator
	pageSize  int
	log       zerolog.Logger
}

// newNewsService creates a new NewsService
func newNewsService(repos *repository.Repositories, validator *validation.Validator, content config.ContentConfig, log zerolog.Logger) *newsService {
	return &newsService{
		articles:  repos.Article,
		comments:  repos.Comment,
		validator: validator,
		pageSize:  content.NewsPageSize,
		log:       log.With().Str("service", "news").Logger(),
	}
}

// ListArticles returns the home page: at most pageSize articles, newest first
func (s *newsService) ListArticles(ctx context.Context) ([]*models.Article, error) {
	articles, err := s.articles.ListRecent(ctx, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return ordering.Articles(articles, s.pageSize), nil
}

// GetArticleDetail returns an article and its comments in chronological order
func (s *newsService) GetArticleDetail(ctx context.Context, articleID string) (*ArticleDetail, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	if err := access.Authorize(access.View, articleResource(article), access.Anonymous); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByArticle(ctx, article.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return &ArticleDetail{
		Article:  article,
		Comments: ordering.Comments(comments, article.ID),
	}, nil
}

// CreateComment adds a comment by id to an article
func (s *newsService) CreateComment(ctx context.Context, id access.Identity, articleID string, form *models.CommentForm) (*models.Comment, error) {
	if err := access.RequireLogin(id); err != nil {
		return nil, denied(kindComment, access.Create, err)
	}

	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	if article == nil {
		return nil, denied(kindComment, access.Create, access.ErrNotFound)
	}

	text, err := s.validator.ValidateComment(form)
	if err != nil {
		return nil, invalid(kindComment, err)
	}

	now := time.Now()
	comment := &models.Comment{
		ID:        uuid.New().String(),
		ArticleID: article.ID,
		AuthorID:  id.UserID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	metrics.RecordWrite(kindComment, "create")
	s.log.Info().
		Str("comment_id", comment.ID).
		Str("article_id", article.ID).
		Str("author_id", id.UserID).
		Msg("Comment created")

	return comment, nil
}

// GetComment loads a comment for op on behalf of id
func (s *newsService) GetComment(ctx context.Context, id access.Identity, commentID string, op access.Operation) (*models.Comment, error) {
	if op != access.View {
		if err := access.RequireLogin(id); err != nil {
			return nil, denied(kindComment, op, err)
		}
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	if err := access.Authorize(op, commentResource(comment), id); err != nil {
		return nil, denied(kindComment, op, err)
	}
	return comment, nil
}

// EditComment replaces the text of an owned comment. Author and creation
// time stay unchanged.
func (s *newsService) EditComment(ctx context.Context, id access.Identity, commentID string, form *models.CommentForm) (*models.Comment, error) {
	comment, err := s.GetComment(ctx, id, commentID, access.Edit)
	if err != nil {
		return nil, err
	}

	text, err := s.validator.ValidateComment(form)
	if err != nil {
		return nil, invalid(kindComment, err)
	}

	if err := s.comments.UpdateText(ctx, comment.ID, text); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	comment.Text = text

	metrics.RecordWrite(kindComment, "edit")
	s.log.Info().Str("comment_id", comment.ID).Msg("Comment edited")

	return comment, nil
}

// DeleteComment removes an owned comment and returns it
func (s *newsService) DeleteComment(ctx context.Context, id access.Identity, commentID string) (*models.Comment, error) {
	comment, err := s.GetComment(ctx, id, commentID, access.Delete)
	if err != nil {
		return nil, err
	}

	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	metrics.RecordWrite(kindComment, "delete")
	s.log.Info().Str("comment_id", comment.ID).Msg("Comment deleted")

	return comment, nil
}

// articleResource keeps a missing article a nil interface for the policy
func articleResource(a *models.Article) access.Resource {
	if a == nil {
		return nil
	}
	return a
}

func commentResource(c *models.Comment) access.Resource {
	if c == nil {
		return nil
	}
	return c
}
