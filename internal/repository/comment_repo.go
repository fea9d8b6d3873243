package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/newsnotes/internal/database"
	"github.com/newsnotes/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, article_id, author_id, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.ArticleID, comment.AuthorID, comment.Text,
		comment.CreatedAt, comment.UpdatedAt,
	)
	return err
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `
		SELECT id, article_id, author_id, text, created_at, updated_at
		FROM comments WHERE id = $1
	`

	var comment models.Comment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.ArticleID, &comment.AuthorID, &comment.Text,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByArticle returns an article's comments, oldest first. Comments created
// at the same instant keep insertion order.
func (r *commentRepo) ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error) {
	query := `
		SELECT id, article_id, author_id, text, created_at, updated_at
		FROM comments WHERE article_id = $1 ORDER BY created_at, seq
	`
	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(
			&comment.ID, &comment.ArticleID, &comment.AuthorID, &comment.Text,
			&comment.CreatedAt, &comment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}

// UpdateText replaces a comment's text. Author and creation time are never
// written.
func (r *commentRepo) UpdateText(ctx context.Context, id, text string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE comments SET text = $1, updated_at = $2 WHERE id = $3",
		text, time.Now(), id,
	)
	return err
}

// Delete removes a comment
func (r *commentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = $1", id)
	return err
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}
