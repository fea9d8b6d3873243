package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/newsnotes/internal/database"
	"github.com/newsnotes/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleColumns = "id, title, text, publish_date, created_at"

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (id, title, text, publish_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Text, article.PublishDate, article.CreatedAt,
	)
	return err
}

// BatchInsert inserts multiple articles using PostgreSQL COPY. The batch is
// committed as a whole or not at all.
func (r *articleRepo) BatchInsert(ctx context.Context, articles []*models.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("articles",
		"id", "title", "text", "publish_date", "created_at",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, article := range articles {
		if _, err := stmt.ExecContext(ctx,
			article.ID, article.Title, article.Text, article.PublishDate, article.CreatedAt,
		); err != nil {
			return 0, fmt.Errorf("failed to copy article %s: %w", article.ID, err)
		}
	}

	// Flush the COPY buffer
	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(articles), nil
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := "SELECT " + articleColumns + " FROM articles WHERE id = $1"

	var article models.Article
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.Title, &article.Text, &article.PublishDate, &article.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// ListRecent returns at most limit articles, newest publish date first
func (r *articleRepo) ListRecent(ctx context.Context, limit int) ([]*models.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles ORDER BY publish_date DESC, created_at LIMIT $1"

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]*models.Article, 0, limit)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// GetAllIDs retrieves all article IDs (for duplicate detection on import)
func (r *articleRepo) GetAllIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM articles")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

// StreamAll streams all articles, newest first, for export
func (r *articleRepo) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	query := "SELECT " + articleColumns + " FROM articles ORDER BY publish_date DESC, created_at"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return err
		}
		if err := callback(article); err != nil {
			return err
		}
	}

	return rows.Err()
}

func scanArticle(rows *sql.Rows) (*models.Article, error) {
	var article models.Article
	if err := rows.Scan(
		&article.ID, &article.Title, &article.Text, &article.PublishDate, &article.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &article, nil
}
