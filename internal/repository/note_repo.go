package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/newsnotes/internal/database"
	"github.com/newsnotes/internal/models"
)

// noteRepo is the concrete implementation of NoteRepository
type noteRepo struct {
	db *database.DB
}

// NewNoteRepo creates a new note repository
func NewNoteRepo(db *database.DB) NoteRepository {
	return &noteRepo{db: db}
}

// Create inserts a new note. A slug collision yields ErrDuplicateSlug.
func (r *noteRepo) Create(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (id, title, text, slug, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		note.ID, note.Title, note.Text, note.Slug, note.AuthorID,
		note.CreatedAt, note.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateSlug
	}
	return err
}

// GetBySlug retrieves a note by slug
func (r *noteRepo) GetBySlug(ctx context.Context, slug string) (*models.Note, error) {
	query := `
		SELECT id, title, text, slug, author_id, created_at, updated_at
		FROM notes WHERE slug = $1
	`

	var note models.Note
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&note.ID, &note.Title, &note.Text, &note.Slug, &note.AuthorID,
		&note.CreatedAt, &note.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListByAuthor returns the notes of one author in creation order
func (r *noteRepo) ListByAuthor(ctx context.Context, authorID string) ([]*models.Note, error) {
	query := `
		SELECT id, title, text, slug, author_id, created_at, updated_at
		FROM notes WHERE author_id = $1 ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(
			&note.ID, &note.Title, &note.Text, &note.Slug, &note.AuthorID,
			&note.CreatedAt, &note.UpdatedAt,
		); err != nil {
			return nil, err
		}
		notes = append(notes, &note)
	}
	return notes, rows.Err()
}

// SlugExists checks if a note other than excludeID uses slug. An empty
// excludeID checks all notes.
func (r *noteRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	var err error
	if excludeID == "" {
		err = r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM notes WHERE slug = $1)", slug,
		).Scan(&exists)
	} else {
		err = r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM notes WHERE slug = $1 AND id <> $2)", slug, excludeID,
		).Scan(&exists)
	}
	return exists, err
}

// Update replaces title, text and slug of a note. Author and creation time
// are never written.
func (r *noteRepo) Update(ctx context.Context, note *models.Note) error {
	note.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		"UPDATE notes SET title = $1, text = $2, slug = $3, updated_at = $4 WHERE id = $5",
		note.Title, note.Text, note.Slug, note.UpdatedAt, note.ID,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateSlug
	}
	return err
}

// Delete removes a note
func (r *noteRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = $1", id)
	return err
}

// Count returns the total number of notes
func (r *noteRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notes").Scan(&count)
	return count, err
}
