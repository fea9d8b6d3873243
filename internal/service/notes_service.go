package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/newsnotes/internal/access"
	"github.com/newsnotes/internal/metrics"
	"github.com/newsnotes/internal/models"
	"github.com/newsnotes/internal/ordering"
	"github.com/newsnotes/internal/repository"
	"github.com/newsnotes/internal/validation"
)

const kindNote = "note"

// notesService is the concrete implementation of NotesService.
// Every operation requires a logged-in identity.
type notesService struct {
	notes     repository.NoteRepository
	validator *validation.Validator
	log       zerolog.Logger
}

// newNotesService creates a new NotesService
func newNotesService(notes repository.NoteRepository, validator *validation.Validator, log zerolog.Logger) *notesService {
	return &notesService{
		notes:     notes,
		validator: validator,
		log:       log.With().Str("service", "notes").Logger(),
	}
}

// ListNotes returns the notes authored by id
func (s *notesService) ListNotes(ctx context.Context, id access.Identity) ([]*models.Note, error) {
	if err := access.RequireLogin(id); err != nil {
		return nil, denied(kindNote, access.View, err)
	}

	notes, err := s.notes.ListByAuthor(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return ordering.Notes(notes, id.UserID), nil
}

// GetNote loads the note with slug for op on behalf of id
func (s *notesService) GetNote(ctx context.Context, id access.Identity, slug string, op access.Operation) (*models.Note, error) {
	if err := access.RequireLogin(id); err != nil {
		return nil, denied(kindNote, op, err)
	}

	note, err := s.notes.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load note: %w", err)
	}
	if err := access.Authorize(op, noteResource(note), id); err != nil {
		return nil, denied(kindNote, op, err)
	}
	return note, nil
}

// CreateNote adds a note authored by id. An empty slug is derived from the title.
func (s *notesService) CreateNote(ctx context.Context, id access.Identity, form *models.NoteForm) (*models.Note, error) {
	if err := access.RequireLogin(id); err != nil {
		return nil, denied(kindNote, access.Create, err)
	}

	cleaned, err := s.validator.ValidateNote(ctx, form, "", s.notes)
	if err != nil {
		return nil, invalid(kindNote, err)
	}

	now := time.Now()
	note := &models.Note{
		ID:        uuid.New().String(),
		Title:     cleaned.Title,
		Text:      cleaned.Text,
		Slug:      cleaned.Slug,
		AuthorID:  id.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, s.storeError(note.Slug, err, "failed to create note")
	}

	metrics.RecordWrite(kindNote, "create")
	s.log.Info().
		Str("note_id", note.ID).
		Str("slug", note.Slug).
		Str("author_id", id.UserID).
		Msg("Note created")

	return note, nil
}

// EditNote replaces title, text and slug of an owned note
func (s *notesService) EditNote(ctx context.Context, id access.Identity, slug string, form *models.NoteForm) (*models.Note, error) {
	note, err := s.GetNote(ctx, id, slug, access.Edit)
	if err != nil {
		return nil, err
	}

	cleaned, err := s.validator.ValidateNote(ctx, form, note.ID, s.notes)
	if err != nil {
		return nil, invalid(kindNote, err)
	}

	note.Title = cleaned.Title
	note.Text = cleaned.Text
	note.Slug = cleaned.Slug
	if err := s.notes.Update(ctx, note); err != nil {
		return nil, s.storeError(note.Slug, err, "failed to update note")
	}

	metrics.RecordWrite(kindNote, "edit")
	s.log.Info().Str("note_id", note.ID).Str("slug", note.Slug).Msg("Note edited")

	return note, nil
}

// DeleteNote removes an owned note
func (s *notesService) DeleteNote(ctx context.Context, id access.Identity, slug string) error {
	note, err := s.GetNote(ctx, id, slug, access.Delete)
	if err != nil {
		return err
	}

	if err := s.notes.Delete(ctx, note.ID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	metrics.RecordWrite(kindNote, "delete")
	s.log.Info().Str("note_id", note.ID).Msg("Note deleted")

	return nil
}

// storeError turns a slug race lost at the database into the same form error
// the uniqueness check reports
func (s *notesService) storeError(slug string, err error, msg string) error {
	if errors.Is(err, repository.ErrDuplicateSlug) {
		return invalid(kindNote, validation.NewFormError("slug", s.validator.SlugTakenMessage(slug)))
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func noteResource(n *models.Note) access.Resource {
	if n == nil {
		return nil
	}
	return n
}
