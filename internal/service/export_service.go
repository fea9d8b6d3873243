package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/newsnotes/internal/models"
	"github.com/newsnotes/internal/repository"
)

// ErrUnsupportedFormat is returned for an export format other than ndjson or json
var ErrUnsupportedFormat = errors.New("unsupported format")

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// StreamArticles writes all articles, newest first, in the import format.
// The ndjson output can be fed back to the import command. No explicit
// flushing: the session middleware buffers every response.
func (s *exportService) StreamArticles(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting articles export")

	switch format {
	case "ndjson":
		return s.streamArticlesNDJSON(ctx, w)
	case "json":
		return s.streamArticlesJSON(ctx, w)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func (s *exportService) streamArticlesNDJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename=articles.ndjson")

	count := 0

	err := s.repos.Article.StreamAll(ctx, func(article *models.Article) error {
		data, err := json.Marshal(article)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return err
		}
		count++
		return nil
	})

	s.log.Info().Int("count", count).Msg("Articles export completed")
	return err
}

func (s *exportService) streamArticlesJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=articles.json")

	if _, err := w.Write([]byte("[")); err != nil {
		return err
	}
	first := true

	err := s.repos.Article.StreamAll(ctx, func(article *models.Article) error {
		if !first {
			if _, err := w.Write([]byte(",")); err != nil {
				return err
			}
		}
		first = false

		data, err := json.Marshal(article)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})

	if err != nil {
		return err
	}
	_, err = w.Write([]byte("]"))
	return err
}

// GetCount returns count for a resource
func (s *exportService) GetCount(ctx context.Context, resource string) (int, error) {
	switch resource {
	case "users":
		return s.repos.User.Count(ctx)
	case "articles":
		return s.repos.Article.Count(ctx)
	case "comments":
		return s.repos.Comment.Count(ctx)
	case "notes":
		return s.repos.Note.Count(ctx)
	default:
		return 0, fmt.Errorf("unknown resource: %s", resource)
	}
}
