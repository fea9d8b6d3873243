package service

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/newsnotes/internal/config"
	"github.com/newsnotes/internal/metrics"
	"github.com/newsnotes/internal/models"
	"github.com/newsnotes/internal/repository"
	"github.com/newsnotes/internal/validation"
)

// maxReportedErrors bounds the line errors kept in an ImportResult
const maxReportedErrors = 1000

// LineError is a rejected field of one NDJSON line
type LineError struct {
	Line int `json:"line"`
	validation.ValidationError
}

// ImportResult summarizes an article import
type ImportResult struct {
	TotalRecords    int         `json:"total_records"`
	SuccessfulCount int         `json:"successful_count"`
	FailedCount     int         `json:"failed_count"`
	DurationMs      int64       `json:"duration_ms"`
	Errors          []LineError `json:"errors,omitempty"`
}

// importService is the concrete implementation of ImportService
type importService struct {
	articles repository.ArticleRepository
	cfg      *config.Config
	log      zerolog.Logger
}

// newImportService creates a new ImportService
func newImportService(articles repository.ArticleRepository, cfg *config.Config, log zerolog.Logger) *importService {
	return &importService{
		articles: articles,
		cfg:      cfg,
		log:      log.With().Str("service", "import").Logger(),
	}
}

// ImportFile imports articles from an NDJSON file
func (s *importService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s.log.Info().Str("file", path).Msg("Starting article import")
	return s.ImportArticles(ctx, file)
}

// ImportArticles reads one article per line, validates it and inserts valid
// articles in batches. Invalid lines are reported and skipped.
func (s *importService) ImportArticles(ctx context.Context, r io.Reader) (*ImportResult, error) {
	startTime := time.Now()
	result := &ImportResult{}

	scanner := bufio.NewScanner(r)
	// Increase buffer size for long lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	validator := validation.NewValidator(s.cfg.Content)
	batchSize := s.cfg.Import.BatchSize

	// Pre-load existing ids for duplicate detection
	ids, err := s.articles.GetAllIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load article ids: %w", err)
	}
	for _, id := range ids {
		validator.AddArticleID(id)
	}

	var batch []*models.Article
	flush := func() {
		if len(batch) == 0 {
			return
		}
		inserted, err := s.articles.BatchInsert(ctx, batch)
		if err != nil {
			s.log.Error().Err(err).Int("batch_size", len(batch)).Msg("Batch insert failed")
			result.FailedCount += len(batch)
			metrics.ArticlesImportedTotal.WithLabelValues("failed").Add(float64(len(batch)))
		} else {
			result.SuccessfulCount += inserted
			metrics.ArticlesImportedTotal.WithLabelValues("inserted").Add(float64(inserted))
		}
		batch = batch[:0]
	}

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}
		result.TotalRecords++

		// Respect context cancellation for long-running imports
		if lineNum%10000 == 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
			}
		}

		var record models.ArticleNDJSON
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			result.reject(lineNum, validation.ValidationError{
				Field:   "json",
				Message: fmt.Sprintf("invalid JSON: %v", err),
			})
			continue
		}

		if errs := validator.ValidateArticle(&record, lineNum); len(errs) > 0 {
			result.reject(lineNum, errs...)
			continue
		}

		article := convertNDJSONToArticle(&record, time.Now())
		batch = append(batch, article)
		validator.AddArticleID(article.ID)

		if len(batch) >= batchSize {
			flush()
			s.log.Debug().
				Int("processed", result.SuccessfulCount+result.FailedCount).
				Msg("Batch processed")
		}
	}
	if err := scanner.Err(); err != nil {
		return result, err
	}

	// Process remaining batch
	flush()

	result.DurationMs = time.Since(startTime).Milliseconds()
	s.log.Info().
		Int("total", result.TotalRecords).
		Int("successful", result.SuccessfulCount).
		Int("failed", result.FailedCount).
		Int64("duration_ms", result.DurationMs).
		Msg("Import completed")

	return result, nil
}

func (r *ImportResult) reject(line int, errs ...validation.ValidationError) {
	r.FailedCount++
	metrics.ArticlesImportedTotal.WithLabelValues("failed").Inc()
	for _, e := range errs {
		if len(r.Errors) >= maxReportedErrors {
			return
		}
		r.Errors = append(r.Errors, LineError{Line: line, ValidationError: e})
	}
}

func convertNDJSONToArticle(record *models.ArticleNDJSON, now time.Time) *models.Article {
	article := &models.Article{
		ID:          record.ID,
		Title:       strings.TrimSpace(record.Title),
		Text:        strings.TrimSpace(record.Text),
		PublishDate: now,
		CreatedAt:   now,
	}
	if article.ID == "" {
		article.ID = uuid.New().String()
	}
	if record.Date != "" {
		if t, err := validation.ParseArticleDate(record.Date); err == nil {
			article.PublishDate = t
		}
	}
	return article
}
