package validation

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/newsnotes/internal/config"
	"github.com/newsnotes/internal/models"
	"github.com/newsnotes/internal/slugify"
)

// MsgRequired is the message for an empty required field
const MsgRequired = "This field is required."

var slugRegex = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ValidationError represents a single validation error of an imported record
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// FormError collects field-scoped messages of a submitted form. Nothing is
// persisted when a form has errors.
type FormError struct {
	Fields map[string][]string `json:"errors"`
}

// NewFormError returns a FormError with a single field message
func NewFormError(field, message string) *FormError {
	e := &FormError{}
	e.Add(field, message)
	return e
}

// Error implements error
func (e *FormError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Fields[f], "; ")))
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

// Add records a message for field
func (e *FormError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// For returns the messages recorded for field
func (e *FormError) For(field string) []string {
	return e.Fields[field]
}

// errOrNil returns nil for an empty FormError so callers can return it as error
func (e *FormError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// SlugChecker reports whether a note other than excludeID already uses slug
type SlugChecker interface {
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}

// Validator provides validation methods
type Validator struct {
	badWords       []string
	commentWarning string
	slugWarning    string
	slugMaxLength  int
	articleIDCache map[string]bool
}

// NewValidator creates a new validator for the given content rules
func NewValidator(rules config.ContentConfig) *Validator {
	return &Validator{
		badWords:       rules.BadWords,
		commentWarning: rules.CommentWarning,
		slugWarning:    rules.SlugWarning,
		slugMaxLength:  rules.SlugMaxLength,
		articleIDCache: make(map[string]bool),
	}
}

// ValidateComment checks a comment form and returns the cleaned text.
// Text containing any forbidden word (case-sensitive) is rejected with the
// configured warning on field "text".
func (v *Validator) ValidateComment(form *models.CommentForm) (string, error) {
	var errs FormError
	text := strings.TrimSpace(form.Text)

	if text == "" {
		errs.Add("text", MsgRequired)
		return "", errs.errOrNil()
	}
	for _, word := range v.badWords {
		if word != "" && strings.Contains(text, word) {
			errs.Add("text", v.commentWarning)
			break
		}
	}
	return text, errs.errOrNil()
}

// NoteSlug returns the slug a note will be saved with: the submitted slug
// verbatim, or the transliterated title when the slug is empty.
func (v *Validator) NoteSlug(slug, title string) string {
	if slug = strings.TrimSpace(slug); slug != "" {
		return slug
	}
	return slugify.Truncate(slugify.Slugify(strings.TrimSpace(title)), v.slugMaxLength)
}

// ValidateNote checks a note form and resolves its slug. excludeID is the id
// of the note being edited ("" when creating) so it does not collide with
// itself. The returned error is a *FormError for invalid input or the
// checker's error.
func (v *Validator) ValidateNote(ctx context.Context, form *models.NoteForm, excludeID string, checker SlugChecker) (*models.NoteForm, error) {
	var errs FormError
	cleaned := &models.NoteForm{
		Title: strings.TrimSpace(form.Title),
		Text:  strings.TrimSpace(form.Text),
		Slug:  strings.TrimSpace(form.Slug),
	}

	switch {
	case cleaned.Title == "":
		errs.Add("title", MsgRequired)
	case utf8.RuneCountInString(cleaned.Title) > models.MaxNoteTitleLength:
		errs.Add("title", fmt.Sprintf("Ensure this value has at most %d characters.", models.MaxNoteTitleLength))
	}
	if cleaned.Text == "" {
		errs.Add("text", MsgRequired)
	}

	if cleaned.Slug != "" {
		if len(cleaned.Slug) > v.slugMaxLength {
			errs.Add("slug", fmt.Sprintf("Ensure this value has at most %d characters.", v.slugMaxLength))
		} else if !slugRegex.MatchString(cleaned.Slug) {
			errs.Add("slug", "Enter a valid slug consisting of letters, numbers, underscores or hyphens.")
		}
	} else if cleaned.Title != "" {
		cleaned.Slug = v.NoteSlug("", cleaned.Title)
		if cleaned.Slug == "" {
			errs.Add("slug", "Enter a slug: the title has no characters usable in a slug.")
		}
	}

	if len(errs.For("slug")) == 0 && cleaned.Slug != "" {
		taken, err := checker.SlugExists(ctx, cleaned.Slug, excludeID)
		if err != nil {
			return nil, fmt.Errorf("failed to check slug: %w", err)
		}
		if taken {
			errs.Add("slug", v.SlugTakenMessage(cleaned.Slug))
		}
	}

	if err := errs.errOrNil(); err != nil {
		return nil, err
	}
	return cleaned, nil
}

// SlugTakenMessage is the field message for a slug used by another note
func (v *Validator) SlugTakenMessage(slug string) string {
	return slug + v.slugWarning
}

// ValidateSignup checks a registration form
func (v *Validator) ValidateSignup(form *models.SignupForm) error {
	var errs FormError
	username := strings.TrimSpace(form.Username)

	switch {
	case username == "":
		errs.Add("username", MsgRequired)
	case utf8.RuneCountInString(username) > models.MaxUsernameLength:
		errs.Add("username", fmt.Sprintf("Ensure this value has at most %d characters.", models.MaxUsernameLength))
	}
	if form.Password1 == "" {
		errs.Add("password1", MsgRequired)
	}
	if form.Password2 == "" {
		errs.Add("password2", MsgRequired)
	} else if form.Password1 != form.Password2 {
		errs.Add("password2", "The two password fields didn't match.")
	}
	return errs.errOrNil()
}

// AddArticleID marks an article id as used for duplicate detection
func (v *Validator) AddArticleID(id string) {
	v.articleIDCache[id] = true
}

// ValidateArticle validates an article record of an NDJSON import
func (v *Validator) ValidateArticle(article *models.ArticleNDJSON, lineNum int) []ValidationError {
	var errors []ValidationError

	// Validate ID (optional, generated when empty)
	if article.ID != "" {
		if !isValidUUID(article.ID) {
			errors = append(errors, ValidationError{Field: "id", Message: "invalid UUID format", Value: article.ID})
		} else if v.articleIDCache[article.ID] {
			errors = append(errors, ValidationError{Field: "id", Message: "duplicate id", Value: article.ID})
		}
	}

	// Validate title
	if strings.TrimSpace(article.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	} else if utf8.RuneCountInString(strings.TrimSpace(article.Title)) > models.MaxArticleTitleLength {
		errors = append(errors, ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title exceeds maximum of %d characters", models.MaxArticleTitleLength),
		})
	}

	// Validate text
	if strings.TrimSpace(article.Text) == "" {
		errors = append(errors, ValidationError{Field: "text", Message: "text is required"})
	}

	// Validate date format if present
	if article.Date != "" {
		if _, err := ParseArticleDate(article.Date); err != nil {
			errors = append(errors, ValidationError{Field: "date", Message: "invalid date, use YYYY-MM-DD or RFC 3339", Value: article.Date})
		}
	}

	return errors
}

// ParseArticleDate accepts a calendar date or an RFC 3339 timestamp
func ParseArticleDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// isValidUUID checks if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
