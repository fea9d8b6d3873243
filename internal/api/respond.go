package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/newsnotes/internal/access"
	"github.com/newsnotes/internal/validation"
)

// formView is a form as shown to the client: the submitted or initial
// values and the messages per field
type formView struct {
	Data   any                 `json:"data"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func newForm(data any) formView {
	return formView{Data: data}
}

// responder maps service errors onto HTTP responses the same way for every handler
type responder struct {
	loginURL string
	log      zerolog.Logger
}

func newResponder(loginURL string, log zerolog.Logger) *responder {
	return &responder{loginURL: loginURL, log: log}
}

// fail writes the response for err. Form errors are handled by the caller,
// which knows how to re-render its page.
func (r *responder) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, access.ErrUnauthenticated):
		r.redirectToLogin(c)
	case errors.Is(err, access.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		r.log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// failForm re-renders a page with the field errors of err when it is a form
// error and falls back to fail otherwise. render receives the form errors.
func (r *responder) failForm(c *gin.Context, err error, render func(fields map[string][]string)) {
	var formErr *validation.FormError
	if errors.As(err, &formErr) {
		render(formErr.Fields)
		return
	}
	r.fail(c, err)
}

// redirectToLogin sends the client to the login page with the current
// request URI as next, query-escaped except for slashes
func (r *responder) redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, loginRedirectURL(r.loginURL, c.Request.URL.RequestURI()))
}

func loginRedirectURL(loginURL, next string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
	return loginURL + "?next=" + escaped
}

// requireLogin writes the login redirect and returns false for anonymous requests
func (r *responder) requireLogin(c *gin.Context) bool {
	if err := access.RequireLogin(identity(c)); err != nil {
		r.fail(c, err)
		return false
	}
	return true
}

// bind decodes the submitted form into obj and answers 400 when the body
// cannot be decoded
func (r *responder) bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		r.log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Malformed form")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return false
	}
	return true
}

// safeNext returns next when it is a local path and fallback otherwise
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
