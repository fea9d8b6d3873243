package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/newsnotes/internal/access"
	"github.com/newsnotes/internal/models"
	"github.com/newsnotes/internal/service"
)

const donePath = "/done/"

// NotesHandler handles the notes site pages. Everything except the home
// page needs a logged-in user.
type NotesHandler struct {
	notes service.NotesService
	pages *responder
	log   zerolog.Logger
}

// NewNotesHandler creates a new NotesHandler
func NewNotesHandler(notes service.NotesService, pages *responder, log zerolog.Logger) *NotesHandler {
	return &NotesHandler{
		notes: notes,
		pages: pages,
		log:   log.With().Str("handler", "notes").Logger(),
	}
}

// Home handles GET /
func (h *NotesHandler) Home(c *gin.Context) {
	id := identity(c)
	c.JSON(http.StatusOK, gin.H{
		"authenticated": id.Authenticated(),
		"username":      id.Username,
	})
}

// List handles GET /notes/
func (h *NotesHandler) List(c *gin.Context) {
	notes, err := h.notes.ListNotes(c.Request.Context(), identity(c))
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"object_list": notes})
}

// Done handles GET /done/
func (h *NotesHandler) Done(c *gin.Context) {
	if !h.pages.requireLogin(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"done": true})
}

// AddForm handles GET /add/
func (h *NotesHandler) AddForm(c *gin.Context) {
	if !h.pages.requireLogin(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": newForm(models.NoteForm{})})
}

// Add handles POST /add/
func (h *NotesHandler) Add(c *gin.Context) {
	if !h.pages.requireLogin(c) {
		return
	}

	var form models.NoteForm
	if !h.pages.bind(c, &form) {
		return
	}

	if _, err := h.notes.CreateNote(c.Request.Context(), identity(c), &form); err != nil {
		h.pages.failForm(c, err, func(fields map[string][]string) {
			c.JSON(http.StatusOK, gin.H{"form": formView{Data: form, Errors: fields}})
		})
		return
	}
	c.Redirect(http.StatusFound, donePath)
}

// Detail handles GET /note/:slug/
func (h *NotesHandler) Detail(c *gin.Context) {
	note, err := h.notes.GetNote(c.Request.Context(), identity(c), c.Param("slug"), access.View)
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": note})
}

// EditForm handles GET /edit/:slug/
func (h *NotesHandler) EditForm(c *gin.Context) {
	note, err := h.notes.GetNote(c.Request.Context(), identity(c), c.Param("slug"), access.Edit)
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"form": newForm(models.NoteForm{Title: note.Title, Text: note.Text, Slug: note.Slug}),
	})
}

// Edit handles POST /edit/:slug/
func (h *NotesHandler) Edit(c *gin.Context) {
	if !h.pages.requireLogin(c) {
		return
	}

	var form models.NoteForm
	if !h.pages.bind(c, &form) {
		return
	}

	if _, err := h.notes.EditNote(c.Request.Context(), identity(c), c.Param("slug"), &form); err != nil {
		h.pages.failForm(c, err, func(fields map[string][]string) {
			c.JSON(http.StatusOK, gin.H{"form": formView{Data: form, Errors: fields}})
		})
		return
	}
	c.Redirect(http.StatusFound, donePath)
}

// DeleteConfirm handles GET /delete/:slug/
func (h *NotesHandler) DeleteConfirm(c *gin.Context) {
	note, err := h.notes.GetNote(c.Request.Context(), identity(c), c.Param("slug"), access.Delete)
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": note})
}

// Delete handles POST /delete/:slug/
func (h *NotesHandler) Delete(c *gin.Context) {
	if err := h.notes.DeleteNote(c.Request.Context(), identity(c), c.Param("slug")); err != nil {
		h.pages.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, donePath)
}
