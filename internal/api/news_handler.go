package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/newsnotes/internal/access"
	"github.com/newsnotes/internal/models"
	"github.com/newsnotes/internal/service"
)

// NewsHandler handles the news site pages
type NewsHandler struct {
	news  service.NewsService
	pages *responder
	log   zerolog.Logger
}

// NewNewsHandler creates a new NewsHandler
func NewNewsHandler(news service.NewsService, pages *responder, log zerolog.Logger) *NewsHandler {
	return &NewsHandler{
		news:  news,
		pages: pages,
		log:   log.With().Str("handler", "news").Logger(),
	}
}

func commentsAnchor(articleID string) string {
	return "/news/" + articleID + "/#comments"
}

// Index handles GET /
func (h *NewsHandler) Index(c *gin.Context) {
	articles, err := h.news.ListArticles(c.Request.Context())
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"object_list": articles})
}

// Detail handles GET /news/:id/
func (h *NewsHandler) Detail(c *gin.Context) {
	h.renderDetail(c, nil)
}

// renderDetail writes the article page. The comment form is only part of
// the page for logged-in users.
func (h *NewsHandler) renderDetail(c *gin.Context, form *formView) {
	detail, err := h.news.GetArticleDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	page := gin.H{
		"news":     detail.Article,
		"comments": detail.Comments,
	}
	if identity(c).Authenticated() {
		if form == nil {
			empty := newForm(models.CommentForm{})
			form = &empty
		}
		page["form"] = form
	}
	c.JSON(http.StatusOK, page)
}

// AddComment handles POST /news/:id/
func (h *NewsHandler) AddComment(c *gin.Context) {
	if !h.pages.requireLogin(c) {
		return
	}

	var form models.CommentForm
	if !h.pages.bind(c, &form) {
		return
	}

	comment, err := h.news.CreateComment(c.Request.Context(), identity(c), c.Param("id"), &form)
	if err != nil {
		h.pages.failForm(c, err, func(fields map[string][]string) {
			h.renderDetail(c, &formView{Data: form, Errors: fields})
		})
		return
	}
	c.Redirect(http.StatusFound, commentsAnchor(comment.ArticleID))
}

// EditCommentForm handles GET /edit_comment/:id/
func (h *NewsHandler) EditCommentForm(c *gin.Context) {
	comment, err := h.news.GetComment(c.Request.Context(), identity(c), c.Param("id"), access.Edit)
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"form":    newForm(models.CommentForm{Text: comment.Text}),
		"comment": comment,
	})
}

// EditComment handles POST /edit_comment/:id/
func (h *NewsHandler) EditComment(c *gin.Context) {
	if !h.pages.requireLogin(c) {
		return
	}

	ctx := c.Request.Context()
	id := identity(c)

	var form models.CommentForm
	if !h.pages.bind(c, &form) {
		return
	}

	comment, err := h.news.EditComment(ctx, id, c.Param("id"), &form)
	if err != nil {
		h.pages.failForm(c, err, func(fields map[string][]string) {
			current, err := h.news.GetComment(ctx, id, c.Param("id"), access.Edit)
			if err != nil {
				h.pages.fail(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"form":    formView{Data: form, Errors: fields},
				"comment": current,
			})
		})
		return
	}
	c.Redirect(http.StatusFound, commentsAnchor(comment.ArticleID))
}

// DeleteCommentConfirm handles GET /delete_comment/:id/
func (h *NewsHandler) DeleteCommentConfirm(c *gin.Context) {
	comment, err := h.news.GetComment(c.Request.Context(), identity(c), c.Param("id"), access.Delete)
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// DeleteComment handles POST and DELETE /delete_comment/:id/
func (h *NewsHandler) DeleteComment(c *gin.Context) {
	comment, err := h.news.DeleteComment(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, commentsAnchor(comment.ArticleID))
}
