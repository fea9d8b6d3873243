package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/newsnotes/internal/models"
	"github.com/newsnotes/internal/service"
	"github.com/newsnotes/internal/session"
	"github.com/newsnotes/internal/validation"
)

// MsgInvalidLogin is the login form error for bad credentials
const MsgInvalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

// nonFieldErrors is the form error key for messages not tied to one field
const nonFieldErrors = "__all__"

// AuthHandler handles login, logout and signup for both sites
type AuthHandler struct {
	users    service.UserService
	sessions *session.Manager
	pages    *responder
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users service.UserService, sessions *session.Manager, pages *responder, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		pages:    pages,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// LoginForm handles GET /auth/login/
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form": newForm(models.LoginForm{}),
		"next": c.Query("next"),
	})
}

// Login handles POST /auth/login/
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var form models.LoginForm
	if !h.pages.bind(c, &form) {
		return
	}
	next := c.DefaultPostForm("next", c.Query("next"))

	fields := map[string][]string{}
	if form.Username == "" {
		fields["username"] = []string{validation.MsgRequired}
	}
	if form.Password == "" {
		fields["password"] = []string{validation.MsgRequired}
	}
	if len(fields) > 0 {
		h.renderLogin(c, form, next, fields)
		return
	}

	user, err := h.users.Authenticate(ctx, form.Username, form.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.log.Info().Str("username", form.Username).Msg("Login failed")
		h.renderLogin(c, form, next, map[string][]string{nonFieldErrors: {MsgInvalidLogin}})
		return
	}
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	if err := h.sessions.Login(ctx, user.ID); err != nil {
		h.pages.fail(c, err)
		return
	}
	h.log.Info().Str("user_id", user.ID).Msg("User logged in")

	c.Redirect(http.StatusFound, safeNext(next, "/"))
}

func (h *AuthHandler) renderLogin(c *gin.Context, form models.LoginForm, next string, fields map[string][]string) {
	c.JSON(http.StatusOK, gin.H{
		"form": formView{Data: form, Errors: fields},
		"next": next,
	})
}

// Logout handles GET and POST /auth/logout/
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context()); err != nil {
		h.pages.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_out": true})
}

// SignupForm handles GET /auth/signup/
func (h *AuthHandler) SignupForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": newForm(models.SignupForm{})})
}

// Signup handles POST /auth/signup/
func (h *AuthHandler) Signup(c *gin.Context) {
	var form models.SignupForm
	if !h.pages.bind(c, &form) {
		return
	}

	if _, err := h.users.SignUp(c.Request.Context(), &form); err != nil {
		h.pages.failForm(c, err, func(fields map[string][]string) {
			c.JSON(http.StatusOK, gin.H{"form": formView{Data: form, Errors: fields}})
		})
		return
	}

	c.Redirect(http.StatusFound, h.pages.loginURL)
}
