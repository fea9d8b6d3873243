package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/newsnotes/internal/access"
	"github.com/newsnotes/internal/config"
	"github.com/newsnotes/internal/metrics"
	"github.com/newsnotes/internal/service"
	"github.com/newsnotes/internal/session"
)

const identityKey = "identity"

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates the router of the site selected by cfg.App. The returned
// handler loads and saves the session around every request. db may be nil.
func NewRouter(services *service.Services, sessions *session.Manager, db HealthChecker, cfg *config.Config, log zerolog.Logger) http.Handler {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(cfg.App, log))
	router.Use(identityMiddleware(services.Users, sessions, log))

	pages := newResponder(cfg.Content.LoginURL, log)

	// Operational endpoints
	router.GET("/health", healthCheck(cfg.App, db))
	router.GET("/stats", statsHandler(services, log))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := NewAuthHandler(services.Users, sessions, pages, log)
	auth := router.Group("/auth")
	{
		auth.GET("/login/", authHandler.LoginForm)
		auth.POST("/login/", authHandler.Login)
		auth.GET("/logout/", authHandler.Logout)
		auth.POST("/logout/", authHandler.Logout)
		auth.GET("/signup/", authHandler.SignupForm)
		auth.POST("/signup/", authHandler.Signup)
	}

	switch cfg.App {
	case config.AppNotes:
		registerNotesRoutes(router, NewNotesHandler(services.Notes, pages, log))
	default:
		registerNewsRoutes(router, NewNewsHandler(services.News, pages, log))
		router.GET("/export/articles", NewExportHandler(services, log).StreamArticles)
	}

	return sessions.LoadAndSave(router)
}

func registerNewsRoutes(router *gin.Engine, h *NewsHandler) {
	router.GET("/", h.Index)
	router.GET("/news/:id/", h.Detail)
	router.POST("/news/:id/", h.AddComment)
	router.GET("/edit_comment/:id/", h.EditCommentForm)
	router.POST("/edit_comment/:id/", h.EditComment)
	router.GET("/delete_comment/:id/", h.DeleteCommentConfirm)
	router.POST("/delete_comment/:id/", h.DeleteComment)
	router.DELETE("/delete_comment/:id/", h.DeleteComment)
}

func registerNotesRoutes(router *gin.Engine, h *NotesHandler) {
	router.GET("/", h.Home)
	router.GET("/notes/", h.List)
	router.GET("/done/", h.Done)
	router.GET("/add/", h.AddForm)
	router.POST("/add/", h.Add)
	router.GET("/note/:slug/", h.Detail)
	router.GET("/edit/:slug/", h.EditForm)
	router.POST("/edit/:slug/", h.Edit)
	router.GET("/delete/:slug/", h.DeleteConfirm)
	router.POST("/delete/:slug/", h.Delete)
}

// healthCheck returns the health status
func healthCheck(app string, db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if db != nil {
			if err := db.HealthCheck(c.Request.Context()); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   app,
		})
	}
}

// statsHandler returns entity counts
func statsHandler(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		counts := gin.H{}
		for _, resource := range []string{"users", "articles", "comments", "notes"} {
			n, err := services.Export.GetCount(ctx, resource)
			if err != nil {
				log.Error().Err(err).Str("resource", resource).Msg("Failed to count")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				return
			}
			counts[resource] = n
		}

		c.JSON(http.StatusOK, gin.H{
			"database":  counts,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests and records them in the request metrics
func loggingMiddleware(app string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()
		metrics.RecordRequest(app, c.Request.Method, c.FullPath(), statusCode, duration)

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// identityMiddleware resolves the session user once per request
func identityMiddleware(users service.UserService, sessions *session.Manager, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id, err := users.Identify(ctx, sessions.UserID(ctx))
		if err != nil {
			log.Error().Err(err).Msg("Failed to resolve session user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// identity returns the requester resolved by identityMiddleware
func identity(c *gin.Context) access.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(access.Identity); ok {
			return id
		}
	}
	return access.Anonymous
}
