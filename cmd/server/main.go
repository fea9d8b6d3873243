package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/newsnotes/internal/api"
	"github.com/newsnotes/internal/config"
	"github.com/newsnotes/internal/database"
	"github.com/newsnotes/internal/repository"
	"github.com/newsnotes/internal/service"
	"github.com/newsnotes/internal/session"
	"github.com/newsnotes/pkg/logger"
)

func main() {
	app := flag.String("app", "", "site to serve: news or notes (overrides APP)")
	importFile := flag.String("import", "", "import articles from an NDJSON file and exit")
	rollback := flag.Bool("rollback", false, "roll back the last migration and exit")
	flag.Parse()

	// Initialize logger
	log := logger.New("newsnotes")

	// Load configuration
	if *app != "" {
		os.Setenv("APP", *app)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		log = log.Level(level)
	}
	log = log.With().Str("app", cfg.App).Logger()
	log.Info().Msg("Starting server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if *rollback {
		if err := db.MigrateDown(migrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to roll back migrations")
		}
		return
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services := service.NewServices(repos, cfg, log)

	if *importFile != "" {
		result, err := services.Import.ImportFile(context.Background(), *importFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", *importFile).Msg("Import failed")
		}
		for _, e := range result.Errors {
			log.Warn().Int("line", e.Line).Str("field", e.Field).Msg(e.Message)
		}
		return
	}

	// Initialize sessions and router
	sessions := session.NewManager(cfg.Session, session.NewStore(db.DB))
	router := api.NewRouter(services, sessions, db, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
