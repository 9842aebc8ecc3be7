package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"glosaguard/internal/config"
	"glosaguard/internal/handler"
	"glosaguard/internal/repository/postgres"
	"glosaguard/internal/router"
	"glosaguard/internal/service"
	"glosaguard/internal/validator"
	"glosaguard/internal/validator/tiss"
)

// @title GlosaGuard API
// @version 1.0
// @description TISS billing guide validation and denial risk scoring.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	switch {
	case cfg.Log.Level == "debug":
		gin.SetMode(gin.DebugMode)
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	case cfg.Server.Environment == "production":
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	subRepo := postgres.NewSubmissionRepo(db)
	guideRepo := postgres.NewGuideRepo(db)
	findingRepo := postgres.NewFindingRepo(db)

	// Initialize validation
	parser := tiss.NewParser(tiss.Options{HighValueThreshold: cfg.Validation.HighValueThreshold})
	registry := validator.NewBuiltinRegistry(parser.Rules())
	engine := validator.NewEngine(parser, registry, cfg.Risk.Policy(), subRepo, guideRepo, findingRepo, postgres.NewTransactor(db))
	log.Printf("validator: %d rules registered, high value threshold %d", len(registry.All()), cfg.Validation.HighValueThreshold)

	// Initialize services
	var validationSvc service.ValidationService = engine
	submissionSvc := service.NewSubmissionService(subRepo)

	// Initialize handlers
	submissionH := handler.NewSubmissionHandler(submissionSvc)
	validationH := handler.NewValidationHandler(validationSvc, cfg.Validation.MaxXMLBytes)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, submissionH, validationH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
