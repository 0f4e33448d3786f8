package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/lib/pq"

	"FeedbackInsights/internal/config"
	"FeedbackInsights/internal/domain"
	"FeedbackInsights/internal/infrastructure/httpapi"
	"FeedbackInsights/internal/infrastructure/llm"
	"FeedbackInsights/internal/infrastructure/scheduler"
	"FeedbackInsights/internal/infrastructure/storage"
	"FeedbackInsights/internal/logging"
	"FeedbackInsights/internal/ports"
	"FeedbackInsights/internal/synthesis"
	"FeedbackInsights/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *sql.DB
	server    *http.Server
	scheduler *usecase.Scheduler
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	feedbackStore := storage.NewPostgresFeedbackStore(db)
	reportStore := storage.NewPostgresReportStore(db)
	businesses := storage.NewPostgresBusinessDirectory(db)

	// The summarizer client is constructed once here and injected; with no
	// API key configured the synthesizer runs in local mode.
	var summarizer ports.Summarizer
	if cfg.AI.Enabled() {
		summarizer = llm.NewOpenAIClient(cfg.AI)
	}
	synthesizer := synthesis.New(summarizer, baseLogger.With("component", "synthesis"), synthesis.Options{
		MaxTokens: cfg.AI.MaxTokens,
		Timeout:   cfg.AI.Timeout(),
		Source:    cfg.AI.Model,
		Required:  cfg.AI.Required,
	})

	reports := usecase.NewReportService(usecase.ReportServiceDeps{
		Feedback:    feedbackStore,
		Reports:     reportStore,
		Businesses:  businesses,
		Synthesizer: synthesizer,
		Logger:      baseLogger.With("component", "reports"),
	})

	app := &Application{cfg: cfg, logger: baseLogger, db: db}

	if cfg.Batch.Enabled {
		batch := usecase.NewBatch(reports, businesses,
			domain.Timeframe(cfg.Batch.Timeframe),
			baseLogger.With("component", "batch"))
		driver := scheduler.NewIntervalScheduler(cfg.Batch.IntervalDuration(), cfg.Batch.RunAtStart)
		app.scheduler = usecase.NewScheduler(driver, batch)
	}

	api := httpapi.NewServer(reports, baseLogger.With("component", "http"))
	app.server = &http.Server{Addr: cfg.Server.Addr, Handler: api.Handler()}

	return app, nil
}

// Run starts the scheduler and serves the trigger API until the context is
// canceled or the listener fails.
func (a *Application) Run(ctx context.Context) error {
	if a.scheduler != nil {
		if err := a.scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", a.server.Addr)
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return a.Shutdown(context.Background())
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}
}

// Shutdown tears down the scheduler, server and database handle.
func (a *Application) Shutdown(ctx context.Context) error {
	if a.scheduler != nil {
		_ = a.scheduler.Stop(ctx)
	}
	if a.server != nil {
		_ = a.server.Shutdown(ctx)
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
