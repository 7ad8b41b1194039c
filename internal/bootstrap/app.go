package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/llm"
	"resume-tailor/internal/llm/anthropic"
	"resume-tailor/internal/llm/gemini"
	"resume-tailor/internal/resume/render"
	"resume-tailor/internal/scrape"
	"resume-tailor/internal/shared/config"
	"resume-tailor/internal/shared/server"
	"resume-tailor/internal/shared/storage/db"
	"resume-tailor/internal/shared/telemetry"
	"resume-tailor/internal/tailoring"
	"resume-tailor/internal/tracker"
)

// App holds shared dependencies and the HTTP router built from them.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Gateway          *llm.Gateway
	TrackerRepo      tracker.Repo
	TrackerService   *tracker.Service
	ScrapeService    *scrape.Service
	TailoringService *tailoring.Service
	TailoringHandler *tailoring.Handler
	TrackerHandler   *tracker.Handler

	closers []func() error
}

// Build prepares every dependency and wires the routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	app := &App{Config: cfg}

	repo, err := app.buildTrackerRepo(ctx)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.TrackerRepo = repo
	app.TrackerService = tracker.NewService(repo)

	app.Gateway = NewGateway(cfg)

	var direct *scrape.DirectScraper
	if cfg.DirectScrapeEnabled {
		direct = scrape.NewDirectScraper(cfg.ScrapeTimeout)
	}
	app.ScrapeService = scrape.NewService(scrape.NewApifyScraper(cfg.ApifyBaseURL, cfg.ScrapeTimeout), direct)

	app.TailoringService = &tailoring.Service{
		LLM:      app.Gateway,
		Tracker:  app.TrackerService,
		Renderer: render.New(),
	}
	app.TailoringHandler = tailoring.NewHandler(app.TailoringService, app.ScrapeService, cfg.MaxUploadBytes)
	app.TrackerHandler = tracker.NewHandler(app.TrackerService)

	app.Router = server.NewRouter(cfg, app.TailoringHandler, app.TrackerHandler)
	return app, nil
}

// NewGateway registers both provider backends using the configured models and limits.
func NewGateway(cfg config.Config) *llm.Gateway {
	return llm.NewGateway(cfg.LLMTimeout, map[llm.Provider]llm.Factory{
		llm.ProviderAnthropic: anthropic.Factory(anthropic.Options{
			Model:     cfg.AnthropicModel,
			MaxTokens: cfg.LLMMaxTokens,
		}),
		llm.ProviderGemini: gemini.Factory(gemini.Options{
			Model:     cfg.GeminiModel,
			MaxTokens: cfg.LLMMaxTokens,
		}),
	})
}

// Close releases database and cache connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) buildTrackerRepo(ctx context.Context) (tracker.Repo, error) {
	cfg := a.Config
	switch cfg.TrackerStore {
	case "postgres":
		sqlDB, err := buildDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if sqlDB == nil {
			return tracker.NewMemoryRepo(), nil
		}
		a.DB = sqlDB
		a.closers = append(a.closers, sqlDB.Close)
		return &tracker.PGRepo{DB: sqlDB}, nil
	case "redis":
		repo, err := tracker.NewRedisRepo(ctx, cfg.RedisURL)
		if err != nil {
			if config.IsDevLike(cfg.Env) {
				telemetry.Warn("bootstrap.redis_unavailable", map[string]any{"fallback": "memory", "error": err.Error()})
				return tracker.NewMemoryRepo(), nil
			}
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, repo.Close)
		return repo, nil
	default:
		return tracker.NewMemoryRepo(), nil
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_url_empty", map[string]any{"fallback": "memory"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			err = fmt.Errorf("run migrations: %w", err)
		}
	}
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_unavailable", map[string]any{"fallback": "memory", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}
