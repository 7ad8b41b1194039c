package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/shared/config"
	"resume-tailor/internal/tracker"
)

func TestBuildWithMemoryTracker(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := Build(context.Background(), config.Config{
		Env:            "dev",
		TrackerStore:   "memory",
		LLMTimeout:     time.Second,
		ScrapeTimeout:  time.Second,
		MaxUploadBytes: 1 << 20,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	if _, ok := app.TrackerRepo.(*tracker.MemoryRepo); !ok {
		t.Fatalf("expected memory tracker, got %T", app.TrackerRepo)
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/tracker", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 from tracker list, got %d", resp.Code)
	}
}

func TestBuildPostgresWithoutURLFallsBackInDev(t *testing.T) {
	app, err := Build(context.Background(), config.Config{Env: "dev", TrackerStore: "postgres"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := app.TrackerRepo.(*tracker.MemoryRepo); !ok {
		t.Fatalf("expected memory fallback, got %T", app.TrackerRepo)
	}
}

func TestBuildPostgresWithoutURLFailsInProd(t *testing.T) {
	if _, err := Build(context.Background(), config.Config{Env: "production", TrackerStore: "postgres"}); err == nil {
		t.Fatalf("expected error without DATABASE_URL in prod")
	}
}

func TestLoadAndBuildProductionRequiresDatabaseURL(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("TRACKER_STORE", "postgres")
	t.Setenv("DATABASE_URL", "")

	cfg := config.Load()
	if cfg.TrackerStore != "postgres" {
		t.Fatalf("TrackerStore = %q, want postgres", cfg.TrackerStore)
	}
	if app, err := Build(context.Background(), cfg); err == nil {
		_ = app.Close()
		t.Fatalf("expected startup to fail without DATABASE_URL in production")
	}
}
