package di

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/designstudio/internal/app"
	"github.com/polkiloo/designstudio/internal/config"
	"github.com/polkiloo/designstudio/internal/domain/repository"
	"github.com/polkiloo/designstudio/internal/server/http/handlers"
	"github.com/polkiloo/designstudio/internal/storage/postgres"
	"github.com/polkiloo/designstudio/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		JWTSecret:       "secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		ShutdownTimeout: time.Millisecond,
		LogLevel:        "info",
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := test.NewMemoryStore()

	var (
		facade *app.PortalFacade
		engine *gin.Engine
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(fx.Annotate(store.UsersRepo, fx.As(new(repository.UserRepository)))),
			fx.Replace(fx.Annotate(store.TariffsRepo, fx.As(new(repository.TariffRepository)))),
			fx.Replace(fx.Annotate(store.OrdersRepo, fx.As(new(repository.OrderRepository)))),
			fx.Replace(fx.Annotate(store, fx.As(new(repository.Transactor)))),
			fx.Replace(fx.Annotate(test.HealthCheckerStub{}, fx.As(new(handlers.HealthChecker)))),
		),
		fx.Populate(&facade, &engine),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil || engine == nil {
		t.Fatal("expected portal facade and router instances")
	}

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/tariffs/", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected catalog to be served through the graph, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected healthz 200, got %d", resp.Code)
	}
}
