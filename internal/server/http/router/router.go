package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/designstudio/internal/config"
	"github.com/polkiloo/designstudio/internal/metrics"
	"github.com/polkiloo/designstudio/internal/server/http/handlers"
	"github.com/polkiloo/designstudio/internal/server/http/middleware"
)

// Params lists router dependencies.
type Params struct {
	fx.In

	Facade   handlers.PortalFacade
	Resolver middleware.SubjectResolver
	Health   handlers.HealthChecker
	Metrics  *metrics.Metrics
	Config   *config.Config
	Logger   *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.Metrics(p.Metrics))
	engine.Use(middleware.DecompressRequest(middleware.DefaultMaxInflatedBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	paging := handlers.Pagination{DefaultSize: p.Config.DefaultPageSize, MaxSize: p.Config.MaxPageSize}
	authHandler := handlers.NewAuthHandler(p.Facade)
	userHandler := handlers.NewUserHandler(p.Facade)
	tariffHandler := handlers.NewTariffHandler(p.Facade, paging)
	orderHandler := handlers.NewOrderHandler(p.Facade, paging)
	healthHandler := handlers.NewHealthHandler(p.Health)

	engine.GET("/healthz", healthHandler.Check)
	engine.GET("/metrics", gin.WrapH(p.Metrics.Handler()))

	authRequired := middleware.AuthRequired(p.Resolver)
	staffOnly := []gin.HandlerFunc{authRequired, middleware.StaffRequired()}

	api := engine.Group("/api/v1")

	users := api.Group("/users")
	users.POST("/register/", authHandler.Register)
	users.POST("/token/", authHandler.Token)
	users.POST("/token/refresh/", authHandler.Refresh)

	me := users.Group("/me", authRequired)
	me.GET("/", userHandler.Me)
	me.PUT("/update/", userHandler.Update)
	me.PATCH("/update/", userHandler.Update)
	me.DELETE("/delete/", userHandler.Delete)

	tariffs := api.Group("/tariffs")
	tariffs.GET("/", tariffHandler.List)
	tariffs.GET("/:id/", tariffHandler.Get)
	tariffs.POST("/", append(staffOnly, tariffHandler.Create)...)
	tariffs.PATCH("/:id/", append(staffOnly, tariffHandler.Update)...)
	tariffs.DELETE("/:id/", append(staffOnly, tariffHandler.Delete)...)

	orders := api.Group("/orders", authRequired)
	orders.GET("/", orderHandler.List)
	orders.POST("/", orderHandler.Create)
	orders.GET("/:id/", orderHandler.Get)
	orders.PUT("/:id/update/", orderHandler.Update)
	orders.PATCH("/:id/update/", orderHandler.Update)
	orders.DELETE("/:id/delete/", orderHandler.Delete)

	admin := api.Group("/admin", staffOnly...)
	admin.GET("/orders/:id/", orderHandler.AdminGet)
	admin.POST("/orders/:id/restore/", orderHandler.Restore)
	admin.POST("/users/:id/restore/", userHandler.Restore)

	return engine
}
