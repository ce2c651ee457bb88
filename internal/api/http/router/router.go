package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/lostfound-server/internal/api/http/handler"
	"github.com/dtroode/lostfound-server/internal/api/http/middleware"
	"github.com/dtroode/lostfound-server/internal/config"
	"github.com/dtroode/lostfound-server/internal/logger"
	"github.com/dtroode/lostfound-server/internal/model"
)

// Router wires handlers and middleware into a gin engine.
type Router struct {
	itemService    handler.ItemService
	authService    handler.AuthService
	pinger         model.Pinger
	tokenManager   model.TokenManager
	contextManager model.ContextManager
	cfg            Config
	logger         *logger.Logger
}

// Config holds the transport settings the router needs.
type Config struct {
	AllowedOrigins []string
	RateLimit      config.RateLimit
	MaxPhotoBytes  int64
	Registry       *prometheus.Registry
}

// New creates a new Router instance.
func New(
	itemService handler.ItemService,
	authService handler.AuthService,
	pinger model.Pinger,
	tokenManager model.TokenManager,
	contextManager model.ContextManager,
	cfg Config,
	logger *logger.Logger,
) *Router {
	return &Router{
		itemService:    itemService,
		authService:    authService,
		pinger:         pinger,
		tokenManager:   tokenManager,
		contextManager: contextManager,
		cfg:            cfg,
		logger:         logger,
	}
}

// Register builds the engine with every route and middleware installed.
func (r *Router) Register() (*gin.Engine, error) {
	reg := r.cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.NewLogging(r.logger).Handle(),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			r.logger.Error("Router: recovered from panic",
				"path", c.Request.URL.Path,
				"panic", recovered)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}),
		metrics.Handle(),
		cors.New(r.corsConfig()),
		middleware.RateLimit(r.cfg.RateLimit.RPS, r.cfg.RateLimit.Burst),
	)

	health := handler.NewHealth(r.pinger, r.logger)
	engine.GET("/health", health.Check)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	identify := middleware.NewIdentify(r.tokenManager, r.contextManager, r.logger)
	api := engine.Group("/api", identify.Handle())

	items := handler.NewItem(r.itemService, r.contextManager, r.cfg.MaxPhotoBytes, r.logger)
	api.POST("/items/lost", items.CreateLost)
	api.POST("/items/found", items.CreateFound)
	api.GET("/items", items.List)
	api.GET("/items/search", items.Search)
	api.GET("/items/:id", items.Get)
	api.DELETE("/items/:id", items.Delete)
	api.PUT("/items/:id/photo", items.UploadPhoto)
	api.GET("/items/:id/photo", items.GetPhoto)

	auth := handler.NewAuth(r.authService, r.logger)
	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)

	return engine, nil
}

func (r *Router) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Content-Type", "Authorization", middleware.HeaderUserID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
	}

	origins := r.cfg.AllowedOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// Credentials cannot be combined with a literal wildcard origin.
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowCredentials = true

	return cfg
}
