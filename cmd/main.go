package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "go.uber.org/automaxprocs"

	httpctx "github.com/dtroode/lostfound-server/internal/api/http/context"
	"github.com/dtroode/lostfound-server/internal/api/http/router"
	httpServer "github.com/dtroode/lostfound-server/internal/api/http/server"
	"github.com/dtroode/lostfound-server/internal/config"
	"github.com/dtroode/lostfound-server/internal/logger"
	"github.com/dtroode/lostfound-server/internal/model"
	"github.com/dtroode/lostfound-server/internal/repository"
	"github.com/dtroode/lostfound-server/internal/repository/memory"
	"github.com/dtroode/lostfound-server/internal/server"
	"github.com/dtroode/lostfound-server/internal/service"
	storage "github.com/dtroode/lostfound-server/internal/storage/minio"
	"github.com/dtroode/lostfound-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	stores, err := repository.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer func() {
		if err := stores.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	photos, err := newPhotoStorage(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal("failed to initialize photo storage", "error", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	itemService := service.NewItem(stores.Items, photos, cfg.Storage.MaxPhotoBytes, logger)
	authService := service.NewAuth(stores.Users, tokenManager, cfg.Auth.BcryptCost, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := router.New(itemService, authService, stores, tokenManager, httpctx.NewManager(), router.Config{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimit:      cfg.RateLimit,
		MaxPhotoBytes:  cfg.Storage.MaxPhotoBytes,
		Registry:       registry,
	}, logger)
	engine, err := r.Register()
	if err != nil {
		logger.Fatal("failed to build router", "error", err)
	}

	srv := httpServer.NewHTTPServer(engine, cfg.HTTP.Address, cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)
	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "backend", stores.Backend)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// newPhotoStorage connects to MinIO when an endpoint is configured and keeps
// photos in memory otherwise.
func newPhotoStorage(ctx context.Context, cfg config.Storage, logger *logger.Logger) (model.PhotoStorage, error) {
	if cfg.Endpoint == "" {
		logger.Warn("MINIO_ENDPOINT is not set, photos are kept in memory")
		return memory.NewPhotoStorage(), nil
	}

	client, err := storage.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Photo storage: using minio", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)
	return client, nil
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
