// Package server boots the store's subsystems and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/shashiranjanraj/kashvi-store/app/controllers"
	"github.com/shashiranjanraj/kashvi-store/app/repositories"
	"github.com/shashiranjanraj/kashvi-store/app/routes"
	"github.com/shashiranjanraj/kashvi-store/app/services"
	"github.com/shashiranjanraj/kashvi-store/config"
	_ "github.com/shashiranjanraj/kashvi-store/database/migrations" // registry side effects
	"github.com/shashiranjanraj/kashvi-store/pkg/cache"
	"github.com/shashiranjanraj/kashvi-store/pkg/database"
	"github.com/shashiranjanraj/kashvi-store/pkg/logger"
	"github.com/shashiranjanraj/kashvi-store/pkg/metrics"
	"github.com/shashiranjanraj/kashvi-store/pkg/middleware"
	"github.com/shashiranjanraj/kashvi-store/pkg/migration"
	"github.com/shashiranjanraj/kashvi-store/pkg/reqid"
	"github.com/shashiranjanraj/kashvi-store/pkg/router"
	"github.com/shashiranjanraj/kashvi-store/pkg/storage"
)

// Server is the fully assembled HTTP server plus the resources it must
// release on shutdown.
type Server struct {
	httpServer *http.Server
	mongoSink  *logger.MongoHandler
}

// New boots configuration, logging, the database (running any pending
// migrations), the cache and storage, then assembles the router.
//
// Redis being down is not fatal: the cache layer degrades to a no-op.
func New() (*Server, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	sink := logger.EnableMongoSink()

	if err := database.Connect(); err != nil {
		return nil, err
	}
	if err := migration.New(database.DB).Run(); err != nil {
		return nil, err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("server: cache unavailable, continuing without it", "error", err)
	}

	storage.Connect()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           NewRouter().Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{httpServer: srv, mongoSink: sink}, nil
}

// NewRouter assembles the middleware chain, controllers and route table.
// Requires database.Connect and storage.Connect to have run.
func NewRouter() *router.Router {
	disk := storage.Default()

	catalog := services.NewCatalogService(
		repositories.NewProductRepository(database.DB),
		disk,
		config.UploadsRoot(),
		config.UploadsPrefix(),
	)
	orders := services.NewOrderService(repositories.NewOrderRepository(database.DB))

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(rateLimitMax(), time.Minute),
	)

	// Uploaded images are only served as static files off the local disk;
	// on S3 the image column already holds an absolute URL.
	var uploadsFS http.FileSystem
	if local, ok := disk.(interface{ Root() string }); ok {
		uploadsFS = http.Dir(filepath.Join(local.Root(), config.UploadsRoot()))
	}

	routes.Register(r, routes.API{
		Products:      controllers.NewProductController(catalog),
		Orders:        controllers.NewOrderController(orders),
		UploadsPrefix: config.UploadsPrefix(),
		UploadsRoot:   uploadsFS,
	})

	return r
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	logger.Info("server: listening", "addr", s.httpServer.Addr, "env", config.AppEnv())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if s.mongoSink != nil {
		s.mongoSink.Close()
	}

	logger.Info("server: stopped")
	return nil
}

func rateLimitMax() int {
	n, err := strconv.Atoi(config.Get("RATE_LIMIT_PER_MINUTE", "300"))
	if err != nil || n <= 0 {
		return 300
	}
	return n
}
