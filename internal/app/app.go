// Package app assembles the shared runtime of a storefront service: the chi
// router with its middleware chain, the http server lifecycle, and any
// background workers started alongside it.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ilmi2809/tubeseai/internal/config"
	transporthttp "github.com/ilmi2809/tubeseai/internal/transport/http"
)

const gracefulShutdownTimeout = 5 * time.Second

// Worker is a background component started with the application and stopped
// on shutdown.
type Worker interface {
	Start(ctx context.Context)
	Stop(ctx context.Context)
}

type Application struct {
	logger *zap.Logger

	router  chi.Router
	httpSrv *http.Server
	workers []Worker
}

func New(logger *zap.Logger, cfg config.Config, reg *prometheus.Registry) *Application {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Cors.AllowedOrigins,
	}))
	router.Use(transporthttp.Observability(logger))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	httpSrv := &http.Server{
		Handler: router,
		Addr:    net.JoinHostPort(cfg.Http.Host, cfg.Http.Port),
	}

	return &Application{
		logger:  logger,
		router:  router,
		httpSrv: httpSrv,
	}
}

// SetRPCHandler mounts the service's operation endpoint.
func (a *Application) SetRPCHandler(h http.Handler) {
	a.router.Method(http.MethodPost, "/rpc", h)
}

func (a *Application) SetWorkers(workers ...Worker) {
	a.workers = workers
}

func (a *Application) Start(ctx context.Context) {
	for _, w := range a.workers {
		w.Start(ctx)
	}

	go a.startServer()

	a.logger.Info("application_started")
}

func (a *Application) startServer() {
	a.logger.Info("http_server_starting", zap.String("addr", a.httpSrv.Addr))
	if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.logger.Fatal("http_server_failed", zap.Error(err))
	}
}

func (a *Application) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	if err := a.httpSrv.Shutdown(ctx); err != nil {
		a.logger.Error("http_server_shutdown_failed", zap.Error(err))
	}

	for _, w := range a.workers {
		w.Stop(ctx)
	}

	a.logger.Info("application_stopped")
}
