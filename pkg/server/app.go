package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"RevCycle/internal/usecase"
	pkgch "RevCycle/pkg/clickhouse"
	"RevCycle/pkg/config"
	xhttp "RevCycle/pkg/http"
	applogger "RevCycle/pkg/logger"
)

// App encapsulates the application lifecycle.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	handler    xhttp.Handler
	scheduler  *usecase.CycleScheduler
	collector  *usecase.NewsCollector
	chClient   *pkgch.Client
	proc       *usecase.CycleProcessor
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	scheduler *usecase.CycleScheduler,
	collector *usecase.NewsCollector,
	chClient *pkgch.Client,
	proc *usecase.CycleProcessor,
) *App {
	return &App{
		cfg:       cfg,
		l:         l,
		handler:   handler,
		scheduler: scheduler,
		collector: collector,
		chClient:  chClient,
		proc:      proc,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.scheduler != nil {
		a.scheduler.Start(ctx)
	}

	if a.collector != nil {
		if err := a.collector.Start(ctx); err != nil {
			a.l.Error("news collector start error", applogger.Error(err))
		} else {
			a.l.Info("news collector started", applogger.Strings("markets", a.cfg.NewsFeed.Markets))
		}
	}

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	if a.collector != nil {
		if err := a.collector.Stop(); err != nil {
			a.l.Warn("news collector stop error", applogger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	if a.proc != nil {
		a.proc.Close()
	}

	a.l.Info("shutdown complete")
	return nil
}
