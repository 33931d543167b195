// Package main wires the grant proposal crawler service.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Zaniyar/grantmaster/config"
	"github.com/Zaniyar/grantmaster/internal/github"
	"github.com/Zaniyar/grantmaster/internal/repository"
	"github.com/Zaniyar/grantmaster/internal/transport/http/middleware"
	"github.com/Zaniyar/grantmaster/internal/transport/http/server/handlers-fiber"
	"github.com/Zaniyar/grantmaster/internal/usecase"
	"github.com/Zaniyar/grantmaster/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	repo, err := repository.New(ctx, cfg.Storage.Backend, log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "backend", cfg.Storage.Backend, "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	source, err := github.New(log, cfg.GitHub)
	if err != nil {
		log.Errorw("github client initialization error", "error", err)
		return
	}

	uc := usecase.New(log, ctx, repo, source, cfg.Crawler.Concurrency, cfg.Crawler.StoreTimeout)

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log))

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	h := handlers_fiber.NewHandler(log, uc)
	h.RegisterRoutes(serv)

	go func() {
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	if cfg.Crawler.ScanOnStart {
		log.Infow("initial scan scheduled", "include_closed", cfg.Crawler.IncludeClosed)
		uc.RunScan(cfg.Crawler.IncludeClosed)
	}

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		// Background scans observe the cancelled root context and drain here.
		uc.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}
}
