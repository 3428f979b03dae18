// Package main запускает HTTP-сервер сервиса расчёта комиссионных.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/commission-calculator/internal/config"
	"github.com/mmeshcher/commission-calculator/internal/handler"
	"github.com/mmeshcher/commission-calculator/internal/logger"
	"github.com/mmeshcher/commission-calculator/internal/middleware"
	"github.com/mmeshcher/commission-calculator/internal/repository"
	"github.com/mmeshcher/commission-calculator/internal/service"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger initialization error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("application terminated with error", zap.Error(err))
	}
}

// run собирает зависимости и обслуживает запросы до отмены ctx.
func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	sugar := log.Sugar()

	repo := repository.NewMemoryRepository(cfg.SessionTTL)

	svc := service.NewService(repo, logger.Named(log, "service"))
	defer svc.Close()

	sessionMiddleware := middleware.NewSessionMiddleware(cfg.SessionSecret, cfg.SessionTTL)
	h := handler.NewHandler(svc, logger.Named(log, "http"), sessionMiddleware)

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting commission server",
			zap.String("addr", cfg.RunAddress),
			zap.Duration("session_ttl", cfg.SessionTTL),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка сервера)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}
