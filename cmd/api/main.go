// cmd/api/main.go
package main

import (
	"context"
	"creator-yield/internal/auth"
	"creator-yield/internal/config"
	"creator-yield/internal/counter"
	"creator-yield/internal/handler"
	"creator-yield/internal/logging"
	"creator-yield/internal/middleware"
	"creator-yield/internal/storage"
	"creator-yield/internal/storage/memory"
	"creator-yield/internal/storage/postgres"
	"creator-yield/internal/wallet"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.MustLoad()
	logger := logging.New(cfg.Logging)

	store, err := openStorage(context.Background(), cfg.DB)
	if err != nil {
		logger.Error("Не удалось подключиться к БД", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	tokenService := auth.NewTokenService(cfg.JWT)
	counters := counter.New(store)

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.RouterDeps{
		Auth:    handler.NewAuthHandler(tokenService),
		Yield:   handler.NewYieldHandler(counters, cfg.HTTP.RollingLabels),
		Wallet:  handler.NewWalletHandler(wallet.NewService(store, counters)),
		Require: middleware.NewAuthMiddleware(tokenService).RequireAuth(),
		DB:      store,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🚀 Сервер запущен", "addr", cfg.HTTP.Port)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Сервер завершил работу с ошибкой", "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func openStorage(ctx context.Context, cfg config.DBConfig) (storage.Storage, error) {
	if cfg.InMemory() {
		slog.Warn("DATABASE_URL=memory, data is lost on restart")
		return memory.NewStorage(), nil
	}
	return postgres.Connect(ctx, cfg.DSN)
}
