// Package main is the entry point for the standalone profile service.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Deimvis/MafiaGame/internal/infra/storage"
	"github.com/Deimvis/MafiaGame/internal/platform/config"
	"github.com/Deimvis/MafiaGame/internal/platform/logger"
	"github.com/Deimvis/MafiaGame/internal/profile"
)

func main() {
	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	cfg, err := config.LoadProfile()
	if err != nil {
		appLogger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := storage.InitSQLite(cfg.DBPath)
	if err != nil {
		appLogger.Error("failed to initialize sqlite", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := storage.NewProfileRepository(db)
	handler := profile.NewHandler(repo, appLogger)

	server := &http.Server{Addr: cfg.Addr, Handler: handler.Routes()}
	go func() {
		appLogger.Info("profile service listening", "addr", cfg.Addr, "db", cfg.DBPath)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	server.Shutdown(context.Background())
}
