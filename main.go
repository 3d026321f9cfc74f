package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/vizalsl/portfolio/internal/config"
	"github.com/vizalsl/portfolio/internal/content"
	"github.com/vizalsl/portfolio/internal/visits"
	"github.com/vizalsl/portfolio/internal/web"
)

const visitCleanupInterval = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	site, err := content.LoadFile(cfg.ContentPath)
	if err != nil {
		return err
	}

	opts := web.Options{
		Site:           site,
		Sender:         cfg.Contact.Sender(),
		DisplayWindow:  cfg.Contact.DisplayWindow,
		StaticDir:      existingDir(cfg.StaticDir),
		ImagesDir:      existingDir(cfg.ImagesDir),
		ResumePath:     existingFile(cfg.ResumePath),
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	}

	if cfg.Visits.Enabled {
		store, err := visits.New(cfg.Visits.DBPath, cfg.Visits.HashSalt)
		if err != nil {
			return err
		}
		opts.Visits = store

		stopCleanup := store.StartCleanup(ctx, cfg.Visits.Retention, visitCleanupInterval, logger)
		defer func() {
			stopCleanup()
			store.Close()
		}()
		logger.Info("visit tracking enabled", "db", cfg.Visits.DBPath, "retention", cfg.Visits.Retention)
	}

	if !cfg.Contact.SMTP().Configured() {
		logger.Warn("SMTP credentials not configured, contact messages are simulated")
	}

	srv, err := web.NewServer(opts)
	if err != nil {
		return err
	}
	return srv.Run(ctx, ":"+cfg.Port)
}

func existingDir(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return ""
}

func existingFile(path string) string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}
