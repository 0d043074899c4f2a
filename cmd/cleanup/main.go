// Command cleanup closes review sessions that were started but never
// ended, typically because the client disappeared mid-session. It is
// intended to be invoked by an external cron job, not as an in-process
// goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/llyli-app/llyli-backend/internal/adapter/postgres"
	"github.com/llyli-app/llyli-backend/internal/adapter/postgres/session"
	"github.com/llyli-app/llyli-backend/internal/app"
	"github.com/llyli-app/llyli-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	sessionRepo := session.New(pool)

	threshold := time.Now().UTC().Add(-cfg.Review.StaleSessionAfter)

	closed, err := sessionRepo.CloseStale(ctx, threshold)
	if err != nil {
		logger.Error("close stale sessions failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", threshold),
		)
		os.Exit(1)
	}

	logger.Info("close stale sessions completed",
		slog.Int("closed", closed),
		slog.Time("threshold", threshold),
	)
}
