package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/llyli-app/llyli-backend/internal/adapter/postgres"
	sessionrepo "github.com/llyli-app/llyli-backend/internal/adapter/postgres/session"
	wordrepo "github.com/llyli-app/llyli-backend/internal/adapter/postgres/word"
	"github.com/llyli-app/llyli-backend/internal/adapter/provider/freedict"
	"github.com/llyli-app/llyli-backend/internal/adapter/provider/libretranslate"
	"github.com/llyli-app/llyli-backend/internal/adapter/provider/translate"
	"github.com/llyli-app/llyli-backend/internal/auth"
	"github.com/llyli-app/llyli-backend/internal/config"
	"github.com/llyli-app/llyli-backend/internal/service/review"
	"github.com/llyli-app/llyli-backend/internal/service/review/fsrs"
	"github.com/llyli-app/llyli-backend/internal/service/word"
	"github.com/llyli-app/llyli-backend/internal/transport/middleware"
	"github.com/llyli-app/llyli-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires the services and HTTP transport, and serves until
// the context is cancelled or a termination signal arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	words := wordrepo.New(pool)
	sessions := sessionrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	fsrsParams := fsrs.DefaultParams()
	fsrsParams.DesiredRetention = cfg.Review.RequestRetention
	fsrsParams.MaxIntervalDays = cfg.Review.MaxIntervalDays
	fsrsParams.EnableFuzz = !cfg.Review.DisableFuzz

	reviewSvc, err := review.NewService(logger, words, sessions, txManager, review.Config{
		FSRS:              fsrsParams,
		NewWordsPerDay:    cfg.Review.NewWordsPerDay,
		DefaultQueueLimit: cfg.Review.DefaultQueueLimit,
		MaxBatchSize:      cfg.Review.MaxBatchSize,
	}, nil)
	if err != nil {
		return fmt.Errorf("create review service: %w", err)
	}

	translator := newTranslator(cfg.Translate, logger)
	wordCfg := word.Config{
		MaxWordsPerUser: cfg.Words.MaxWordsPerUser,
		NewWordsPerDay:  cfg.Review.NewWordsPerDay,
		DefaultCategory: cfg.Words.DefaultCategory,
	}
	var wordSvc *word.Service
	if cfg.Words.AudioEnabled {
		audio := freedict.NewProvider(cfg.Words.AudioLang, logger)
		wordSvc = word.NewService(logger, words, translator, audio, wordCfg)
	} else {
		wordSvc = word.NewService(logger, words, translator, nil, wordCfg)
	}

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	handlers := rest.Handlers{
		Health:  rest.NewHealthHandler(pool, BuildVersion()),
		Reviews: rest.NewReviewsHandler(reviewSvc, logger),
		Words:   rest.NewWordsHandler(wordSvc, logger),
	}
	router := rest.NewRouter(handlers, verifier, cfg.CORS, limiter, cfg.Server.RateLimitPerMinute, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}

// newTranslator picks the configured translation provider. When translation
// is disabled, capture falls back to storing words untranslated.
func newTranslator(cfg config.TranslateConfig, logger *slog.Logger) translate.Translator {
	if !cfg.Enabled {
		return translate.NewStub()
	}
	return libretranslate.NewProvider(libretranslate.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Source:  cfg.SourceLang,
		Target:  cfg.TargetLang,
	}, logger)
}
