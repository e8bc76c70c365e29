package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	sqliteadapter "github.com/ericfisherdev/taskdeck/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/taskdeck/internal/adapter/driven/taskapi"
	webhandler "github.com/ericfisherdev/taskdeck/internal/adapter/driving/web"
	"github.com/ericfisherdev/taskdeck/internal/application"
	"github.com/ericfisherdev/taskdeck/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (.env first, then environment; fail fast).
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"api_url", cfg.APIURL,
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"check_interval", cfg.CheckInterval,
		"token_ttl", cfg.TokenTTL,
		"encryption", cfg.SecretKey != nil,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM). Canceling it tears
	// down the session check loop along with the server.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters. The gateway's 401 signal feeds session invalidation;
	// the cycle (gateway → session → store → gateway) is broken by wiring
	// the callback after both exist.
	credentialStore := sqliteadapter.NewCredentialRepo(db, cfg.SecretKey)

	var sessionSvc *application.SessionService
	apiClient, err := taskapi.NewClient(cfg.APIURL, credentialStore, func() {
		sessionSvc.Invalidate(context.Background())
	})
	if err != nil {
		return err
	}

	sessionSvc = application.NewSessionService(apiClient, credentialStore, cfg.TokenTTL, cfg.CheckInterval)
	go sessionSvc.Start(ctx)

	// 6. Create web handler and register routes.
	handler := webhandler.NewHandler(sessionSvc, apiClient, slog.Default())
	mux := http.NewServeMux()
	webhandler.RegisterRoutes(mux, handler)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           webhandler.ApplyMiddleware(mux, slog.Default()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("taskdeck started", "listen_addr", cfg.ListenAddr)

	// 7. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 8. Graceful shutdown with 10s timeout for HTTP server drain.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
