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

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	apiadapter "github.com/credpanel/credpanel/internal/adapter/driven/api"
	sqliteadapter "github.com/credpanel/credpanel/internal/adapter/driven/sqlite"
	httphandler "github.com/credpanel/credpanel/internal/adapter/driving/http"
	webhandler "github.com/credpanel/credpanel/internal/adapter/driving/web"
	"github.com/credpanel/credpanel/internal/application"
	"github.com/credpanel/credpanel/internal/config"
	"github.com/credpanel/credpanel/internal/queryparams"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"api_url", cfg.APIURL,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
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

	// 5. Wire adapters.
	prefsStore := sqliteadapter.NewPrefsRepo(db)

	apiClient, err := apiadapter.NewClient(cfg.APIURL, cfg.APIToken, cfg.RequestTimeout)
	if err != nil {
		return err
	}

	// 6. Create application services.
	listSvc := application.NewListService(apiClient)
	deleteSvc := application.NewDeleteService(apiClient)
	selections := application.NewSelectionStore()
	defaults := application.NewDefaultsProvider(prefsStore, queryparams.Config{
		DefaultPageSize: cfg.DefaultPageSize,
		DefaultOrderBy:  cfg.DefaultOrderBy,
	})

	// 7. Create HTTP handler and register API routes.
	apiHandler := httphandler.NewHandler(listSvc, deleteSvc, defaults, prefsStore, slog.Default())
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	// 8. Create web handler and register GUI routes.
	webHandler := webhandler.NewHandler(listSvc, deleteSvc, selections, defaults, slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	// Apply middleware.
	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
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

	slog.Info("credpanel started", "listen_addr", cfg.ListenAddr)

	// 9. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 10. Graceful shutdown with 10s timeout to drain the HTTP server.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
