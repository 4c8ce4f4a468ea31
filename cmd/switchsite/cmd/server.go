package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/switchgames/site/api"
	"github.com/switchgames/site/auth"
	"github.com/switchgames/site/catalog"
	"github.com/switchgames/site/config"
	"github.com/switchgames/site/notify"
	"github.com/switchgames/site/store"
	"github.com/switchgames/site/web"
)

var (
	port       int
	dataDir    string
	uploadsDir string
	siteDir    string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the site backend server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		// Flags override the environment when set.
		if cmd.Flags().Changed("port") {
			cfg.Port = port
		}
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir = dataDir
		}
		if cmd.Flags().Changed("uploads-dir") {
			cfg.UploadsDir = uploadsDir
		}
		if cmd.Flags().Changed("site-dir") {
			cfg.SiteDir = siteDir
		}

		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel(cfg.LogLevel),
		}))
		slog.SetDefault(logger)

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}

		stores := store.Open(cfg.DataDir)
		verifier := auth.NewVerifier(cfg.AdminPasswordHash, cfg.AdminUsername, stores.Accounts)

		trail, err := api.OpenAuditTrail(filepath.Join(cfg.DataDir, "audit.db"))
		if err != nil {
			return fmt.Errorf("failed to open audit trail: %w", err)
		}
		defer trail.Close()

		notifier := notify.NewDispatcher(cfg.WebhookURL, logger)
		defer notifier.Close()

		client := catalog.NewClient()

		opts := []api.Option{
			api.WithLogger(logger),
			api.WithAuditTrail(trail),
			api.WithNotifier(notifier),
			api.WithCatalog(client),
			api.WithUploadsDir(cfg.UploadsDir),
		}

		var poller *catalog.StatsPoller
		if len(cfg.UniverseIDs) > 0 {
			poller = catalog.NewStatsPoller(client, cfg.UniverseIDs, logger)
			if err := poller.Start(); err != nil {
				return fmt.Errorf("failed to start stats poller: %w", err)
			}
			defer poller.Stop()
			opts = append(opts, api.WithStatsSource(poller))
		}

		a := api.New(stores, verifier, opts...)

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		r.Mount("/api", a.Router())
		r.Handle("/*", web.Handler(cfg.SiteDir, cfg.UploadsDir))

		server := &http.Server{
			Addr:              cfg.Addr(),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		printBanner()
		fmt.Printf("Starting server on port %d (data: %s)...\n", cfg.Port, cfg.DataDir)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			fmt.Printf("\nReceived %s, shutting down...\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntVarP(&port, "port", "p", 5500, "Port to listen on")
	serverCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Directory for persistent data")
	serverCmd.Flags().StringVar(&uploadsDir, "uploads-dir", "./uploads", "Directory for uploaded images")
	serverCmd.Flags().StringVar(&siteDir, "site-dir", "./public", "Directory with the static site")
}
