package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kracgan/student-management-frontend/internal/backend"
	"github.com/kracgan/student-management-frontend/internal/config"
	"github.com/kracgan/student-management-frontend/internal/server"
	"github.com/kracgan/student-management-frontend/internal/ui"
)

func newServeCmd() *cobra.Command {
	cfg := config.FromEnv()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web front end",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.LogLevel = flagLogLevel
			cfg.LogFormat = flagLogFormat
			cfg.DBPath = flagDB
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	cmd.Flags().StringVar(&cfg.BackendURL, "backend-url", cfg.BackendURL, "Base URL of the student management API")
	cmd.Flags().BoolVar(&cfg.SecureCookies, "secure-cookies", cfg.SecureCookies, "Mark session cookies Secure (HTTPS deployments)")
	cmd.Flags().DurationVar(&cfg.SessionLifetime, "session-lifetime", cfg.SessionLifetime, "Maximum session lifetime")

	return cmd
}

func runServe(cfg config.ServerConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	logger.Info("session store ready")

	api := backend.NewClient(backend.ClientConfig{BaseURL: cfg.BackendURL}, logger)
	sessions := ui.NewSessionManager(st, api, logger, ui.SessionConfig{
		Lifetime: cfg.SessionLifetime,
		Secure:   cfg.SecureCookies,
	})
	webUI := ui.New(sessions, api, logger)

	srv := server.New(cfg, st, webUI, logger)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	// Sweep expired session records in the background.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := sessions.PurgeExpired(ctx); err != nil {
					logger.Warn("session sweep failed", "error", err)
				} else if n > 0 {
					logger.Info("purged expired sessions", "count", n)
				}
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "backend", cfg.BackendURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
