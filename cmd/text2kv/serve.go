package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sagarc03/text2kv"
	"github.com/sagarc03/text2kv/backend"
	"github.com/sagarc03/text2kv/config"
	text2kvhttp "github.com/sagarc03/text2kv/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the text2kv HTTP server.

The token is read once at startup from auth.token, TEXT2KV_AUTH_TOKEN, or
TOKEN. Without one the server falls back to the public default "passwd".`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5708, "HTTP server port")
	serveCmd.Flags().String("token", "", "shared access token (env: TEXT2KV_AUTH_TOKEN or TOKEN)")
	serveCmd.Flags().Bool("cache", false, "enable the in-process read cache")
	serveCmd.Flags().Bool("auto-migrate", true, "create missing SQL tables on start")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	store, closeStore, err := backend.Open(ctx, cfg.Backend())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()
	slog.Info("store ready", "type", cfg.Store.Type, "cache", cfg.Cache.Enabled)

	service, err := text2kv.NewTextService(store, cfg.Service())
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	gate := text2kv.NewGate(cfg.Auth.Token)
	if gate.IsDefault() {
		slog.Warn("running with the default token; set auth.token or TOKEN")
	}

	handler := text2kvhttp.NewHandler(&text2kvhttp.HandlerConfig{
		Gate:         gate,
		PublicScheme: cfg.Server.PublicScheme,
		CORS:         cfg.CORS,
	}, service)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
