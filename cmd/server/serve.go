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
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/mfg-tool-dashboard/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server for the dashboard, the admin panel and the JSON API`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	app, cleanup, err := openApp()
	if err != nil {
		return err
	}
	defer cleanup()

	gin.SetMode(app.Config.GinMode)

	if err := app.Bootstrap(); err != nil {
		return err
	}

	store, err := server.NewSessionStore(app.Config)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              app.Config.ListenAddr,
		Handler:           server.NewRouter(app, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "address", srv.Addr)
		serverErrChan <- srv.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	slog.Info("Server stopped")
	return nil
}
