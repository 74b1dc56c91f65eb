package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/yukikurage/mfg-tool-dashboard/internal/config"
	"github.com/yukikurage/mfg-tool-dashboard/internal/database"
	"github.com/yukikurage/mfg-tool-dashboard/internal/logger"
	"github.com/yukikurage/mfg-tool-dashboard/internal/server"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "mfg-tool-dashboard",
	Short: "MFG tool status dashboard",
	Long:  `Tracks the status of manufacturing tools and who is responsible for them.`,
	// Running without a subcommand starts the server.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (default ./config.yml if present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(createAdminCmd)
}

// openApp loads configuration, connects and migrates the database, and builds
// the services. The returned cleanup closes the connection pool.
func openApp() (*server.App, func(), error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.AppEnv, cfg.LogLevel)

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	cleanup := func() {
		if err := database.Close(db); err != nil {
			slog.Error("Database close error", "error", err)
		}
	}
	return server.NewApp(cfg, db), cleanup, nil
}
