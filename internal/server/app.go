// Package server wires repositories, services and handlers into a gin engine.
package server

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/yukikurage/mfg-tool-dashboard/internal/config"
	"github.com/yukikurage/mfg-tool-dashboard/internal/importer"
	"github.com/yukikurage/mfg-tool-dashboard/internal/repository"
	"github.com/yukikurage/mfg-tool-dashboard/internal/services"
	"gorm.io/gorm"
)

// App holds the shared database handle and the services built on it.
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Auth     *services.AuthService
	Tools    *services.ToolService
	Users    *services.UserService
	Importer *importer.Importer
}

// NewApp builds every service on top of db.
func NewApp(cfg *config.Config, db *gorm.DB) *App {
	toolRepo := repository.NewToolRepository(db)
	userRepo := repository.NewUserRepository(db)

	authService := services.NewAuthService(userRepo, cfg.BcryptCost)

	return &App{
		Config:   cfg,
		DB:       db,
		Auth:     authService,
		Tools:    services.NewToolService(toolRepo),
		Users:    services.NewUserService(userRepo, toolRepo, authService),
		Importer: importer.New(toolRepo, cfg.ClearOrphanedAssignments),
	}
}

// Bootstrap creates the default admin when no admin exists and loads the
// default CSV when the tool table is empty. A missing default CSV is not an error.
func (a *App) Bootstrap() error {
	if _, err := a.Auth.EnsureDefaultAdmin(a.Config.AdminEmployeeID, a.Config.AdminPassword); err != nil {
		return err
	}

	count, err := a.Tools.CountTools()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	path := a.Config.DefaultCSVPath()
	tools, err := a.Importer.ImportFile(path)
	if err != nil {
		if errors.Is(err, importer.ErrSourceNotFound) {
			slog.Info("No default CSV found, starting with an empty tool table", "path", path)
			return nil
		}
		return fmt.Errorf("failed to load default CSV: %w", err)
	}

	slog.Info("Loaded default CSV", "path", path, "count", len(tools))
	return nil
}
