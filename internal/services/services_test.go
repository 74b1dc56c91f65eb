package services

import (
	"testing"

	"github.com/yukikurage/mfg-tool-dashboard/internal/repository"
	"github.com/yukikurage/mfg-tool-dashboard/internal/testutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	toolRepo    repository.ToolRepository
	authService *AuthService
	toolService *ToolService
	userService *UserService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db := testutil.OpenTestDB(t)
	userRepo := repository.NewUserRepository(db)
	toolRepo := repository.NewToolRepository(db)
	authService := NewAuthService(userRepo, bcrypt.MinCost)

	return serviceTestEnv{
		db:          db,
		userRepo:    userRepo,
		toolRepo:    toolRepo,
		authService: authService,
		toolService: NewToolService(toolRepo),
		userService: NewUserService(userRepo, toolRepo, authService),
	}
}
