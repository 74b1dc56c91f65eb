package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/yukikurage/mfg-tool-dashboard/internal/constants"
	"github.com/yukikurage/mfg-tool-dashboard/internal/models"
	"github.com/yukikurage/mfg-tool-dashboard/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo   repository.UserRepository
	bcryptCost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	EmployeeID string
	Password   string
}

// Login verifies credentials and returns the authenticated user.
// Unknown employee ids and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmployeeID(input.EmployeeID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Spend the same bcrypt work as a real comparison.
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(input.Password))
			slog.Debug("Login failed: unknown employee id", "employee_id", input.EmployeeID)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		slog.Debug("Login failed: password mismatch", "employee_id", input.EmployeeID)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToHashPass, err)
	}
	return string(hashed), nil
}

// EnsureDefaultAdmin creates the well-known admin account when no admin exists.
// It reports whether an account was created. The credentials must be rotated
// right after first start.
func (s *AuthService) EnsureDefaultAdmin(employeeID, password string) (bool, error) {
	count, err := s.userRepo.CountAdmins()
	if err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	hashed, err := s.HashPassword(password)
	if err != nil {
		return false, err
	}

	admin := &models.User{
		EmployeeID:   employeeID,
		Username:     constants.DefaultAdminUsername,
		PasswordHash: hashed,
		IsAdmin:      true,
	}
	if err := s.userRepo.Create(admin); err != nil {
		if errors.Is(err, repository.ErrEmployeeIDTaken) {
			return false, fmt.Errorf("cannot create default admin: %w", ErrEmployeeIDExists)
		}
		return false, fmt.Errorf("failed to create default admin: %w", err)
	}

	slog.Warn("Default admin user created; change its password immediately",
		"employee_id", employeeID,
	)
	return true, nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("dummy-password"), s.bcryptCost)
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
