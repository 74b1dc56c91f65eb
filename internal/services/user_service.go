package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/mfg-tool-dashboard/internal/models"
	"github.com/yukikurage/mfg-tool-dashboard/internal/repository"
)

// UserService handles user administration.
type UserService struct {
	userRepo    repository.UserRepository
	toolRepo    repository.ToolRepository
	authService *AuthService
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, toolRepo repository.ToolRepository, authService *AuthService) *UserService {
	return &UserService{
		userRepo:    userRepo,
		toolRepo:    toolRepo,
		authService: authService,
	}
}

// UserWithTool is a user together with the name of the tool assigned to it.
type UserWithTool struct {
	models.User
	ToolName *string
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	EmployeeID     string
	Username       string
	FirstName      string
	LastName       string
	Password       string
	IsAdmin        bool
	AssignedToolID *uint64
}

// UpdateUserInput represents a partial user update.
// AssignedToolID is only applied when AssignmentSet is true; nil then clears it.
type UpdateUserInput struct {
	Username       *string
	FirstName      *string
	LastName       *string
	IsAdmin        *bool
	NewPassword    *string
	AssignmentSet  bool
	AssignedToolID *uint64
}

// ListUsers returns admins first, then by username, with assigned tool names.
// Dangling assignments have no tool name.
func (s *UserService) ListUsers() ([]UserWithTool, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	tools, err := s.toolRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	names := make(map[uint64]string, len(tools))
	for _, tool := range tools {
		names[tool.ID] = tool.Name
	}

	result := make([]UserWithTool, len(users))
	for i, user := range users {
		result[i] = UserWithTool{User: user}
		if user.AssignedToolID != nil {
			if name, ok := names[*user.AssignedToolID]; ok {
				result[i].ToolName = &name
			}
		}
	}

	return result, nil
}

// CreateUser creates a user after validating required fields and the tool assignment.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	if err := requireFields("Employee ID, username, and password are required",
		"employee_id", input.EmployeeID,
		"username", input.Username,
		"password", input.Password,
	); err != nil {
		return nil, err
	}

	assigned, err := s.resolveAssignment(input.AssignedToolID)
	if err != nil {
		return nil, err
	}

	hashed, err := s.authService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		EmployeeID:     strings.TrimSpace(input.EmployeeID),
		Username:       strings.TrimSpace(input.Username),
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		PasswordHash:   hashed,
		IsAdmin:        input.IsAdmin,
		AssignedToolID: assigned,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrEmployeeIDTaken) {
			return nil, ErrEmployeeIDExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// UpdateUser applies a partial update. The password hash is kept unless a new
// password is supplied.
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	changes := repository.UserChanges{
		FirstName: trimmed(input.FirstName),
		LastName:  trimmed(input.LastName),
		IsAdmin:   input.IsAdmin,
	}

	if input.Username != nil {
		if err := requireFields("Username cannot be empty", "username", *input.Username); err != nil {
			return nil, err
		}
		changes.Username = trimmed(input.Username)
	}

	if input.NewPassword != nil && *input.NewPassword != "" {
		hashed, err := s.authService.HashPassword(*input.NewPassword)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hashed
	}

	if input.AssignmentSet {
		assigned, err := s.resolveAssignment(input.AssignedToolID)
		if err != nil {
			return nil, err
		}
		changes.UpdateAssignment = true
		changes.AssignedToolID = assigned
	}

	user, err := s.userRepo.Update(id, changes)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user. An actor can never delete their own account.
func (s *UserService) DeleteUser(actor models.Identity, id uint64) error {
	if actor != nil && actor.Subject() == id {
		return ErrCannotDeleteSelf
	}

	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// resolveAssignment treats 0 as "no assignment" and rejects ids with no tool.
func (s *UserService) resolveAssignment(toolID *uint64) (*uint64, error) {
	if toolID == nil || *toolID == 0 {
		return nil, nil
	}

	if _, err := s.toolRepo.FindByID(*toolID); err != nil {
		if errors.Is(err, repository.ErrToolNotFound) {
			return nil, ErrInvalidAssignedTool
		}
		return nil, fmt.Errorf("failed to check assigned tool: %w", err)
	}

	id := *toolID
	return &id, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
