package repository

import (
	"errors"

	"github.com/yukikurage/mfg-tool-dashboard/internal/models"
)

var (
	// ErrToolNotFound is returned when no tool has the requested id.
	ErrToolNotFound = errors.New("tool not found")
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmployeeIDTaken is returned when creating a user whose employee id already exists.
	ErrEmployeeIDTaken = errors.New("employee ID already exists")
)

// ToolRepository defines the interface for tool data access
type ToolRepository interface {
	// List returns every tool ordered by id
	List() ([]models.Tool, error)

	// FindByID finds a tool by ID
	FindByID(id uint64) (*models.Tool, error)

	// ReplaceAll atomically swaps the whole tool table for rows, numbering them 1..n
	ReplaceAll(rows []models.Tool, opts ReplaceOptions) ([]models.Tool, error)

	// UpdateStatus overwrites the status fields of a tool and stamps last_updated
	UpdateStatus(id uint64, update ToolUpdate) (*models.Tool, error)

	// Count returns the number of tools
	Count() (int64, error)
}

// ReplaceOptions controls side effects of a full tool reload
type ReplaceOptions struct {
	// ClearOrphanedAssignments nulls user assignments that no longer match a tool id
	ClearOrphanedAssignments bool
}

// ToolUpdate holds the fields written by a status update.
// A nil ResponsibleParty leaves the stored value unchanged.
type ToolUpdate struct {
	CurrentStatus    string
	NextAction       string
	ETA              string
	ResponsibleParty *string
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user, failing with ErrEmployeeIDTaken on duplicates
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmployeeID finds a user by login key
	FindByEmployeeID(employeeID string) (*models.User, error)

	// List returns admins first, then by username
	List() ([]models.User, error)

	// Update applies a partial update
	Update(id uint64, changes UserChanges) (*models.User, error)

	// Delete removes a user
	Delete(id uint64) error

	// CountAdmins counts users with the admin flag
	CountAdmins() (int64, error)
}

// UserChanges is a partial user update; nil fields are left untouched.
type UserChanges struct {
	Username     *string
	FirstName    *string
	LastName     *string
	IsAdmin      *bool
	PasswordHash *string

	// UpdateAssignment must be set for AssignedToolID to be written; a nil id then clears it.
	UpdateAssignment bool
	AssignedToolID   *uint64
}
