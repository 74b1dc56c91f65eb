package dto

import (
	"github.com/yukikurage/mfg-tool-dashboard/internal/models"
	"github.com/yukikurage/mfg-tool-dashboard/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID               uint64  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	Username         string  `json:"username"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	FullName         string  `json:"full_name"`
	IsAdmin          bool    `json:"is_admin"`
	AssignedToolID   *uint64 `json:"assigned_tool_id"`
	AssignedToolName *string `json:"mfg_tool_name,omitempty"`
}

// LoginRequest accepts both form posts and JSON
type LoginRequest struct {
	EmployeeID string `form:"employee_id" json:"employee_id"`
	Password   string `form:"password" json:"password"`
}

// CreateUserRequest is the body of an admin user creation
type CreateUserRequest struct {
	EmployeeID     string     `json:"employee_id"`
	Username       string     `json:"username"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Password       string     `json:"password"`
	IsAdmin        Flag       `json:"is_admin"`
	AssignedToolID OptionalID `json:"assigned_tool_id"`
}

// UpdateUserRequest is the body of an admin user edit. Absent fields are left unchanged.
type UpdateUserRequest struct {
	Username       *string    `json:"username"`
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	IsAdmin        *Flag      `json:"is_admin"`
	NewPassword    *string    `json:"new_password"`
	AssignedToolID OptionalID `json:"assigned_tool_id"`
}

// ToUserDTO converts a user to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		EmployeeID:     user.EmployeeID,
		Username:       user.Username,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		FullName:       user.FullName(),
		IsAdmin:        user.IsAdmin,
		AssignedToolID: user.AssignedToolID,
	}
}

// ToUserWithToolDTOs converts the admin user listing to DTOs
func ToUserWithToolDTOs(users []services.UserWithTool) []UserDTO {
	result := make([]UserDTO, len(users))
	for i, user := range users {
		result[i] = ToUserDTO(user.User)
		result[i].AssignedToolName = user.ToolName
	}
	return result
}

// ToCreateUserInput converts the request to service input
func (r CreateUserRequest) ToCreateUserInput() services.CreateUserInput {
	return services.CreateUserInput{
		EmployeeID:     r.EmployeeID,
		Username:       r.Username,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Password:       r.Password,
		IsAdmin:        bool(r.IsAdmin),
		AssignedToolID: r.AssignedToolID.Value,
	}
}

// ToUpdateUserInput converts the request to service input
func (r UpdateUserRequest) ToUpdateUserInput() services.UpdateUserInput {
	input := services.UpdateUserInput{
		Username:       r.Username,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		NewPassword:    r.NewPassword,
		AssignmentSet:  r.AssignedToolID.Set,
		AssignedToolID: r.AssignedToolID.Value,
	}
	if r.IsAdmin != nil {
		isAdmin := bool(*r.IsAdmin)
		input.IsAdmin = &isAdmin
	}
	return input
}
