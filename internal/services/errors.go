package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCredentials  = errors.New("invalid employee ID or password")
	ErrUserNotFound        = errors.New("user not found")
	ErrToolNotFound        = errors.New("tool not found")
	ErrEmployeeIDExists    = errors.New("employee ID already exists")
	ErrNotAuthenticated    = errors.New("authentication required")
	ErrNoToolAssigned      = errors.New("no tool assigned to account")
	ErrToolNotAssigned     = errors.New("you can only update the tool assigned to your account")
	ErrCannotDeleteSelf    = errors.New("cannot delete own account")
	ErrInvalidAssignedTool = errors.New("assigned tool does not exist")
	ErrFailedToHashPass    = errors.New("failed to hash password")
)

// ValidationError reports required input that was missing or blank.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// requireFields returns a ValidationError naming every blank value.
// Pairs are name, value.
func requireFields(message string, pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Message: message, Fields: missing}
	}
	return nil
}
