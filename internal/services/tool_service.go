package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/mfg-tool-dashboard/internal/models"
	"github.com/yukikurage/mfg-tool-dashboard/internal/repository"
)

// ToolService handles tool reads and status updates under the caller's authority.
type ToolService struct {
	toolRepo repository.ToolRepository
}

// NewToolService creates a new ToolService
func NewToolService(toolRepo repository.ToolRepository) *ToolService {
	return &ToolService{
		toolRepo: toolRepo,
	}
}

// UpdateToolInput represents a status update.
// ToolID is required for admins; operators may omit it to target their assignment.
// ResponsibleParty is only honored for admins; operators always become the responsible party.
type UpdateToolInput struct {
	ToolID           *uint64
	CurrentStatus    string
	NextAction       string
	ETA              string
	ResponsibleParty *string
}

// ListTools returns every tool ordered by id
func (s *ToolService) ListTools() ([]models.Tool, error) {
	tools, err := s.toolRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	return tools, nil
}

// GetTool returns a single tool
func (s *ToolService) GetTool(id uint64) (*models.Tool, error) {
	tool, err := s.toolRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrToolNotFound) {
			return nil, ErrToolNotFound
		}
		return nil, fmt.Errorf("failed to find tool: %w", err)
	}
	return tool, nil
}

// AssignedTool returns the caller's assigned tool, or nil when there is none
// or the assignment points at a tool that no longer exists.
func (s *ToolService) AssignedTool(identity models.Identity) (*models.Tool, error) {
	toolID, ok := identity.AssignedTool()
	if !ok {
		return nil, nil
	}

	tool, err := s.GetTool(toolID)
	if errors.Is(err, ErrToolNotFound) {
		return nil, nil
	}
	return tool, err
}

// UpdateTool writes a status update on behalf of identity.
// Admins may update any tool. Everyone else may only update their assigned
// tool and is recorded as its responsible party.
func (s *ToolService) UpdateTool(identity models.Identity, input UpdateToolInput) (*models.Tool, error) {
	if identity == nil || !identity.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	var (
		toolID           uint64
		responsibleParty *string
	)

	if identity.IsAdministrator() {
		if input.ToolID == nil {
			return nil, &ValidationError{Message: "Tool ID is required", Fields: []string{"tool_id"}}
		}
		toolID = *input.ToolID
		if input.ResponsibleParty != nil && *input.ResponsibleParty != "" {
			responsibleParty = input.ResponsibleParty
		}
	} else {
		assigned, ok := identity.AssignedTool()
		if !ok {
			return nil, ErrNoToolAssigned
		}
		if input.ToolID != nil && *input.ToolID != assigned {
			return nil, ErrToolNotAssigned
		}
		toolID = assigned
		name := identity.DisplayName()
		responsibleParty = &name
	}

	if err := requireFields("All fields are required",
		"current_status", input.CurrentStatus,
		"next_action", input.NextAction,
		"eta", input.ETA,
	); err != nil {
		return nil, err
	}

	tool, err := s.toolRepo.UpdateStatus(toolID, repository.ToolUpdate{
		CurrentStatus:    input.CurrentStatus,
		NextAction:       input.NextAction,
		ETA:              input.ETA,
		ResponsibleParty: responsibleParty,
	})
	if err != nil {
		if errors.Is(err, repository.ErrToolNotFound) {
			return nil, ErrToolNotFound
		}
		return nil, fmt.Errorf("failed to update tool: %w", err)
	}

	return tool, nil
}

// CountTools returns the number of tools
func (s *ToolService) CountTools() (int64, error) {
	return s.toolRepo.Count()
}
