package dto

import (
	"time"

	"github.com/yukikurage/mfg-tool-dashboard/internal/models"
)

// ToolDTO represents a tool in API responses
type ToolDTO struct {
	ID               uint64    `json:"id"`
	Name             string    `json:"mfg_tool_name"`
	CurrentStatus    string    `json:"current_status"`
	NextAction       string    `json:"next_action"`
	ResponsibleParty string    `json:"responsible_party"`
	ETA              string    `json:"eta"`
	LastUpdated      time.Time `json:"last_updated"`
}

// UpdateToolRequest is the body of a tool status update
type UpdateToolRequest struct {
	ToolID           *uint64 `json:"tool_id"`
	CurrentStatus    string  `json:"current_status"`
	NextAction       string  `json:"next_action"`
	ETA              string  `json:"eta"`
	ResponsibleParty *string `json:"responsible_party"`
}

// ReloadRequest is the body of a reload from a server-side CSV
type ReloadRequest struct {
	CSVPath string `json:"csv_path"`
}

// ToToolDTO converts a tool to DTO
func ToToolDTO(tool models.Tool) ToolDTO {
	return ToolDTO{
		ID:               tool.ID,
		Name:             tool.Name,
		CurrentStatus:    tool.CurrentStatus,
		NextAction:       tool.NextAction,
		ResponsibleParty: tool.ResponsibleParty,
		ETA:              tool.ETA,
		LastUpdated:      tool.LastUpdated,
	}
}

// ToToolDTOs converts tools to DTOs, never returning nil
func ToToolDTOs(tools []models.Tool) []ToolDTO {
	result := make([]ToolDTO, len(tools))
	for i, tool := range tools {
		result[i] = ToToolDTO(tool)
	}
	return result
}
