package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/mfg-tool-dashboard/internal/dto"
	apierrors "github.com/yukikurage/mfg-tool-dashboard/internal/errors"
	"github.com/yukikurage/mfg-tool-dashboard/internal/middleware"
	"github.com/yukikurage/mfg-tool-dashboard/internal/services"
)

// DashboardHandler serves the public status board and the operator dashboard.
type DashboardHandler struct {
	toolService *services.ToolService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(toolService *services.ToolService) *DashboardHandler {
	return &DashboardHandler{
		toolService: toolService,
	}
}

// Index renders the public status board.
func (h *DashboardHandler) Index(c *gin.Context) {
	tools, err := h.toolService.ListTools()
	if err != nil {
		respondError(c, err)
		return
	}

	view := gin.H{
		"tools":   dto.ToToolDTOs(tools),
		"flashes": middleware.Flashes(c),
	}
	if user, ok := middleware.GetUser(c); ok {
		view["user"] = dto.ToUserDTO(*user)
	}
	c.JSON(http.StatusOK, view)
}

// ListTools returns every tool ordered by id. No authentication is required.
func (h *DashboardHandler) ListTools(c *gin.Context) {
	tools, err := h.toolService.ListTools()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToToolDTOs(tools))
}

// UserDashboard shows an operator their assigned tool, if any.
func (h *DashboardHandler) UserDashboard(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	tool, err := h.toolService.AssignedTool(user)
	if err != nil {
		respondError(c, err)
		return
	}

	view := gin.H{
		"user":    dto.ToUserDTO(*user),
		"tool":    nil,
		"flashes": middleware.Flashes(c),
	}
	if tool != nil {
		view["tool"] = dto.ToToolDTO(*tool)
	}
	c.JSON(http.StatusOK, view)
}

// UpdateAssignedTool lets an operator update the status of their own tool.
// The operator becomes the tool's responsible party.
func (h *DashboardHandler) UpdateAssignedTool(c *gin.Context) {
	var req dto.UpdateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tool, err := h.toolService.UpdateTool(middleware.Identity(c), services.UpdateToolInput{
		ToolID:        req.ToolID,
		CurrentStatus: req.CurrentStatus,
		NextAction:    req.NextAction,
		ETA:           req.ETA,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Tool status updated successfully",
		"tool":    dto.ToToolDTO(*tool),
	})
}
