package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/mfg-tool-dashboard/internal/dto"
	apierrors "github.com/yukikurage/mfg-tool-dashboard/internal/errors"
	"github.com/yukikurage/mfg-tool-dashboard/internal/importer"
	"github.com/yukikurage/mfg-tool-dashboard/internal/logger"
	"github.com/yukikurage/mfg-tool-dashboard/internal/middleware"
	"github.com/yukikurage/mfg-tool-dashboard/internal/models"
	"github.com/yukikurage/mfg-tool-dashboard/internal/services"
)

// AdminHandler handles user management and tool table maintenance.
// Every route is guarded by RequireAuth and RequireAdmin.
type AdminHandler struct {
	userService    *services.UserService
	toolService    *services.ToolService
	importer       *importer.Importer
	defaultCSVPath string
	maxUploadBytes int64
}

// AdminOptions carries the reload settings of the admin routes.
type AdminOptions struct {
	DefaultCSVPath string
	MaxUploadBytes int64
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	userService *services.UserService,
	toolService *services.ToolService,
	imp *importer.Importer,
	opts AdminOptions,
) *AdminHandler {
	return &AdminHandler{
		userService:    userService,
		toolService:    toolService,
		importer:       imp,
		defaultCSVPath: opts.DefaultCSVPath,
		maxUploadBytes: opts.MaxUploadBytes,
	}
}

// AdminPage lists every user and every tool.
func (h *AdminHandler) AdminPage(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}

	tools, err := h.toolService.ListTools()
	if err != nil {
		respondError(c, err)
		return
	}

	view := gin.H{
		"users":   dto.ToUserWithToolDTOs(users),
		"tools":   dto.ToToolDTOs(tools),
		"flashes": middleware.Flashes(c),
	}
	if user, ok := middleware.GetUser(c); ok {
		view["user"] = dto.ToUserDTO(*user)
	}
	c.JSON(http.StatusOK, view)
}

// CreateUser creates a new user account.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(req.ToCreateUserInput())
	if err != nil {
		respondError(c, err)
		return
	}

	logger.From(c.Request.Context()).Info("User created", "employee_id", user.EmployeeID, "new_user_id", user.ID)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"user":    dto.ToUserDTO(*user),
	})
}

// UpdateUser applies a partial edit to a user.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "Invalid user ID")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(id, req.ToUpdateUserInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
		"user":    dto.ToUserDTO(*user),
	})
}

// DeleteUser removes a user. Admins cannot delete themselves.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "Invalid user ID")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(middleware.Identity(c), id); err != nil {
		respondError(c, err)
		return
	}

	logger.From(c.Request.Context()).Info("User deleted", "deleted_user_id", id)
	c.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Message: "User deleted successfully",
	})
}

// UpdateTool lets an admin set the status of any tool.
func (h *AdminHandler) UpdateTool(c *gin.Context) {
	id, ok := parseID(c, "Invalid tool ID")
	if !ok {
		return
	}

	var req dto.UpdateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tool, err := h.toolService.UpdateTool(middleware.Identity(c), services.UpdateToolInput{
		ToolID:           &id,
		CurrentStatus:    req.CurrentStatus,
		NextAction:       req.NextAction,
		ETA:              req.ETA,
		ResponsibleParty: req.ResponsibleParty,
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

// Reload replaces the tool table from a CSV file on the server.
// The body is optional; without csv_path the configured default file is used.
func (h *AdminHandler) Reload(c *gin.Context) {
	var req dto.ReloadRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	path := strings.TrimSpace(req.CSVPath)
	if path == "" {
		path = h.defaultCSVPath
	}

	tools, err := h.importer.ImportFile(path)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.From(c.Request.Context()).Info("Tool table reloaded", "path", path, "count", len(tools))
	respondReloaded(c, tools)
}

// Upload replaces the tool table from an uploaded CSV file.
func (h *AdminHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile):
			apierrors.BadRequest(c, "No file provided")
		case errors.As(err, &maxBytesErr):
			apierrors.BadRequest(c, fmt.Sprintf("File exceeds the %d byte upload limit", maxBytesErr.Limit))
		default:
			apierrors.BadRequest(c, "Invalid upload")
		}
		return
	}
	if fileHeader.Filename == "" {
		apierrors.BadRequest(c, "No file selected")
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		apierrors.BadRequest(c, "File must be a CSV")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		apierrors.IOError(c, "Failed to read uploaded file")
		return
	}
	defer f.Close()

	tools, err := h.importer.ImportReader(f)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.From(c.Request.Context()).Info("Tool table uploaded", "filename", fileHeader.Filename, "count", len(tools))
	respondReloaded(c, tools)
}

func respondReloaded(c *gin.Context, tools []models.Tool) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Successfully loaded %d tools from CSV", len(tools)),
		"tools":   dto.ToToolDTOs(tools),
	})
}

func parseID(c *gin.Context, message string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, message)
		return 0, false
	}
	return id, true
}
