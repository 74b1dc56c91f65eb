package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/mfg-tool-dashboard/internal/errors"
	"github.com/yukikurage/mfg-tool-dashboard/internal/importer"
	"github.com/yukikurage/mfg-tool-dashboard/internal/logger"
	"github.com/yukikurage/mfg-tool-dashboard/internal/services"
)

// respondError maps service and importer failures onto the API error taxonomy.
// Unexpected errors surface their message; this is an internal tool.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var headerErr *importer.HeaderError

	switch {
	case errors.As(err, &validationErr):
		apierrors.MissingFields(c, validationErr.Message, validationErr.Fields)
	case errors.As(err, &headerErr):
		apierrors.MissingFields(c, headerErr.Error(), headerErr.Missing)
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, "Invalid employee ID or password.")
	case errors.Is(err, services.ErrNotAuthenticated):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, services.ErrToolNotAssigned):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNoToolAssigned):
		apierrors.BadRequest(c, "No tool assigned to your account")
	case errors.Is(err, services.ErrInvalidAssignedTool):
		apierrors.BadRequest(c, "Assigned tool does not exist")
	case errors.Is(err, services.ErrCannotDeleteSelf):
		apierrors.InvalidOperation(c, "Cannot delete your own account")
	case errors.Is(err, services.ErrEmployeeIDExists):
		apierrors.Conflict(c, "Employee ID already exists")
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrToolNotFound),
		errors.Is(err, importer.ErrSourceNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, importer.ErrUnreadable):
		logger.From(c.Request.Context()).Error("CSV source unreadable", "error", err)
		apierrors.IOError(c, err.Error())
	default:
		logger.From(c.Request.Context()).Error("Request failed", "error", err)
		_ = c.Error(err)
		apierrors.InternalError(c, err.Error())
	}
}
