package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/mfg-tool-dashboard/internal/constants"
	apierrors "github.com/yukikurage/mfg-tool-dashboard/internal/errors"
	"github.com/yukikurage/mfg-tool-dashboard/internal/logger"
	"github.com/yukikurage/mfg-tool-dashboard/internal/models"
	"github.com/yukikurage/mfg-tool-dashboard/internal/services"
)

// LoadUser resolves the session user from the store on every request and
// stores it in the context. Requests without a valid session continue anonymously.
func LoadUser(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolveUser(c, authService)
		c.Next()
	}
}

// RequireAuth checks if the user is authenticated via session
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUser(c); !ok {
			if !resolveUser(c, authService) {
				if c.IsAborted() {
					return
				}
				if WantsJSON(c) {
					apierrors.Unauthorized(c, "")
				} else {
					AddFlash(c, constants.FlashInfo, "Please log in to access this page.")
					c.Redirect(http.StatusFound, "/login")
				}
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// RequireAdmin rejects authenticated callers without the admin flag
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c)
		if !ok || !user.IsAdmin {
			if WantsJSON(c) {
				apierrors.Forbidden(c, "Admin access required")
			} else {
				AddFlash(c, constants.FlashError, "Admin access required.")
				c.Redirect(http.StatusFound, "/")
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireOperator keeps admins out of the operator views
func RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if user.IsAdmin {
			if WantsJSON(c) {
				apierrors.Forbidden(c, "This action is only available to tool operators")
			} else {
				c.Redirect(http.StatusFound, "/admin")
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUser retrieves the current user from context
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

// Identity returns the caller's identity, anonymous when no session user was resolved
func Identity(c *gin.Context) models.Identity {
	if user, ok := GetUser(c); ok {
		return user
	}
	return models.Anonymous{}
}

// WantsJSON reports whether the caller expects a JSON answer instead of a redirect.
// Everything except plain browser GETs is treated as an API call.
func WantsJSON(c *gin.Context) bool {
	if c.Request.Method != http.MethodGet {
		return true
	}
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json") ||
		c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

// resolveUser loads the session user into the context. A session naming a user
// that no longer exists is cleared.
func resolveUser(c *gin.Context, authService *services.AuthService) bool {
	session := sessions.Default(c)
	userID, ok := toUint64(session.Get(constants.SessionKeyUserID))
	if !ok {
		return false
	}

	user, err := authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			session.Delete(constants.SessionKeyUserID)
			if err := session.Save(); err != nil {
				logger.From(c.Request.Context()).Error("Failed to clear stale session", "error", err)
			}
			return false
		}
		logger.From(c.Request.Context()).Error("Failed to resolve session user", "error", err, "user_id", userID)
		apierrors.InternalError(c, "Failed to load session user")
		c.Abort()
		return false
	}

	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set(constants.ContextKeyUser, user)
	c.Request = c.Request.WithContext(logger.With(c.Request.Context(), "user_id", user.ID))
	return true
}

func toUint64(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
