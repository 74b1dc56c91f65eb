package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/mfg-tool-dashboard/internal/constants"
	"github.com/yukikurage/mfg-tool-dashboard/internal/dto"
	apierrors "github.com/yukikurage/mfg-tool-dashboard/internal/errors"
	"github.com/yukikurage/mfg-tool-dashboard/internal/middleware"
	"github.com/yukikurage/mfg-tool-dashboard/internal/models"
	"github.com/yukikurage/mfg-tool-dashboard/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginPage shows pending messages, or sends a logged-in caller to their dashboard.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if user, ok := middleware.GetUser(c); ok {
		c.Redirect(http.StatusFound, homeFor(user))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"flashes": middleware.Flashes(c),
	})
}

// Login authenticates a user and initializes the session.
// Form posts are answered with a redirect, JSON posts with JSON.
func (h *AuthHandler) Login(c *gin.Context) {
	isJSON := c.ContentType() == gin.MIMEJSON

	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		EmployeeID: req.EmployeeID,
		Password:   req.Password,
	})
	if err != nil {
		if !isJSON && errors.Is(err, services.ErrInvalidCredentials) {
			middleware.AddFlash(c, constants.FlashError, "Invalid employee ID or password.")
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		respondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.SessionKeyUserID, user.ID)
	session.AddFlash(fmt.Sprintf("Welcome back, %s!", user.FullName()), constants.FlashSuccess)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	if !isJSON {
		c.Redirect(http.StatusSeeOther, homeFor(user))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  fmt.Sprintf("Welcome back, %s!", user.FullName()),
		"redirect": homeFor(user),
		"user":     dto.ToUserDTO(*user),
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.AddFlash("You have been logged out.", constants.FlashInfo)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func homeFor(user *models.User) string {
	if user.IsAdmin {
		return "/admin"
	}
	return "/user/dashboard"
}
