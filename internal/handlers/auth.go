package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/masakimorita/work-report-api/internal/constants"
	apierrors "github.com/masakimorita/work-report-api/internal/errors"
	"github.com/masakimorita/work-report-api/internal/middleware"
	"github.com/masakimorita/work-report-api/internal/services"
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

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	categories := user.JobCategories
	if categories == nil {
		categories = []string{}
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyUsername, user.Username)
	session.Set(constants.SessionKeyRole, user.Role)
	session.Set(constants.SessionKeyJobCategories, categories)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"username":       user.Username,
		"role":           user.Role,
		"job_categories": categories,
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Check reports whether the caller holds a live session.
func (h *AuthHandler) Check(c *gin.Context) {
	session := sessions.Default(c)
	username := session.Get(constants.SessionKeyUsername)
	if username == nil {
		c.JSON(http.StatusOK, gin.H{"logged_in": false})
		return
	}

	role, _ := session.Get(constants.SessionKeyRole).(string)
	categories := sessionCategories(session)

	c.JSON(http.StatusOK, gin.H{
		"logged_in":      true,
		"username":       username,
		"role":           role,
		"job_categories": categories,
	})
}

// sessionCategories reads the category list out of the session,
// tolerating the []interface{} shape the cookie codec produces.
func sessionCategories(session sessions.Session) []string {
	switch v := session.Get(constants.SessionKeyJobCategories).(type) {
	case []string:
		return v
	case []interface{}:
		categories := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				categories = append(categories, s)
			}
		}
		return categories
	default:
		return []string{}
	}
}

// requestCategories reads the caller's categories from the request
// context populated by the auth middleware.
func requestCategories(c *gin.Context) []string {
	categories := middleware.GetJobCategories(c)
	if categories == nil {
		categories = []string{}
	}
	return categories
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingCredentials):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	default:
		apierrors.StorageFailure(c, "")
	}
}
