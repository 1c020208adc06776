package middleware

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/masakimorita/work-report-api/internal/constants"
	apierrors "github.com/masakimorita/work-report-api/internal/errors"
)

// The cookie store serializes session values with gob, which needs
// concrete slice types registered up front.
func init() {
	gob.Register([]string{})
}

// RequireLogin checks if the user is authenticated via session
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username := session.Get(constants.SessionKeyUsername)

		if username == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.SessionKeyUsername, username)
		c.Set(constants.SessionKeyRole, session.Get(constants.SessionKeyRole))
		c.Set(constants.SessionKeyJobCategories, session.Get(constants.SessionKeyJobCategories))
		c.Next()
	}
}

// RequireAdmin checks the session role on top of RequireLogin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username := session.Get(constants.SessionKeyUsername)

		if username == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if role, _ := session.Get(constants.SessionKeyRole).(string); role != constants.RoleAdmin {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Set(constants.SessionKeyUsername, username)
		c.Set(constants.SessionKeyRole, session.Get(constants.SessionKeyRole))
		c.Set(constants.SessionKeyJobCategories, session.Get(constants.SessionKeyJobCategories))
		c.Next()
	}
}

// GetUsername retrieves the current username from context
func GetUsername(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.SessionKeyUsername)
	if !exists {
		return "", false
	}
	username, ok := value.(string)
	return username, ok
}

// GetRole retrieves the current role from context
func GetRole(c *gin.Context) string {
	value, exists := c.Get(constants.SessionKeyRole)
	if !exists {
		return ""
	}
	role, _ := value.(string)
	return role
}

// GetJobCategories retrieves the current user's job categories from
// context. Sessions serialize the slice as []interface{}, so both
// shapes are accepted.
func GetJobCategories(c *gin.Context) []string {
	value, exists := c.Get(constants.SessionKeyJobCategories)
	if !exists {
		return nil
	}
	switch v := value.(type) {
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
		return nil
	}
}
