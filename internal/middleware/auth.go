package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"vytara-server/internal/config"
	"vytara-server/internal/utils"
	"vytara-server/internal/workspace"
)

const (
	usernameKey  = "username"
	workspaceKey = "workspace"
)

// AuthMiddleware creates a middleware for JWT authentication.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], cfg.JWTSecret)
		if err != nil {
			utils.Unauthorized(c, "Invalid token: "+err.Error())
			c.Abort()
			return
		}

		c.Set(usernameKey, claims.Username)
		c.Next()
	}
}

// WorkspaceMiddleware loads the caller's open workspace. It should be used
// *after* AuthMiddleware.
func WorkspaceMiddleware(registry *workspace.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := GetUsernameFromContext(c)
		if !ok {
			utils.InternalServerError(c, "Username not found in context. AuthMiddleware might be missing.")
			c.Abort()
			return
		}

		ws, err := registry.Get(username)
		if err != nil {
			utils.Unauthorized(c, "Session expired, please log in again")
			c.Abort()
			return
		}

		c.Set(workspaceKey, ws)
		c.Next()
	}
}

// GetUsernameFromContext returns the authenticated username.
func GetUsernameFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get(usernameKey)
	if !exists {
		return "", false
	}
	name, ok := v.(string)
	return name, ok && name != ""
}

// GetWorkspaceFromContext returns the workspace set by WorkspaceMiddleware.
func GetWorkspaceFromContext(c *gin.Context) (*workspace.Workspace, bool) {
	v, exists := c.Get(workspaceKey)
	if !exists {
		return nil, false
	}
	ws, ok := v.(*workspace.Workspace)
	return ws, ok
}
