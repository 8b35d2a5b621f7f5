package handlers

import (
	"github.com/gin-gonic/gin"

	"vytara-server/internal/middleware"
	"vytara-server/internal/utils"
	"vytara-server/internal/workspace"
)

// currentWorkspace writes a 401 and returns false when the request carries
// no workspace.
func currentWorkspace(c *gin.Context) (*workspace.Workspace, bool) {
	ws, ok := middleware.GetWorkspaceFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	return ws, true
}
