package handlers

import (
	"github.com/gin-gonic/gin"

	"vytara-server/internal/models"
	"vytara-server/internal/utils"
)

// InsuranceHandler handles insurance policies.
type InsuranceHandler struct{}

// NewInsuranceHandler creates a new InsuranceHandler.
func NewInsuranceHandler() *InsuranceHandler {
	return &InsuranceHandler{}
}

// GetPolicies lists the caller's policies.
func (h *InsuranceHandler) GetPolicies(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	utils.Success(c, "Policies fetched successfully", ws.Policies())
}

// CreatePolicy adds a policy.
func (h *InsuranceHandler) CreatePolicy(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	var req models.InsurancePolicy
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	policy, err := ws.AddPolicy(req)
	if err != nil {
		respondValidation(c, err)
		return
	}
	utils.Created(c, "Policy added successfully", policy)
}
