package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vytara-server/internal/models"
	"vytara-server/internal/utils"
	"vytara-server/internal/workspace"
)

// DocumentHandler handles the document vault. Only metadata is kept.
type DocumentHandler struct {
	Logger *zap.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{Logger: logger}
}

// CreateDocumentRequest represents the request body for filing a document.
type CreateDocumentRequest struct {
	Name        string                  `json:"name" validate:"required"`
	Category    models.DocumentCategory `json:"category" validate:"required,oneof=lab-reports prescriptions insurance bills"`
	Owner       string                  `json:"owner"`
	RecentVisit string                  `json:"recentVisit"`
}

// SummaryRequest selects whose documents to summarize.
type SummaryRequest struct {
	Owner string `json:"owner"`
}

// SummaryResponse carries the generated summary.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// GetDocuments lists documents filtered by ?owner= and ?category=.
func (h *DocumentHandler) GetDocuments(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	docs := ws.Documents(c.Query("owner"), models.DocumentCategory(c.Query("category")))
	utils.Success(c, "Documents fetched successfully", docs)
}

// CreateDocument files a new document dated today.
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	var req CreateDocumentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	doc, err := ws.AddDocument(models.Document{
		Name:        req.Name,
		Category:    req.Category,
		Owner:       req.Owner,
		RecentVisit: req.RecentVisit,
	})
	if err != nil {
		respondValidation(c, err)
		return
	}
	h.Logger.Debug("document added", zap.String("user", ws.User()), zap.String("document_id", doc.ID))
	utils.Created(c, "Document added successfully", doc)
}

// DeleteDocument removes a document by id.
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	if err := ws.DeleteDocument(c.Param("id")); err != nil {
		if errors.Is(err, workspace.ErrDocumentNotFound) {
			utils.NotFound(c, "Document not found")
			return
		}
		utils.InternalServerError(c, "Failed to delete document")
		return
	}
	utils.Success(c, "Document deleted successfully", nil)
}

// Summarize returns the canned summary of recent documents.
func (h *DocumentHandler) Summarize(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	var req SummaryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid request payload: "+err.Error())
			return
		}
	}
	utils.Success(c, "Summary generated successfully", SummaryResponse{Summary: ws.SummarizeDocuments(req.Owner)})
}
