package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartcowork/cowork-gin/internal/auth"
	"github.com/smartcowork/cowork-gin/internal/service"
)

// DocumentController serves the document archive endpoints.
type DocumentController struct {
	documents service.DocumentService
}

// NewDocumentController creates the document controller.
func NewDocumentController(documents service.DocumentService) *DocumentController {
	return &DocumentController{documents: documents}
}

// Create registers a new document.
func (c *DocumentController) Create(ctx *gin.Context) {
	var input service.DocumentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	document, err := c.documents.Create(&input, auth.CurrentUser(ctx))
	if handleServiceError(ctx, err, "create document") {
		return
	}

	Success(ctx, document)
}

// List returns all documents, newest first.
func (c *DocumentController) List(ctx *gin.Context) {
	documents, err := c.documents.List()
	if handleServiceError(ctx, err, "list documents") {
		return
	}
	Success(ctx, documents)
}

// Get returns one document.
func (c *DocumentController) Get(ctx *gin.Context) {
	document, err := c.documents.Get(ctx.Param("id"))
	if handleServiceError(ctx, err, "get document") {
		return
	}
	Success(ctx, document)
}

// Update rewrites the editable fields of a document.
func (c *DocumentController) Update(ctx *gin.Context) {
	var input service.DocumentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	document, err := c.documents.Update(ctx.Param("id"), &input)
	if handleServiceError(ctx, err, "update document") {
		return
	}

	Success(ctx, document)
}

// Delete removes a document.
func (c *DocumentController) Delete(ctx *gin.Context) {
	err := c.documents.Delete(ctx.Param("id"))
	if handleServiceError(ctx, err, "delete document") {
		return
	}
	Success(ctx, nil)
}
