package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartcowork/cowork-gin/internal/auth"
	"github.com/smartcowork/cowork-gin/internal/service"
)

// TemplateController serves the work template endpoints.
type TemplateController struct {
	templates service.TemplateService
}

// NewTemplateController creates the template controller.
func NewTemplateController(templates service.TemplateService) *TemplateController {
	return &TemplateController{templates: templates}
}

// Create registers a new work template.
func (c *TemplateController) Create(ctx *gin.Context) {
	var input service.TemplateInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	template, err := c.templates.Create(&input, auth.CurrentUser(ctx))
	if handleServiceError(ctx, err, "create template") {
		return
	}

	Success(ctx, template)
}

// List returns all templates.
func (c *TemplateController) List(ctx *gin.Context) {
	templates, err := c.templates.List()
	if handleServiceError(ctx, err, "list templates") {
		return
	}
	Success(ctx, templates)
}

// Get returns one template.
func (c *TemplateController) Get(ctx *gin.Context) {
	template, err := c.templates.Get(ctx.Param("id"))
	if handleServiceError(ctx, err, "get template") {
		return
	}
	Success(ctx, template)
}

// Update rewrites a template in place.
func (c *TemplateController) Update(ctx *gin.Context) {
	var input service.TemplateInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	template, err := c.templates.Update(ctx.Param("id"), &input)
	if handleServiceError(ctx, err, "update template") {
		return
	}

	Success(ctx, template)
}

// Delete removes a template.
func (c *TemplateController) Delete(ctx *gin.Context) {
	err := c.templates.Delete(ctx.Param("id"))
	if handleServiceError(ctx, err, "delete template") {
		return
	}
	Success(ctx, nil)
}
