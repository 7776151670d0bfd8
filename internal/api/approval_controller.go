package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartcowork/cowork-gin/internal/auth"
	"github.com/smartcowork/cowork-gin/internal/service"
)

// ApprovalController serves the work approval ledger endpoints.
type ApprovalController struct {
	approvals service.ApprovalService
}

// NewApprovalController creates the approval controller.
func NewApprovalController(approvals service.ApprovalService) *ApprovalController {
	return &ApprovalController{approvals: approvals}
}

// Create registers a new approval request.
func (c *ApprovalController) Create(ctx *gin.Context) {
	var input service.CreateApprovalInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	approval, err := c.approvals.Create(&input, auth.CurrentUser(ctx))
	if handleServiceError(ctx, err, "create approval request") {
		return
	}

	Success(ctx, approval)
}

// List returns approvals where the caller is requester or processor.
func (c *ApprovalController) List(ctx *gin.Context) {
	approvals, err := c.approvals.ListInvolving(auth.CurrentUser(ctx).EmployeeID)
	if handleServiceError(ctx, err, "list approval requests") {
		return
	}
	Success(ctx, approvals)
}

// Get returns one approval request.
func (c *ApprovalController) Get(ctx *gin.Context) {
	approval, err := c.approvals.Get(ctx.Param("id"))
	if handleServiceError(ctx, err, "get approval request") {
		return
	}
	Success(ctx, approval)
}

// Approve transitions a pending request to approved.
func (c *ApprovalController) Approve(ctx *gin.Context) {
	approval, err := c.approvals.Approve(ctx.Param("id"), auth.CurrentUser(ctx))
	if handleServiceError(ctx, err, "approve request") {
		return
	}
	Success(ctx, approval)
}

// Delete removes an approval request.
func (c *ApprovalController) Delete(ctx *gin.Context) {
	err := c.approvals.Delete(ctx.Param("id"), auth.CurrentUser(ctx))
	if handleServiceError(ctx, err, "delete approval request") {
		return
	}
	Success(ctx, nil)
}

// Export streams the approval CSV download.
func (c *ApprovalController) Export(ctx *gin.Context) {
	filename, data, err := c.approvals.Export(ctx.Param("id"))
	if handleServiceError(ctx, err, "export approval request") {
		return
	}
	writeCSVDownload(ctx, filename, data)
}
