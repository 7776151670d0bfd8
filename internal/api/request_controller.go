package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/smartcowork/cowork-gin/internal/auth"
	"github.com/smartcowork/cowork-gin/internal/service"
)

// RequestController serves the data-collection ledger endpoints.
type RequestController struct {
	requests service.RequestService
}

// NewRequestController creates the data-collection controller.
func NewRequestController(requests service.RequestService) *RequestController {
	return &RequestController{requests: requests}
}

// Create registers a new data-collection request.
func (c *RequestController) Create(ctx *gin.Context) {
	var input service.CreateRequestInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	request, err := c.requests.Create(&input, auth.CurrentUser(ctx))
	if handleServiceError(ctx, err, "create request") {
		return
	}

	Success(ctx, request)
}

// List returns the requests the caller issued or is targeted by.
func (c *RequestController) List(ctx *gin.Context) {
	summaries, err := c.requests.ListVisible(auth.CurrentUser(ctx))
	if handleServiceError(ctx, err, "list requests") {
		return
	}
	Success(ctx, summaries)
}

// Get returns the full reconciliation view of one request.
func (c *RequestController) Get(ctx *gin.Context) {
	detail, err := c.requests.Get(ctx.Param("id"))
	if handleServiceError(ctx, err, "get request") {
		return
	}
	Success(ctx, detail)
}

// Delete removes a request and its responses.
func (c *RequestController) Delete(ctx *gin.Context) {
	err := c.requests.Delete(ctx.Param("id"), auth.CurrentUser(ctx))
	if handleServiceError(ctx, err, "delete request") {
		return
	}
	Success(ctx, nil)
}

type submitResponseRequest struct {
	Values        map[string]string `json:"values"`
	NotApplicable bool              `json:"notApplicable"`
}

// SubmitResponse records the caller's submission for a request.
func (c *RequestController) SubmitResponse(ctx *gin.Context) {
	var req submitResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	response, err := c.requests.SubmitResponse(ctx.Param("id"), auth.CurrentUser(ctx), req.Values, req.NotApplicable)
	if handleServiceError(ctx, err, "submit response") {
		return
	}

	Success(ctx, response)
}

// DeleteResponse removes one submission.
func (c *RequestController) DeleteResponse(ctx *gin.Context) {
	err := c.requests.DeleteResponse(ctx.Param("id"), auth.CurrentUser(ctx))
	if handleServiceError(ctx, err, "delete response") {
		return
	}
	Success(ctx, nil)
}

// Export streams the CSV download. exclude_na=true drops not-applicable
// rows instead of rendering placeholders.
func (c *RequestController) Export(ctx *gin.Context) {
	excludeNA := ctx.Query("exclude_na") == "true"

	filename, data, err := c.requests.Export(ctx.Param("id"), excludeNA)
	if handleServiceError(ctx, err, "export request") {
		return
	}

	writeCSVDownload(ctx, filename, data)
}

// writeCSVDownload sets the download headers. The RFC 5987 filename* form
// carries the Korean filename; the plain filename is an ASCII fallback.
func writeCSVDownload(ctx *gin.Context, filename string, data []byte) {
	ctx.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="export.csv"; filename*=UTF-8''%s`, url.PathEscape(filename)))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
