package api

import (
	"github.com/gin-gonic/gin"
	"github.com/smartcowork/cowork-gin/internal/roster"
)

// EmployeeController exposes the roster for target and processor pickers.
type EmployeeController struct {
	roster *roster.Provider
}

// NewEmployeeController creates the roster lookup controller.
func NewEmployeeController(rosterProvider *roster.Provider) *EmployeeController {
	return &EmployeeController{roster: rosterProvider}
}

// List returns roster entries, optionally filtered by the q parameter which
// matches names and employee ids case-insensitively.
func (c *EmployeeController) List(ctx *gin.Context) {
	keyword := ctx.Query("q")
	if keyword == "" {
		Success(ctx, c.roster.All())
		return
	}
	Success(ctx, c.roster.Search(keyword))
}
