package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartcowork/cowork-gin/internal/auth"
	"github.com/smartcowork/cowork-gin/internal/roster"
)

// AuthController issues session tokens against the roster file.
type AuthController struct {
	roster *roster.Provider
	tokens *auth.TokenManager
}

// NewAuthController creates the login controller.
func NewAuthController(rosterProvider *roster.Provider, tokens *auth.TokenManager) *AuthController {
	return &AuthController{roster: rosterProvider, tokens: tokens}
}

type loginRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token    string           `json:"token"`
	Employee *roster.Employee `json:"employee"`
}

// Login checks the credentials against the roster and returns a bearer
// token plus the employee's public profile.
func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	emp, err := c.roster.Authenticate(req.EmployeeID, req.Password)
	if err != nil {
		if errors.Is(err, roster.ErrInvalidCredentials) {
			Error(ctx, http.StatusUnauthorized, "login failed", err.Error())
			return
		}
		Error(ctx, http.StatusInternalServerError, "failed to authenticate", err.Error())
		return
	}

	token, err := c.tokens.Issue(emp)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	Success(ctx, loginResponse{Token: token, Employee: emp})
}

// Me returns the authenticated identity from the bearer token.
func (c *AuthController) Me(ctx *gin.Context) {
	identity := auth.CurrentUser(ctx)
	if identity == nil {
		Error(ctx, http.StatusUnauthorized, "not authenticated", "")
		return
	}
	Success(ctx, identity)
}
