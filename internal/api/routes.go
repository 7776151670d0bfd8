package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartcowork/cowork-gin/internal/auth"
	"github.com/smartcowork/cowork-gin/internal/config"
	"github.com/smartcowork/cowork-gin/internal/roster"
	"github.com/smartcowork/cowork-gin/internal/websocket"
	"gorm.io/gorm"
)

// Controllers bundles the route handlers for SetupRoutes.
type Controllers struct {
	Auth      *AuthController
	Employees *EmployeeController
	Requests  *RequestController
	Templates *TemplateController
	Approvals *ApprovalController
	Documents *DocumentController
	Calendar  *CalendarController
}

// SetupRoutes builds the gin engine with the full middleware chain and all
// console endpoints. Everything under /api/v1 except login requires a
// bearer token.
func SetupRoutes(
	cfg *config.Config,
	db *gorm.DB,
	rosterProvider *roster.Provider,
	tokens *auth.TokenManager,
	hub *websocket.Hub,
	ctrl *Controllers,
) *gin.Engine {
	if config.IsProduction(cfg) {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(&cfg.CORS))
	router.Use(ErrorHandlerMiddleware())
	if cfg.Tracing.Enabled {
		router.Use(TracingMiddleware())
	}

	healthController := NewHealthController(db, rosterProvider)
	router.GET("/health", healthController.Check)

	router.GET("/metrics", MetricsHandler)

	if hub != nil && tokens != nil {
		router.GET("/ws/changes", websocket.Handler(hub, tokens))
		router.GET("/sse/changes", SSEHandler(hub, tokens))
	}

	router.NoRoute(func(c *gin.Context) {
		Error(c, http.StatusNotFound, "route not found", c.Request.URL.Path)
	})

	v1 := router.Group("/api/v1")

	v1.POST("/auth/login", RateLimitMiddleware(5, 10), ctrl.Auth.Login)

	authed := v1.Group("")
	authed.Use(auth.Middleware(tokens))
	{
		authed.GET("/auth/me", ctrl.Auth.Me)

		authed.GET("/employees", ctrl.Employees.List)

		requests := authed.Group("/requests")
		{
			requests.POST("", ctrl.Requests.Create)
			requests.GET("", ctrl.Requests.List)
			requests.GET("/:id", ctrl.Requests.Get)
			requests.DELETE("/:id", ctrl.Requests.Delete)
			requests.POST("/:id/responses", ctrl.Requests.SubmitResponse)
			requests.GET("/:id/export", ctrl.Requests.Export)
		}
		authed.DELETE("/responses/:id", ctrl.Requests.DeleteResponse)

		templates := authed.Group("/templates")
		{
			templates.POST("", ctrl.Templates.Create)
			templates.GET("", ctrl.Templates.List)
			templates.GET("/:id", ctrl.Templates.Get)
			templates.PUT("/:id", ctrl.Templates.Update)
			templates.DELETE("/:id", ctrl.Templates.Delete)
		}

		approvals := authed.Group("/approvals")
		{
			approvals.POST("", ctrl.Approvals.Create)
			approvals.GET("", ctrl.Approvals.List)
			approvals.GET("/:id", ctrl.Approvals.Get)
			approvals.POST("/:id/approve", ctrl.Approvals.Approve)
			approvals.DELETE("/:id", ctrl.Approvals.Delete)
			approvals.GET("/:id/export", ctrl.Approvals.Export)
		}

		documents := authed.Group("/documents")
		{
			documents.POST("", ctrl.Documents.Create)
			documents.GET("", ctrl.Documents.List)
			documents.GET("/:id", ctrl.Documents.Get)
			documents.PUT("/:id", ctrl.Documents.Update)
			documents.DELETE("/:id", ctrl.Documents.Delete)
		}

		calendar := authed.Group("/calendar")
		{
			calendar.GET("/tasks", ctrl.Calendar.List)
			calendar.GET("/month/:year/:month", ctrl.Calendar.Month)
			calendar.GET("/day/:date", ctrl.Calendar.Day)
			calendar.POST("/tasks/:id/toggle", ctrl.Calendar.ToggleApplied)
		}
	}

	return router
}
