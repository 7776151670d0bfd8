package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartcowork/cowork-gin/internal/roster"
	"gorm.io/gorm"
)

// HealthController reports database and roster readiness.
type HealthController struct {
	db     *gorm.DB
	roster *roster.Provider
}

// NewHealthController creates a health check controller.
func NewHealthController(db *gorm.DB, rosterProvider *roster.Provider) *HealthController {
	return &HealthController{
		db:     db,
		roster: rosterProvider,
	}
}

// Check responds 200 when all dependencies are reachable, 503 otherwise.
func (c *HealthController) Check(ctx *gin.Context) {
	status := "healthy"
	checks := make(map[string]string)

	if c.db != nil {
		if err := c.checkDatabase(ctx.Request.Context()); err != nil {
			status = "unhealthy"
			checks["database"] = "unhealthy: " + err.Error()
		} else {
			checks["database"] = "healthy"
		}
	} else {
		checks["database"] = "not configured"
	}

	if c.roster != nil {
		if len(c.roster.All()) == 0 {
			status = "unhealthy"
			checks["roster"] = "unhealthy: roster is empty"
		} else {
			checks["roster"] = "healthy"
		}
	} else {
		checks["roster"] = "not configured"
	}

	httpStatus := http.StatusOK
	if status == "unhealthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	ctx.JSON(httpStatus, gin.H{
		"status":    status,
		"timestamp": time.Now().Unix(),
		"checks":    checks,
	})
}

func (c *HealthController) checkDatabase(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}
