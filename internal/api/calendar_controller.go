package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartcowork/cowork-gin/internal/service"
)

// CalendarController serves the AI task calendar projections.
type CalendarController struct {
	calendar service.CalendarService
}

// NewCalendarController creates the calendar controller.
func NewCalendarController(calendar service.CalendarService) *CalendarController {
	return &CalendarController{calendar: calendar}
}

// List returns every analyzed task.
func (c *CalendarController) List(ctx *gin.Context) {
	tasks, err := c.calendar.List()
	if handleServiceError(ctx, err, "list tasks") {
		return
	}
	Success(ctx, tasks)
}

// Month returns the per-day projection for one month.
func (c *CalendarController) Month(ctx *gin.Context) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid year", err.Error())
		return
	}
	month, err := strconv.Atoi(ctx.Param("month"))
	if err != nil || month < 1 || month > 12 {
		Error(ctx, http.StatusBadRequest, "invalid month", "month must be 1-12")
		return
	}

	view, err := c.calendar.Month(year, time.Month(month))
	if handleServiceError(ctx, err, "build month view") {
		return
	}
	Success(ctx, view)
}

// Day returns the tasks active on one date (YYYY-MM-DD).
func (c *CalendarController) Day(ctx *gin.Context) {
	day, err := time.ParseInLocation("2006-01-02", ctx.Param("date"), time.Local)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	tasks, err := c.calendar.TasksOn(day)
	if handleServiceError(ctx, err, "list tasks for day") {
		return
	}
	Success(ctx, tasks)
}

// ToggleApplied flips the applied flag on one task.
func (c *CalendarController) ToggleApplied(ctx *gin.Context) {
	task, err := c.calendar.ToggleApplied(ctx.Param("id"))
	if handleServiceError(ctx, err, "toggle task") {
		return
	}
	Success(ctx, task)
}
