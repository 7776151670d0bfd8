package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/smartcowork/cowork-gin/internal/model"
	"github.com/smartcowork/cowork-gin/internal/repository"
	"github.com/smartcowork/cowork-gin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedTask(t *testing.T, db *gorm.DB, name string, start, end time.Time) *model.CalendarTaskModel {
	task := &model.CalendarTaskModel{
		ID:            uuid.NewString(),
		Name:          name,
		StartDate:     start,
		EndDate:       end,
		RelatedSystem: "ERP",
		CreatedAt:     time.Now(),
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func newCalendarService(t *testing.T) (service.CalendarService, *gorm.DB) {
	db := setupTestDB(t)
	return service.NewCalendarService(repository.NewCalendarRepository(db), nil, nil), db
}

func TestCalendarService_Month(t *testing.T) {
	calendar, db := newCalendarService(t)

	seedTask(t, db, "ERP patch",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local),
		time.Date(2026, 3, 5, 0, 0, 0, 0, time.Local))

	view, err := calendar.Month(2026, time.March)
	require.NoError(t, err)
	assert.Equal(t, 2026, view.Year)
	assert.Equal(t, 3, view.Month)
	require.Len(t, view.Days, 31)

	// Active on every day of the inclusive range, absent outside it.
	for day := 0; day < 5; day++ {
		assert.Len(t, view.Days[day].Tasks, 1, "day %s", view.Days[day].Date)
	}
	assert.Empty(t, view.Days[5].Tasks)
}

func TestCalendarService_Month_SpanningBoundary(t *testing.T) {
	calendar, db := newCalendarService(t)

	seedTask(t, db, "Quarter close",
		time.Date(2026, 2, 27, 0, 0, 0, 0, time.Local),
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local))

	view, err := calendar.Month(2026, time.March)
	require.NoError(t, err)
	assert.Len(t, view.Days[0].Tasks, 1)
	assert.Len(t, view.Days[1].Tasks, 1)
	assert.Empty(t, view.Days[2].Tasks)
}

func TestCalendarService_TasksOn(t *testing.T) {
	calendar, db := newCalendarService(t)

	seedTask(t, db, "ERP patch",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local),
		time.Date(2026, 3, 5, 0, 0, 0, 0, time.Local))

	// Time of day is ignored on both sides.
	tasks, err := calendar.TasksOn(time.Date(2026, 3, 5, 23, 30, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	tasks, err = calendar.TasksOn(time.Date(2026, 3, 6, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCalendarService_ToggleApplied(t *testing.T) {
	calendar, db := newCalendarService(t)

	seeded := seedTask(t, db, "ERP patch",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local),
		time.Date(2026, 3, 5, 0, 0, 0, 0, time.Local))

	toggled, err := calendar.ToggleApplied(seeded.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Applied)

	toggled, err = calendar.ToggleApplied(seeded.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Applied)
}
