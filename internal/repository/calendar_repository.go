package repository

import (
	"time"

	"github.com/smartcowork/cowork-gin/internal/model"
	"gorm.io/gorm"
)

// CalendarRepository reads the externally populated AI task table and
// toggles the applied flag; rows are never created or deleted here.
type CalendarRepository interface {
	FindAll() ([]*model.CalendarTaskModel, error)
	FindByID(id string) (*model.CalendarTaskModel, error)
	FindOverlapping(start, end time.Time) ([]*model.CalendarTaskModel, error)
	SetApplied(id string, applied bool) error
}

type calendarRepository struct {
	db *gorm.DB
}

// NewCalendarRepository creates a calendar repository.
func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) FindAll() ([]*model.CalendarTaskModel, error) {
	var tasks []*model.CalendarTaskModel
	err := r.db.Order("start_date ASC").Find(&tasks).Error
	return tasks, err
}

func (r *calendarRepository) FindByID(id string) (*model.CalendarTaskModel, error) {
	var task model.CalendarTaskModel
	if err := r.db.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindOverlapping returns tasks whose [start_date, end_date] range touches
// the given window.
func (r *calendarRepository) FindOverlapping(start, end time.Time) ([]*model.CalendarTaskModel, error) {
	var tasks []*model.CalendarTaskModel
	err := r.db.Where("start_date <= ? AND end_date >= ?", end, start).
		Order("start_date ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *calendarRepository) SetApplied(id string, applied bool) error {
	return r.db.Model(&model.CalendarTaskModel{}).
		Where("id = ?", id).
		Update("applied", applied).Error
}
