package model

import (
	"errors"
	"time"
)

// CalendarTaskModel is a date-ranged task written by the external AI
// analyzer. This server only reads rows and toggles the Applied flag.
type CalendarTaskModel struct {
	ID            string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	StartDate     time.Time `gorm:"not null;index" json:"startDate"`
	EndDate       time.Time `gorm:"not null;index" json:"endDate"`
	RelatedSystem string    `gorm:"type:varchar(128)" json:"relatedSystem"`
	Applied       bool      `gorm:"not null;default:false" json:"applied"`
	CreatedAt     time.Time `gorm:"not null;index" json:"createdAt"`
}

// TableName specifies the table name.
func (CalendarTaskModel) TableName() string {
	return "ai_analyzed_tasks"
}

// Validate checks the calendar task before persisting.
func (cm *CalendarTaskModel) Validate() error {
	if cm.ID == "" {
		return errors.New("task ID is required")
	}
	if cm.Name == "" {
		return errors.New("task name is required")
	}
	if cm.EndDate.Before(cm.StartDate) {
		return errors.New("end date precedes start date")
	}
	return nil
}

// ActiveOn reports whether the task covers the given day. The time of day is
// stripped on both sides; the [start, end] range is inclusive.
func (cm *CalendarTaskModel) ActiveOn(day time.Time) bool {
	d := truncateDay(day)
	return !d.Before(truncateDay(cm.StartDate)) && !d.After(truncateDay(cm.EndDate))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
