package model

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

// TemplateModel is a reusable work template: a named, ordered list of typed
// input items, optionally carrying a default processor for approvals.
// Deleting a template is destructive; requests keep their own item snapshots.
type TemplateModel struct {
	ID                 string                    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title              string                    `gorm:"type:varchar(255);not null" json:"title"`
	Description        string                    `gorm:"type:text" json:"description"`
	Items              datatypes.JSONSlice[Item] `gorm:"not null" json:"items"`
	DefaultProcessorID string                    `gorm:"type:varchar(64)" json:"defaultProcessorId"`
	CreatedAt          time.Time                 `gorm:"not null;index" json:"createdAt"`
	UpdatedAt          time.Time                 `gorm:"not null" json:"updatedAt"`
	CreatedBy          string                    `gorm:"type:varchar(64)" json:"createdBy"`
}

// TableName specifies the table name.
func (TemplateModel) TableName() string {
	return "work_templates"
}

// Validate checks the template model before persisting.
func (tm *TemplateModel) Validate() error {
	if tm.ID == "" {
		return errors.New("template ID is required")
	}
	if tm.Title == "" {
		return errors.New("template title is required")
	}
	return ValidateItems(tm.Items)
}
