package model

import (
	"errors"
	"time"
)

// DocumentModel is a formal document record. Plain CRUD, no state machine.
type DocumentModel struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	DocNo        string    `gorm:"type:varchar(32);not null" json:"docNo"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Content      string    `gorm:"type:text" json:"content"`
	Dept         string    `gorm:"type:varchar(64)" json:"dept"`
	EnforcerName string    `gorm:"type:varchar(64);not null" json:"enforcerName"`
	EnforcedAt   time.Time `gorm:"not null" json:"enforcedAt"`
	CreatedAt    time.Time `gorm:"not null;index" json:"createdAt"`
	CreatedBy    string    `gorm:"type:varchar(64)" json:"createdBy"`
}

// TableName specifies the table name.
func (DocumentModel) TableName() string {
	return "documents"
}

// Validate checks the document model before persisting.
func (dm *DocumentModel) Validate() error {
	if dm.ID == "" {
		return errors.New("document ID is required")
	}
	if dm.Title == "" {
		return errors.New("document title is required")
	}
	if dm.EnforcerName == "" {
		return errors.New("enforcer name is required")
	}
	return nil
}
