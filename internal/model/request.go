package model

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

// RequestModel is one data-collection request: a template instantiation
// addressed to one or more target employees. Items are snapshotted at
// creation time; later template edits do not touch existing requests.
type RequestModel struct {
	ID            string                      `gorm:"primaryKey;type:varchar(64)" json:"id"`
	RequestNo     string                      `gorm:"type:varchar(32);not null" json:"requestNo"`
	Title         string                      `gorm:"type:varchar(255);not null" json:"title"`
	RequesterID   string                      `gorm:"type:varchar(64);not null;index" json:"requesterId"`
	RequesterName string                      `gorm:"type:varchar(64);not null" json:"requesterName"`
	TargetIDs     datatypes.JSONSlice[string] `gorm:"not null" json:"targetIds"`
	Items         datatypes.JSONSlice[Item]   `gorm:"not null" json:"items"`
	CreatedAt     time.Time                   `gorm:"not null;index" json:"createdAt"`
}

// TableName specifies the table name.
func (RequestModel) TableName() string {
	return "requests"
}

// Validate checks the request model before persisting.
func (rm *RequestModel) Validate() error {
	if rm.ID == "" {
		return errors.New("request ID is required")
	}
	if rm.Title == "" {
		return errors.New("request title is required")
	}
	if rm.RequesterID == "" {
		return errors.New("requester ID is required")
	}
	if len(rm.TargetIDs) == 0 {
		return errors.New("at least one target is required")
	}
	return ValidateItems(rm.Items)
}

// IsTarget reports whether the employee is one of the request's targets.
func (rm *RequestModel) IsTarget(employeeID string) bool {
	for _, id := range rm.TargetIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}
