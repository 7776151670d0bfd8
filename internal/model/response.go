package model

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

// ResponseModel is one target employee's submission for a request. When
// NotApplicable is set the value map is empty and ignored by consumers.
// There is deliberately no uniqueness constraint on (request_id, target_id);
// the submit path gates duplicates the same way the console UI did.
type ResponseModel struct {
	ID            string                                `gorm:"primaryKey;type:varchar(64)" json:"id"`
	RequestID     string                                `gorm:"type:varchar(64);not null;index" json:"requestId"`
	TargetID      string                                `gorm:"type:varchar(64);not null;index" json:"targetId"`
	TargetName    string                                `gorm:"type:varchar(64);not null" json:"targetName"`
	Values        datatypes.JSONType[map[string]string] `json:"values"`
	NotApplicable bool                                  `gorm:"not null;default:false" json:"notApplicable"`
	SubmittedAt   time.Time                             `gorm:"not null;index" json:"submittedAt"`
}

// TableName specifies the table name.
func (ResponseModel) TableName() string {
	return "responses"
}

// Validate checks the response model before persisting.
func (rm *ResponseModel) Validate() error {
	if rm.ID == "" {
		return errors.New("response ID is required")
	}
	if rm.RequestID == "" {
		return errors.New("request ID is required")
	}
	if rm.TargetID == "" {
		return errors.New("target ID is required")
	}
	if rm.NotApplicable && len(rm.Values.Data()) > 0 {
		return errors.New("not-applicable response must carry no values")
	}
	return nil
}

// Value returns the submitted value for an item ID, empty string when absent.
func (rm *ResponseModel) Value(itemID string) string {
	return rm.Values.Data()[itemID]
}
