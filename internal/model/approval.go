package model

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

// Approval request statuses. StatusRejected is defined for completeness and
// accepted when reading rows written by other tools, but no server operation
// produces it: the only wired transition is pending -> approved.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ApprovalEmployee is one line item of an approval request: an employee from
// the roster plus the per-item values entered for them. Unlike the
// data-collection ledger, line items live inside the request itself.
type ApprovalEmployee struct {
	EmployeeID string            `json:"employeeId"`
	Name       string            `json:"name"`
	Department string            `json:"department"`
	Team       string            `json:"team"`
	Position   string            `json:"position"`
	Values     map[string]string `json:"values"`
}

// ApprovalModel is a single-processor work approval request with a one-way
// pending -> approved status transition.
type ApprovalModel struct {
	ID                string                                `gorm:"primaryKey;type:varchar(64)" json:"id"`
	TemplateID        string                                `gorm:"type:varchar(64);not null;index" json:"templateId"`
	TemplateTitle     string                                `gorm:"type:varchar(255);not null" json:"templateTitle"`
	Title             string                                `gorm:"type:varchar(255);not null" json:"title"`
	RequesterID       string                                `gorm:"type:varchar(64);not null;index" json:"requesterId"`
	RequesterName     string                                `gorm:"type:varchar(64);not null" json:"requesterName"`
	RequesterPosition string                                `gorm:"type:varchar(64)" json:"requesterPosition"`
	RequesterTeam     string                                `gorm:"type:varchar(64)" json:"requesterTeam"`
	ProcessorID       string                                `gorm:"type:varchar(64);not null;index" json:"processorId"`
	ProcessorName     string                                `gorm:"type:varchar(64);not null" json:"processorName"`
	ProcessorPosition string                                `gorm:"type:varchar(64)" json:"processorPosition"`
	ProcessorTeam     string                                `gorm:"type:varchar(64)" json:"processorTeam"`
	Employees         datatypes.JSONSlice[ApprovalEmployee] `json:"employees"`
	Status            string                                `gorm:"type:varchar(32);not null;index" json:"status"`
	CreatedAt         time.Time                             `gorm:"not null;index" json:"createdAt"`
}

// TableName specifies the table name.
func (ApprovalModel) TableName() string {
	return "work_app_requests"
}

// Validate checks the approval model before persisting.
func (am *ApprovalModel) Validate() error {
	if am.ID == "" {
		return errors.New("approval ID is required")
	}
	if am.TemplateID == "" {
		return errors.New("template ID is required")
	}
	if am.Title == "" {
		return errors.New("approval title is required")
	}
	if am.RequesterID == "" {
		return errors.New("requester ID is required")
	}
	if am.ProcessorID == "" {
		return errors.New("processor ID is required")
	}
	switch am.Status {
	case StatusPending, StatusApproved, StatusRejected:
	default:
		return errors.New("unknown approval status: " + am.Status)
	}
	return nil
}
