package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/smartcowork/cowork-gin/internal/auth"
	"github.com/smartcowork/cowork-gin/internal/export"
	"github.com/smartcowork/cowork-gin/internal/metrics"
	"github.com/smartcowork/cowork-gin/internal/model"
	"github.com/smartcowork/cowork-gin/internal/repository"
	"github.com/smartcowork/cowork-gin/internal/roster"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ApprovalService manages the work approval ledger: single-processor
// requests with embedded employee line items and a one-way
// pending -> approved transition.
type ApprovalService interface {
	Create(input *CreateApprovalInput, requester *auth.Identity) (*model.ApprovalModel, error)
	Get(id string) (*model.ApprovalModel, error)
	ListInvolving(employeeID string) ([]*model.ApprovalModel, error)
	Approve(id string, caller *auth.Identity) (*model.ApprovalModel, error)
	Delete(id string, caller *auth.Identity) error
	Export(id string) (filename string, data []byte, err error)
}

// ApprovalEmployeeInput selects one roster employee and their entered values.
type ApprovalEmployeeInput struct {
	EmployeeID string            `json:"employeeId" binding:"required"`
	Values     map[string]string `json:"values"`
}

// CreateApprovalInput carries the approval form fields.
type CreateApprovalInput struct {
	TemplateID  string                  `json:"templateId" binding:"required"`
	Title       string                  `json:"title" binding:"required"`
	ProcessorID string                  `json:"processorId" binding:"required"`
	Employees   []ApprovalEmployeeInput `json:"employees"`
}

type approvalService struct {
	approvals repository.ApprovalRepository
	templates repository.TemplateRepository
	roster    *roster.Provider
	notifier  ChangeNotifier
	logger    *logrus.Logger
}

// NewApprovalService creates the approval ledger service.
func NewApprovalService(
	approvals repository.ApprovalRepository,
	templates repository.TemplateRepository,
	rosterProvider *roster.Provider,
	notifier ChangeNotifier,
	logger *logrus.Logger,
) ApprovalService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &approvalService{
		approvals: approvals,
		templates: templates,
		roster:    rosterProvider,
		notifier:  notifier,
		logger:    logger,
	}
}

// Create validates the form, resolves requester/processor/line-item
// identities from the roster and persists the request with status pending.
// Identity fields are denormalized at creation time; later roster changes do
// not rewrite existing requests.
func (s *approvalService) Create(input *CreateApprovalInput, requester *auth.Identity) (*model.ApprovalModel, error) {
	if input.Title == "" {
		return nil, ValidationError("title is required")
	}

	template, err := s.templates.FindByID(input.TemplateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ValidationError("template does not exist")
		}
		return nil, err
	}

	processor := s.roster.FindByID(input.ProcessorID)
	if processor == nil {
		return nil, ValidationError("processor is not in the roster")
	}

	employees := make([]model.ApprovalEmployee, 0, len(input.Employees))
	for _, sel := range input.Employees {
		emp := s.roster.FindByID(sel.EmployeeID)
		if emp == nil {
			return nil, ValidationError(fmt.Sprintf("employee %s is not in the roster", sel.EmployeeID))
		}
		values := sel.Values
		if values == nil {
			values = map[string]string{}
		}
		employees = append(employees, model.ApprovalEmployee{
			EmployeeID: emp.EmployeeID,
			Name:       emp.Name,
			Department: emp.Department,
			Team:       emp.Team,
			Position:   emp.Position,
			Values:     values,
		})
	}

	approval := &model.ApprovalModel{
		ID:                uuid.NewString(),
		TemplateID:        template.ID,
		TemplateTitle:     template.Title,
		Title:             input.Title,
		RequesterID:       requester.EmployeeID,
		RequesterName:     requester.Name,
		RequesterPosition: requester.Position,
		RequesterTeam:     requester.Team,
		ProcessorID:       processor.EmployeeID,
		ProcessorName:     processor.Name,
		ProcessorPosition: processor.Position,
		ProcessorTeam:     processor.Team,
		Employees:         datatypes.NewJSONSlice(employees),
		Status:            model.StatusPending,
		CreatedAt:         time.Now(),
	}
	if err := approval.Validate(); err != nil {
		return nil, ValidationError(err.Error())
	}

	if err := s.approvals.Save(approval); err != nil {
		return nil, fmt.Errorf("failed to save approval request: %w", err)
	}

	metrics.RecordApproval("created")
	s.notifier.NotifyChange("work_app_requests", ActionInsert)
	s.logger.WithFields(logrus.Fields{
		"approval_id": approval.ID,
		"template_id": approval.TemplateID,
		"processor":   approval.ProcessorID,
	}).Info("work approval request created")

	return approval, nil
}

func (s *approvalService) Get(id string) (*model.ApprovalModel, error) {
	return s.approvals.FindByID(id)
}

func (s *approvalService) ListInvolving(employeeID string) ([]*model.ApprovalModel, error) {
	return s.approvals.FindInvolving(employeeID)
}

// Approve performs the one-way pending -> approved transition. Only the
// designated processor may trigger it, and only while the request is
// pending. There is no reject transition: the rejected status exists in the
// schema but nothing produces it.
func (s *approvalService) Approve(id string, caller *auth.Identity) (*model.ApprovalModel, error) {
	approval, err := s.approvals.FindByID(id)
	if err != nil {
		return nil, err
	}
	if approval.ProcessorID != caller.EmployeeID {
		return nil, ErrForbidden
	}
	if approval.Status != model.StatusPending {
		return nil, ErrNotPending
	}

	if err := s.approvals.UpdateStatus(id, model.StatusApproved); err != nil {
		return nil, fmt.Errorf("failed to approve request: %w", err)
	}
	approval.Status = model.StatusApproved

	metrics.RecordApproval("approved")
	s.notifier.NotifyChange("work_app_requests", ActionUpdate)
	return approval, nil
}

// Delete is only exposed to the original requester.
func (s *approvalService) Delete(id string, caller *auth.Identity) error {
	approval, err := s.approvals.FindByID(id)
	if err != nil {
		return err
	}
	if approval.RequesterID != caller.EmployeeID {
		return ErrForbidden
	}

	if err := s.approvals.DeleteByID(id); err != nil {
		return fmt.Errorf("failed to delete approval request: %w", err)
	}

	s.notifier.NotifyChange("work_app_requests", ActionDelete)
	return nil
}

// Export resolves the live template for the item column order; when the
// template has been deleted the export degrades to identity columns only.
func (s *approvalService) Export(id string) (string, []byte, error) {
	approval, err := s.approvals.FindByID(id)
	if err != nil {
		return "", nil, err
	}

	var items []model.Item
	if template, err := s.templates.FindByID(approval.TemplateID); err == nil {
		items = template.Items
	}

	data, err := export.ApprovalCSV(approval, items)
	if err != nil {
		return "", nil, err
	}

	metrics.RecordExport("approval")
	return export.ApprovalFilename(approval.TemplateTitle), data, nil
}
