package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/smartcowork/cowork-gin/internal/auth"
	"github.com/smartcowork/cowork-gin/internal/model"
	"github.com/smartcowork/cowork-gin/internal/repository"
	"gorm.io/datatypes"
)

// TemplateService manages work templates. The one structural rule: the item
// list never drops below one entry, enforced here at the operation boundary
// rather than trusting the console's remove-button gate.
type TemplateService interface {
	Create(input *TemplateInput, creator *auth.Identity) (*model.TemplateModel, error)
	Get(id string) (*model.TemplateModel, error)
	List() ([]*model.TemplateModel, error)
	Update(id string, input *TemplateInput) (*model.TemplateModel, error)
	Delete(id string) error
}

// TemplateInput carries the template form fields.
type TemplateInput struct {
	Title              string       `json:"title" binding:"required"`
	Description        string       `json:"description"`
	Items              []model.Item `json:"items"`
	DefaultProcessorID string       `json:"defaultProcessorId"`
}

type templateService struct {
	templates repository.TemplateRepository
	notifier  ChangeNotifier
	logger    *logrus.Logger
}

// NewTemplateService creates the template store service.
func NewTemplateService(templates repository.TemplateRepository, notifier ChangeNotifier, logger *logrus.Logger) TemplateService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &templateService{templates: templates, notifier: notifier, logger: logger}
}

func (s *templateService) Create(input *TemplateInput, creator *auth.Identity) (*model.TemplateModel, error) {
	if input.Title == "" {
		return nil, ValidationError("template title is required")
	}
	if err := model.ValidateItems(input.Items); err != nil {
		return nil, ValidationError(err.Error())
	}

	now := time.Now()
	template := &model.TemplateModel{
		ID:                 uuid.NewString(),
		Title:              input.Title,
		Description:        input.Description,
		Items:              datatypes.NewJSONSlice(input.Items),
		DefaultProcessorID: input.DefaultProcessorID,
		CreatedAt:          now,
		UpdatedAt:          now,
		CreatedBy:          creator.EmployeeID,
	}

	if err := s.templates.Save(template); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	s.notifier.NotifyChange("work_templates", ActionInsert)
	return template, nil
}

func (s *templateService) Get(id string) (*model.TemplateModel, error) {
	return s.templates.FindByID(id)
}

func (s *templateService) List() ([]*model.TemplateModel, error) {
	return s.templates.FindAll()
}

// Update mutates the template in place. Requests created before the update
// keep their item snapshots and are unaffected.
func (s *templateService) Update(id string, input *TemplateInput) (*model.TemplateModel, error) {
	template, err := s.templates.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Title == "" {
		return nil, ValidationError("template title is required")
	}
	if err := model.ValidateItems(input.Items); err != nil {
		return nil, ValidationError(err.Error())
	}

	template.Title = input.Title
	template.Description = input.Description
	template.Items = datatypes.NewJSONSlice(input.Items)
	template.DefaultProcessorID = input.DefaultProcessorID
	template.UpdatedAt = time.Now()

	if err := s.templates.Save(template); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	s.notifier.NotifyChange("work_templates", ActionUpdate)
	return template, nil
}

// Delete is destructive: approvals that reference the template by id degrade
// to their snapshotted title, as in the original console.
func (s *templateService) Delete(id string) error {
	if _, err := s.templates.FindByID(id); err != nil {
		return err
	}
	if err := s.templates.DeleteByID(id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	s.notifier.NotifyChange("work_templates", ActionDelete)
	s.logger.WithField("template_id", id).Info("work template deleted")
	return nil
}
