package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/smartcowork/cowork-gin/internal/auth"
	"github.com/smartcowork/cowork-gin/internal/metrics"
	"github.com/smartcowork/cowork-gin/internal/model"
	"github.com/smartcowork/cowork-gin/internal/repository"
)

// DocumentService manages the formal document archive. Any authenticated
// employee may create, edit or delete any document.
type DocumentService interface {
	Create(input *DocumentInput, creator *auth.Identity) (*model.DocumentModel, error)
	Get(id string) (*model.DocumentModel, error)
	List() ([]*model.DocumentModel, error)
	Update(id string, input *DocumentInput) (*model.DocumentModel, error)
	Delete(id string) error
}

// DocumentInput carries the document form fields.
type DocumentInput struct {
	Title        string    `json:"title" binding:"required"`
	Content      string    `json:"content"`
	Dept         string    `json:"dept"`
	EnforcerName string    `json:"enforcerName" binding:"required"`
	EnforcedAt   time.Time `json:"enforcedAt"`
}

type documentService struct {
	documents repository.DocumentRepository
	notifier  ChangeNotifier
	logger    *logrus.Logger
}

// NewDocumentService creates the document archive service.
func NewDocumentService(documents repository.DocumentRepository, notifier ChangeNotifier, logger *logrus.Logger) DocumentService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &documentService{documents: documents, notifier: notifier, logger: logger}
}

func (s *documentService) Create(input *DocumentInput, creator *auth.Identity) (*model.DocumentModel, error) {
	if input.Title == "" {
		return nil, ValidationError("document title is required")
	}
	if input.EnforcerName == "" {
		return nil, ValidationError("enforcer name is required")
	}

	now := time.Now()
	enforcedAt := input.EnforcedAt
	if enforcedAt.IsZero() {
		enforcedAt = now
	}

	document := &model.DocumentModel{
		ID:           uuid.NewString(),
		DocNo:        sequenceNo("DOC", now),
		Title:        input.Title,
		Content:      input.Content,
		Dept:         input.Dept,
		EnforcerName: input.EnforcerName,
		EnforcedAt:   enforcedAt,
		CreatedAt:    now,
		CreatedBy:    creator.EmployeeID,
	}
	if err := document.Validate(); err != nil {
		return nil, ValidationError(err.Error())
	}

	if err := s.documents.Save(document); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	metrics.RecordDocumentCreated()
	s.notifier.NotifyChange("documents", ActionInsert)
	s.logger.WithFields(logrus.Fields{
		"document_id": document.ID,
		"doc_no":      document.DocNo,
	}).Info("document created")

	return document, nil
}

func (s *documentService) Get(id string) (*model.DocumentModel, error) {
	return s.documents.FindByID(id)
}

func (s *documentService) List() ([]*model.DocumentModel, error) {
	return s.documents.FindAll()
}

// Update rewrites the editable fields. The document number and creation
// metadata are fixed at creation time.
func (s *documentService) Update(id string, input *DocumentInput) (*model.DocumentModel, error) {
	document, err := s.documents.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Title == "" {
		return nil, ValidationError("document title is required")
	}
	if input.EnforcerName == "" {
		return nil, ValidationError("enforcer name is required")
	}

	document.Title = input.Title
	document.Content = input.Content
	document.Dept = input.Dept
	document.EnforcerName = input.EnforcerName
	if !input.EnforcedAt.IsZero() {
		document.EnforcedAt = input.EnforcedAt
	}

	if err := s.documents.Save(document); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	s.notifier.NotifyChange("documents", ActionUpdate)
	return document, nil
}

func (s *documentService) Delete(id string) error {
	if _, err := s.documents.FindByID(id); err != nil {
		return err
	}
	if err := s.documents.DeleteByID(id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	s.notifier.NotifyChange("documents", ActionDelete)
	s.logger.WithField("document_id", id).Info("document deleted")
	return nil
}
