package service

import (
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

// RequestService manages the data-collection ledger: requests, their
// per-target responses, status derivation and exports.
type RequestService interface {
	Create(input *CreateRequestInput, requester *auth.Identity) (*model.RequestModel, error)
	ListVisible(viewer *auth.Identity) ([]*RequestSummary, error)
	Get(id string) (*RequestDetail, error)
	SubmitResponse(requestID string, target *auth.Identity, values map[string]string, notApplicable bool) (*model.ResponseModel, error)
	Delete(requestID string, caller *auth.Identity) error
	DeleteResponse(responseID string, caller *auth.Identity) error
	Export(requestID string, excludeNotApplicable bool) (filename string, data []byte, err error)
}

// CreateRequestInput carries the request form fields.
type CreateRequestInput struct {
	Title     string       `json:"title" binding:"required"`
	TargetIDs []string     `json:"targetIds"`
	Items     []model.Item `json:"items"`
}

// RequestSummary is one row of the ledger listing: the request plus the
// viewer's derived status.
type RequestSummary struct {
	*model.RequestModel
	Status SubmissionStatus `json:"status"`
}

// TargetRow is one target's standing in the request detail.
type TargetRow struct {
	EmployeeID string               `json:"employeeId"`
	Name       string               `json:"name"`
	Status     SubmissionStatus     `json:"status"`
	Response   *model.ResponseModel `json:"response,omitempty"`
}

// RequestDetail is the full reconciliation view of one request.
type RequestDetail struct {
	Request   *model.RequestModel    `json:"request"`
	Responses []*model.ResponseModel `json:"responses"`
	Targets   []TargetRow            `json:"targets"`
}

type requestService struct {
	db        *gorm.DB
	requests  repository.RequestRepository
	responses repository.ResponseRepository
	roster    *roster.Provider
	notifier  ChangeNotifier
	logger    *logrus.Logger
}

// NewRequestService creates the request/response ledger service.
func NewRequestService(
	db *gorm.DB,
	requests repository.RequestRepository,
	responses repository.ResponseRepository,
	rosterProvider *roster.Provider,
	notifier ChangeNotifier,
	logger *logrus.Logger,
) RequestService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &requestService{
		db:        db,
		requests:  requests,
		responses: responses,
		roster:    rosterProvider,
		notifier:  notifier,
		logger:    logger,
	}
}

// sequenceNo derives a human-readable number from the creation instant,
// e.g. REQ-483920.
func sequenceNo(prefix string, now time.Time) string {
	ms := fmt.Sprintf("%d", now.UnixMilli())
	return fmt.Sprintf("%s-%s", prefix, ms[len(ms)-6:])
}

func (s *requestService) Create(input *CreateRequestInput, requester *auth.Identity) (*model.RequestModel, error) {
	if input.Title == "" {
		return nil, ValidationError("title is required")
	}
	if len(input.TargetIDs) == 0 {
		return nil, ValidationError("at least one target is required")
	}
	if err := model.ValidateItems(input.Items); err != nil {
		return nil, ValidationError(err.Error())
	}

	now := time.Now()
	request := &model.RequestModel{
		ID:            uuid.NewString(),
		RequestNo:     sequenceNo("REQ", now),
		Title:         input.Title,
		RequesterID:   requester.EmployeeID,
		RequesterName: requester.Name,
		TargetIDs:     datatypes.NewJSONSlice(input.TargetIDs),
		Items:         datatypes.NewJSONSlice(input.Items),
		CreatedAt:     now,
	}
	if err := request.Validate(); err != nil {
		return nil, ValidationError(err.Error())
	}

	if err := s.requests.Save(request); err != nil {
		return nil, fmt.Errorf("failed to save request: %w", err)
	}

	metrics.RecordRequestCreated()
	s.notifier.NotifyChange("requests", ActionInsert)
	s.logger.WithFields(logrus.Fields{
		"request_id": request.ID,
		"request_no": request.RequestNo,
		"targets":    len(request.TargetIDs),
	}).Info("data-collection request created")

	return request, nil
}

// ListVisible returns requests the viewer issued or is targeted by, newest
// first, each carrying the viewer's derived status.
func (s *requestService) ListVisible(viewer *auth.Identity) ([]*RequestSummary, error) {
	all, err := s.requests.FindAll()
	if err != nil {
		return nil, err
	}

	summaries := make([]*RequestSummary, 0, len(all))
	for _, req := range all {
		if req.RequesterID != viewer.EmployeeID && !req.IsTarget(viewer.EmployeeID) {
			continue
		}
		responses, err := s.responses.FindByRequestID(req.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &RequestSummary{
			RequestModel: req,
			Status:       ComputeStatus(req, viewer.EmployeeID, responses),
		})
	}
	return summaries, nil
}

func (s *requestService) Get(id string) (*RequestDetail, error) {
	request, err := s.requests.FindByID(id)
	if err != nil {
		return nil, err
	}
	responses, err := s.responses.FindByRequestID(id)
	if err != nil {
		return nil, err
	}

	targets := make([]TargetRow, 0, len(request.TargetIDs))
	for _, targetID := range request.TargetIDs {
		row := TargetRow{
			EmployeeID: targetID,
			// Roster entries may disappear; degrade to the raw id.
			Name:   targetID,
			Status: ComputeStatus(request, targetID, responses),
		}
		if emp := s.roster.FindByID(targetID); emp != nil {
			row.Name = emp.Name
		}
		for _, res := range responses {
			if res.TargetID == targetID {
				row.Response = res
				break
			}
		}
		targets = append(targets, row)
	}

	return &RequestDetail{Request: request, Responses: responses, Targets: targets}, nil
}

// SubmitResponse records one target's submission. On the not-applicable path
// the submitted values are discarded regardless of what the client sent.
// The duplicate gate below is a read-then-insert check, not a storage
// constraint: two racing submissions can still both land (known gap, kept
// deliberately).
func (s *requestService) SubmitResponse(requestID string, target *auth.Identity, values map[string]string, notApplicable bool) (*model.ResponseModel, error) {
	request, err := s.requests.FindByID(requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsTarget(target.EmployeeID) {
		return nil, ErrForbidden
	}

	existing, err := s.responses.FindByRequestAndTarget(requestID, target.EmployeeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadySubmitted
	}

	if notApplicable || values == nil {
		values = map[string]string{}
	}

	response := &model.ResponseModel{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		TargetID:      target.EmployeeID,
		TargetName:    target.Name,
		Values:        datatypes.NewJSONType(values),
		NotApplicable: notApplicable,
		SubmittedAt:   time.Now(),
	}
	if err := response.Validate(); err != nil {
		return nil, ValidationError(err.Error())
	}

	if err := s.responses.Save(response); err != nil {
		return nil, fmt.Errorf("failed to save response: %w", err)
	}

	metrics.RecordResponseSubmitted(notApplicable)
	s.notifier.NotifyChange("responses", ActionInsert)
	return response, nil
}

// Delete removes a request and all of its responses in one transaction, so a
// half-applied delete can no longer strand a request without responses.
// Only the original requester may delete.
func (s *requestService) Delete(requestID string, caller *auth.Identity) error {
	request, err := s.requests.FindByID(requestID)
	if err != nil {
		return err
	}
	if request.RequesterID != caller.EmployeeID {
		return ErrForbidden
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.responses.DeleteByRequestID(tx, requestID); err != nil {
			return err
		}
		return s.requests.DeleteByID(tx, requestID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete request: %w", err)
	}

	s.notifier.NotifyChange("responses", ActionDelete)
	s.notifier.NotifyChange("requests", ActionDelete)
	s.logger.WithField("request_id", requestID).Info("data-collection request deleted")
	return nil
}

// DeleteResponse is available to the response's own target and to the
// request's requester.
func (s *requestService) DeleteResponse(responseID string, caller *auth.Identity) error {
	response, err := s.responses.FindByID(responseID)
	if err != nil {
		return err
	}
	if response.TargetID != caller.EmployeeID {
		request, err := s.requests.FindByID(response.RequestID)
		if err != nil {
			return err
		}
		if request.RequesterID != caller.EmployeeID {
			return ErrForbidden
		}
	}

	if err := s.responses.DeleteByID(responseID); err != nil {
		return fmt.Errorf("failed to delete response: %w", err)
	}

	s.notifier.NotifyChange("responses", ActionDelete)
	return nil
}

func (s *requestService) Export(requestID string, excludeNotApplicable bool) (string, []byte, error) {
	request, err := s.requests.FindByID(requestID)
	if err != nil {
		return "", nil, err
	}
	responses, err := s.responses.FindByRequestID(requestID)
	if err != nil {
		return "", nil, err
	}

	included := export.FilterResponses(responses, excludeNotApplicable)
	data, err := export.CollectionCSV(request, included)
	if err != nil {
		return "", nil, err
	}

	metrics.RecordExport("collection")
	return export.CollectionFilename(request.Title, excludeNotApplicable), data, nil
}
