package service_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/smartcowork/cowork-gin/internal/auth"
	"github.com/smartcowork/cowork-gin/internal/model"
	"github.com/smartcowork/cowork-gin/internal/repository"
	"github.com/smartcowork/cowork-gin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) NotifyChange(table, action string) {
	n.events = append(n.events, table+":"+action)
}

func newRequestService(t *testing.T) (service.RequestService, *gorm.DB, *recordingNotifier) {
	db := setupTestDB(t)
	notifier := &recordingNotifier{}
	svc := service.NewRequestService(
		db,
		repository.NewRequestRepository(db),
		repository.NewResponseRepository(db),
		setupTestRoster(t),
		notifier,
		nil,
	)
	return svc, db, notifier
}

func identity(id, name string) *auth.Identity {
	return &auth.Identity{EmployeeID: id, Name: name}
}

func sampleItems() []model.Item {
	return []model.Item{
		{ID: "item-1", Name: "Server name", DataType: model.ItemTypeText},
		{ID: "item-2", Name: "CPU count", DataType: model.ItemTypeNumber},
	}
}

func createSampleRequest(t *testing.T, svc service.RequestService) *model.RequestModel {
	request, err := svc.Create(&service.CreateRequestInput{
		Title:     "Server inventory",
		TargetIDs: []string{"E002", "E003"},
		Items:     sampleItems(),
	}, identity("E001", "Kim Jiwon"))
	require.NoError(t, err)
	return request
}

func TestRequestService_Create(t *testing.T) {
	svc, _, notifier := newRequestService(t)

	request := createSampleRequest(t, svc)

	assert.NotEmpty(t, request.ID)
	assert.True(t, strings.HasPrefix(request.RequestNo, "REQ-"))
	assert.Len(t, request.RequestNo, len("REQ-")+6)
	assert.Equal(t, "E001", request.RequesterID)
	assert.Equal(t, "Kim Jiwon", request.RequesterName)
	assert.Contains(t, notifier.events, "requests:insert")
}

func TestRequestService_Create_Validation(t *testing.T) {
	svc, _, _ := newRequestService(t)

	_, err := svc.Create(&service.CreateRequestInput{
		TargetIDs: []string{"E002"},
		Items:     sampleItems(),
	}, identity("E001", "Kim Jiwon"))
	assert.Error(t, err)
	assert.IsType(t, service.ValidationError(""), err)

	_, err = svc.Create(&service.CreateRequestInput{
		Title: "No targets",
		Items: sampleItems(),
	}, identity("E001", "Kim Jiwon"))
	assert.Error(t, err)

	_, err = svc.Create(&service.CreateRequestInput{
		Title:     "No items",
		TargetIDs: []string{"E002"},
	}, identity("E001", "Kim Jiwon"))
	assert.Error(t, err)
}

func TestRequestService_ListVisible(t *testing.T) {
	svc, _, _ := newRequestService(t)
	createSampleRequest(t, svc)

	// Requester sees it with status "requested" (not a target).
	forRequester, err := svc.ListVisible(identity("E001", "Kim Jiwon"))
	require.NoError(t, err)
	require.Len(t, forRequester, 1)
	assert.Equal(t, service.StatusRequested, forRequester[0].Status)

	// Target sees it as not submitted.
	forTarget, err := svc.ListVisible(identity("E002", "Lee Minho"))
	require.NoError(t, err)
	require.Len(t, forTarget, 1)
	assert.Equal(t, service.StatusNotSubmitted, forTarget[0].Status)

	// An uninvolved employee sees nothing.
	forOther, err := svc.ListVisible(identity("E004", "Choi Daniel"))
	require.NoError(t, err)
	assert.Empty(t, forOther)
}

func TestRequestService_SubmitResponse(t *testing.T) {
	svc, _, _ := newRequestService(t)
	request := createSampleRequest(t, svc)

	response, err := svc.SubmitResponse(request.ID, identity("E002", "Lee Minho"),
		map[string]string{"item-1": "web-01", "item-2": "8"}, false)
	require.NoError(t, err)
	assert.Equal(t, "E002", response.TargetID)
	assert.Equal(t, "web-01", response.Value("item-1"))
	assert.False(t, response.NotApplicable)

	// Status flips to submitted for the target.
	forTarget, err := svc.ListVisible(identity("E002", "Lee Minho"))
	require.NoError(t, err)
	assert.Equal(t, service.StatusSubmitted, forTarget[0].Status)
}

func TestRequestService_SubmitResponse_NonTargetForbidden(t *testing.T) {
	svc, _, _ := newRequestService(t)
	request := createSampleRequest(t, svc)

	_, err := svc.SubmitResponse(request.ID, identity("E004", "Choi Daniel"),
		map[string]string{"item-1": "x"}, false)
	assert.ErrorIs(t, err, service.ErrForbidden)
}

func TestRequestService_SubmitResponse_DuplicateRejected(t *testing.T) {
	svc, _, _ := newRequestService(t)
	request := createSampleRequest(t, svc)

	_, err := svc.SubmitResponse(request.ID, identity("E002", "Lee Minho"),
		map[string]string{"item-1": "web-01"}, false)
	require.NoError(t, err)

	_, err = svc.SubmitResponse(request.ID, identity("E002", "Lee Minho"),
		map[string]string{"item-1": "web-02"}, false)
	assert.ErrorIs(t, err, service.ErrAlreadySubmitted)
}

func TestRequestService_SubmitResponse_NotApplicableDiscardsValues(t *testing.T) {
	svc, _, _ := newRequestService(t)
	request := createSampleRequest(t, svc)

	response, err := svc.SubmitResponse(request.ID, identity("E003", "Park Sora"),
		map[string]string{"item-1": "should be dropped"}, true)
	require.NoError(t, err)
	assert.True(t, response.NotApplicable)
	assert.Empty(t, response.Values.Data())

	forTarget, err := svc.ListVisible(identity("E003", "Park Sora"))
	require.NoError(t, err)
	assert.Equal(t, service.StatusNotApplicable, forTarget[0].Status)
}

func TestRequestService_Get_TargetRows(t *testing.T) {
	svc, _, _ := newRequestService(t)
	request := createSampleRequest(t, svc)

	_, err := svc.SubmitResponse(request.ID, identity("E002", "Lee Minho"),
		map[string]string{"item-1": "web-01"}, false)
	require.NoError(t, err)

	detail, err := svc.Get(request.ID)
	require.NoError(t, err)
	require.Len(t, detail.Targets, 2)

	assert.Equal(t, "Lee Minho", detail.Targets[0].Name)
	assert.Equal(t, service.StatusSubmitted, detail.Targets[0].Status)
	require.NotNil(t, detail.Targets[0].Response)

	assert.Equal(t, "Park Sora", detail.Targets[1].Name)
	assert.Equal(t, service.StatusNotSubmitted, detail.Targets[1].Status)
	assert.Nil(t, detail.Targets[1].Response)
}

func TestRequestService_Delete_RemovesResponses(t *testing.T) {
	svc, db, _ := newRequestService(t)
	request := createSampleRequest(t, svc)

	_, err := svc.SubmitResponse(request.ID, identity("E002", "Lee Minho"),
		map[string]string{"item-1": "web-01"}, false)
	require.NoError(t, err)

	// Only the requester may delete.
	err = svc.Delete(request.ID, identity("E002", "Lee Minho"))
	assert.ErrorIs(t, err, service.ErrForbidden)

	err = svc.Delete(request.ID, identity("E001", "Kim Jiwon"))
	require.NoError(t, err)

	var requestCount, responseCount int64
	require.NoError(t, db.Model(&model.RequestModel{}).Count(&requestCount).Error)
	require.NoError(t, db.Model(&model.ResponseModel{}).Count(&responseCount).Error)
	assert.Zero(t, requestCount)
	assert.Zero(t, responseCount)
}

func TestRequestService_DeleteResponse_Permissions(t *testing.T) {
	svc, _, _ := newRequestService(t)
	request := createSampleRequest(t, svc)

	response, err := svc.SubmitResponse(request.ID, identity("E002", "Lee Minho"),
		map[string]string{"item-1": "web-01"}, false)
	require.NoError(t, err)

	// An uninvolved employee may not delete it.
	err = svc.DeleteResponse(response.ID, identity("E004", "Choi Daniel"))
	assert.ErrorIs(t, err, service.ErrForbidden)

	// The target may delete their own submission and submit again.
	err = svc.DeleteResponse(response.ID, identity("E002", "Lee Minho"))
	require.NoError(t, err)

	_, err = svc.SubmitResponse(request.ID, identity("E002", "Lee Minho"),
		map[string]string{"item-1": "web-02"}, false)
	assert.NoError(t, err)
}

func TestRequestService_Export(t *testing.T) {
	svc, _, _ := newRequestService(t)
	request := createSampleRequest(t, svc)

	_, err := svc.SubmitResponse(request.ID, identity("E002", "Lee Minho"),
		map[string]string{"item-1": "web-01", "item-2": "8"}, false)
	require.NoError(t, err)
	_, err = svc.SubmitResponse(request.ID, identity("E003", "Park Sora"), nil, true)
	require.NoError(t, err)

	filename, data, err := svc.Export(request.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Server inventory_결과.csv", filename)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	content := string(data)
	assert.Contains(t, content, "제출자,Server name,CPU count,상태,제출시간")
	assert.Contains(t, content, "Lee Minho,web-01,8,제출완료")
	assert.Contains(t, content, "Park Sora,-,-,해당없음")

	// The filtered variant drops the not-applicable row.
	filename, data, err = svc.Export(request.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "Server inventory_결과_필터.csv", filename)
	assert.NotContains(t, string(data), "Park Sora")
}
