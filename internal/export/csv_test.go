package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/smartcowork/cowork-gin/internal/export"
	"github.com/smartcowork/cowork-gin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func sampleRequest() *model.RequestModel {
	return &model.RequestModel{
		ID:    "req-1",
		Title: "Server inventory",
		Items: datatypes.NewJSONSlice([]model.Item{
			{ID: "item-1", Name: "Server name", DataType: model.ItemTypeText},
			{ID: "item-2", Name: "CPU count", DataType: model.ItemTypeNumber},
		}),
	}
}

func sampleResponses() []*model.ResponseModel {
	submitted := time.Date(2026, 3, 2, 14, 30, 0, 0, time.Local)
	return []*model.ResponseModel{
		{
			ID:          "res-1",
			RequestID:   "req-1",
			TargetID:    "E002",
			TargetName:  "Lee Minho",
			Values:      datatypes.NewJSONType(map[string]string{"item-1": "web-01", "item-2": "8"}),
			SubmittedAt: submitted,
		},
		{
			ID:            "res-2",
			RequestID:     "req-1",
			TargetID:      "E003",
			TargetName:    "Park Sora",
			Values:        datatypes.NewJSONType(map[string]string{}),
			NotApplicable: true,
			SubmittedAt:   submitted,
		},
	}
}

func parseCSV(t *testing.T, data []byte) [][]string {
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "missing UTF-8 BOM")
	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCollectionCSV(t *testing.T) {
	data, err := export.CollectionCSV(sampleRequest(), sampleResponses())
	require.NoError(t, err)

	records := parseCSV(t, data)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"제출자", "Server name", "CPU count", "상태", "제출시간"}, records[0])
	assert.Equal(t, []string{"Lee Minho", "web-01", "8", "제출완료", "2026-03-02 14:30"}, records[1])
	assert.Equal(t, []string{"Park Sora", "-", "-", "해당없음", "2026-03-02 14:30"}, records[2])
}

func TestCollectionCSV_MissingValueRendersEmpty(t *testing.T) {
	responses := sampleResponses()[:1]
	responses[0].Values = datatypes.NewJSONType(map[string]string{"item-1": "web-01"})

	data, err := export.CollectionCSV(sampleRequest(), responses)
	require.NoError(t, err)

	records := parseCSV(t, data)
	assert.Equal(t, "", records[1][2])
}

func TestFilterResponses(t *testing.T) {
	responses := sampleResponses()

	kept := export.FilterResponses(responses, false)
	assert.Len(t, kept, 2)

	kept = export.FilterResponses(responses, true)
	require.Len(t, kept, 1)
	assert.Equal(t, "Lee Minho", kept[0].TargetName)
}

func TestCollectionFilename(t *testing.T) {
	assert.Equal(t, "Server inventory_결과.csv", export.CollectionFilename("Server inventory", false))
	assert.Equal(t, "Server inventory_결과_필터.csv", export.CollectionFilename("Server inventory", true))
}

func TestApprovalCSV(t *testing.T) {
	approval := &model.ApprovalModel{
		ID:            "app-1",
		TemplateTitle: "Overtime report",
		Employees: datatypes.NewJSONSlice([]model.ApprovalEmployee{
			{
				EmployeeID: "E002",
				Name:       "Lee Minho",
				Department: "Operations",
				Team:       "Infra",
				Values:     map[string]string{"hours": "12"},
			},
		}),
	}
	items := []model.Item{{ID: "hours", Name: "Hours", DataType: model.ItemTypeNumber}}

	data, err := export.ApprovalCSV(approval, items)
	require.NoError(t, err)

	records := parseCSV(t, data)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"성명", "사번", "부서", "팀", "Hours"}, records[0])
	assert.Equal(t, []string{"Lee Minho", "E002", "Operations", "Infra", "12"}, records[1])

	// Without the template the export degrades to identity columns.
	data, err = export.ApprovalCSV(approval, nil)
	require.NoError(t, err)
	records = parseCSV(t, data)
	assert.Equal(t, []string{"성명", "사번", "부서", "팀"}, records[0])
}
