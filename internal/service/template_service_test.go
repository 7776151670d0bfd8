package service_test

import (
	"testing"

	"github.com/smartcowork/cowork-gin/internal/model"
	"github.com/smartcowork/cowork-gin/internal/repository"
	"github.com/smartcowork/cowork-gin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTemplateService(t *testing.T) service.TemplateService {
	db := setupTestDB(t)
	return service.NewTemplateService(repository.NewTemplateRepository(db), nil, nil)
}

func TestTemplateService_Create(t *testing.T) {
	templates := newTemplateService(t)

	template, err := templates.Create(&service.TemplateInput{
		Title:       "Overtime report",
		Description: "Monthly overtime submission",
		Items: []model.Item{
			{ID: "hours", Name: "Hours", DataType: model.ItemTypeNumber},
		},
	}, identity("E001", "Kim Jiwon"))
	require.NoError(t, err)
	assert.NotEmpty(t, template.ID)
	assert.Equal(t, "E001", template.CreatedBy)
	assert.Len(t, template.Items, 1)
}

func TestTemplateService_Create_RequiresItems(t *testing.T) {
	templates := newTemplateService(t)

	_, err := templates.Create(&service.TemplateInput{
		Title: "No items",
	}, identity("E001", "Kim Jiwon"))
	assert.Error(t, err)
	assert.IsType(t, service.ValidationError(""), err)
}

func TestTemplateService_Update(t *testing.T) {
	templates := newTemplateService(t)

	template, err := templates.Create(&service.TemplateInput{
		Title: "Overtime report",
		Items: []model.Item{{ID: "hours", Name: "Hours", DataType: model.ItemTypeNumber}},
	}, identity("E001", "Kim Jiwon"))
	require.NoError(t, err)

	// The item list can change but never drop to zero.
	_, err = templates.Update(template.ID, &service.TemplateInput{
		Title: "Overtime report",
		Items: nil,
	})
	assert.Error(t, err)

	updated, err := templates.Update(template.ID, &service.TemplateInput{
		Title: "Overtime report v2",
		Items: []model.Item{
			{ID: "hours", Name: "Hours", DataType: model.ItemTypeNumber},
			{ID: "reason", Name: "Reason", DataType: model.ItemTypeText},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Overtime report v2", updated.Title)
	assert.Len(t, updated.Items, 2)
	assert.True(t, updated.UpdatedAt.After(template.CreatedAt) || updated.UpdatedAt.Equal(template.CreatedAt))
}

func TestTemplateService_Delete(t *testing.T) {
	templates := newTemplateService(t)

	template, err := templates.Create(&service.TemplateInput{
		Title: "Overtime report",
		Items: []model.Item{{ID: "hours", Name: "Hours", DataType: model.ItemTypeNumber}},
	}, identity("E001", "Kim Jiwon"))
	require.NoError(t, err)

	require.NoError(t, templates.Delete(template.ID))

	_, err = templates.Get(template.ID)
	assert.Error(t, err)

	list, err := templates.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}
