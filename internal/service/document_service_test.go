package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/smartcowork/cowork-gin/internal/repository"
	"github.com/smartcowork/cowork-gin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocumentService(t *testing.T) service.DocumentService {
	db := setupTestDB(t)
	return service.NewDocumentService(repository.NewDocumentRepository(db), nil, nil)
}

func TestDocumentService_Create(t *testing.T) {
	documents := newDocumentService(t)

	document, err := documents.Create(&service.DocumentInput{
		Title:        "Security policy",
		Content:      "All access requires MFA.",
		Dept:         "Operations",
		EnforcerName: "Kim Jiwon",
		EnforcedAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local),
	}, identity("E001", "Kim Jiwon"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(document.DocNo, "DOC-"))
	assert.Len(t, document.DocNo, len("DOC-")+6)
	assert.Equal(t, "E001", document.CreatedBy)
}

func TestDocumentService_Create_Validation(t *testing.T) {
	documents := newDocumentService(t)

	_, err := documents.Create(&service.DocumentInput{
		EnforcerName: "Kim Jiwon",
	}, identity("E001", "Kim Jiwon"))
	assert.Error(t, err)

	_, err = documents.Create(&service.DocumentInput{
		Title: "No enforcer",
	}, identity("E001", "Kim Jiwon"))
	assert.Error(t, err)
}

func TestDocumentService_Update(t *testing.T) {
	documents := newDocumentService(t)

	document, err := documents.Create(&service.DocumentInput{
		Title:        "Security policy",
		EnforcerName: "Kim Jiwon",
	}, identity("E001", "Kim Jiwon"))
	require.NoError(t, err)

	updated, err := documents.Update(document.ID, &service.DocumentInput{
		Title:        "Security policy v2",
		Content:      "Updated content",
		EnforcerName: "Lee Minho",
	})
	require.NoError(t, err)
	assert.Equal(t, "Security policy v2", updated.Title)
	assert.Equal(t, "Lee Minho", updated.EnforcerName)
	// Number and creator never change after creation.
	assert.Equal(t, document.DocNo, updated.DocNo)
	assert.Equal(t, "E001", updated.CreatedBy)
}

func TestDocumentService_Delete(t *testing.T) {
	documents := newDocumentService(t)

	document, err := documents.Create(&service.DocumentInput{
		Title:        "Security policy",
		EnforcerName: "Kim Jiwon",
	}, identity("E001", "Kim Jiwon"))
	require.NoError(t, err)

	require.NoError(t, documents.Delete(document.ID))

	list, err := documents.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}
