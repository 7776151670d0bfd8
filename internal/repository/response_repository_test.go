package repository_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/smartcowork/cowork-gin/internal/database"
	"github.com/smartcowork/cowork-gin/internal/model"
	"github.com/smartcowork/cowork-gin/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newResponse(requestID, targetID string) *model.ResponseModel {
	return &model.ResponseModel{
		ID:          uuid.NewString(),
		RequestID:   requestID,
		TargetID:    targetID,
		TargetName:  targetID,
		Values:      datatypes.NewJSONType(map[string]string{"item-1": "x"}),
		SubmittedAt: time.Now(),
	}
}

func TestResponseRepository_FindByRequestAndTarget(t *testing.T) {
	db := setupRepoDB(t)
	repo := repository.NewResponseRepository(db)

	require.NoError(t, repo.Save(newResponse("req-1", "E002")))

	found, err := repo.FindByRequestAndTarget("req-1", "E002")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "E002", found.TargetID)

	// Absence is not an error, it is the not-submitted state.
	missing, err := repo.FindByRequestAndTarget("req-1", "E003")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestResponseRepository_DeleteByRequestID(t *testing.T) {
	db := setupRepoDB(t)
	repo := repository.NewResponseRepository(db)

	require.NoError(t, repo.Save(newResponse("req-1", "E002")))
	require.NoError(t, repo.Save(newResponse("req-1", "E003")))
	require.NoError(t, repo.Save(newResponse("req-2", "E002")))

	require.NoError(t, repo.DeleteByRequestID(db, "req-1"))

	remaining, err := repo.FindByRequestID("req-1")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	other, err := repo.FindByRequestID("req-2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestRequestRepository_FindAllOrder(t *testing.T) {
	db := setupRepoDB(t)
	repo := repository.NewRequestRepository(db)

	older := &model.RequestModel{
		ID:            uuid.NewString(),
		RequestNo:     "REQ-000001",
		Title:         "Older",
		RequesterID:   "E001",
		RequesterName: "Kim Jiwon",
		TargetIDs:     datatypes.NewJSONSlice([]string{"E002"}),
		Items: datatypes.NewJSONSlice([]model.Item{
			{ID: "a", Name: "A", DataType: model.ItemTypeText},
		}),
		CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := &model.RequestModel{
		ID:            uuid.NewString(),
		RequestNo:     "REQ-000002",
		Title:         "Newer",
		RequesterID:   "E001",
		RequesterName: "Kim Jiwon",
		TargetIDs:     datatypes.NewJSONSlice([]string{"E002"}),
		Items: datatypes.NewJSONSlice([]model.Item{
			{ID: "a", Name: "A", DataType: model.ItemTypeText},
		}),
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Save(older))
	require.NoError(t, repo.Save(newer))

	all, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Newer", all[0].Title)
	assert.Equal(t, "Older", all[1].Title)
}
