package database_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/smartcowork/cowork-gin/internal/database"
	"github.com/smartcowork/cowork-gin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openMigrated(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openMigrated(t)

	for _, table := range []string{
		"requests", "responses", "work_templates",
		"work_app_requests", "documents", "ai_analyzed_tasks",
	} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openMigrated(t)
	assert.NoError(t, database.Migrate(db))
}

func TestMigratedSchema_RoundTrip(t *testing.T) {
	db := openMigrated(t)

	request := &model.RequestModel{
		ID:            uuid.NewString(),
		RequestNo:     "REQ-123456",
		Title:         "Server inventory",
		RequesterID:   "E001",
		RequesterName: "Kim Jiwon",
		TargetIDs:     datatypes.NewJSONSlice([]string{"E002", "E003"}),
		Items: datatypes.NewJSONSlice([]model.Item{
			{ID: "item-1", Name: "Server name", DataType: model.ItemTypeText},
		}),
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(request).Error)

	// The quoted "values" column must survive both write and read.
	response := &model.ResponseModel{
		ID:          uuid.NewString(),
		RequestID:   request.ID,
		TargetID:    "E002",
		TargetName:  "Lee Minho",
		Values:      datatypes.NewJSONType(map[string]string{"item-1": "web-01"}),
		SubmittedAt: time.Now(),
	}
	require.NoError(t, db.Create(response).Error)

	var loaded model.ResponseModel
	require.NoError(t, db.First(&loaded, "id = ?", response.ID).Error)
	assert.Equal(t, "web-01", loaded.Value("item-1"))

	var loadedRequest model.RequestModel
	require.NoError(t, db.First(&loadedRequest, "id = ?", request.ID).Error)
	assert.True(t, loadedRequest.IsTarget("E002"))
	assert.False(t, loadedRequest.IsTarget("E004"))
}

func TestCheckHealth(t *testing.T) {
	db := openMigrated(t)
	assert.True(t, database.CheckHealth(db))
	assert.False(t, database.CheckHealth(nil))
}
