package service_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smartcowork/cowork-gin/internal/database"
	"github.com/smartcowork/cowork-gin/internal/roster"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = database.Migrate(db)
	require.NoError(t, err)

	return db
}

const testRosterCSV = `employeeId,name,department,team,position,password
E001,Kim Jiwon,Operations,Infra,Manager,pw-kim
E002,Lee Minho,Operations,Infra,Staff,pw-lee
E003,Park Sora,Finance,Accounting,Staff,pw-park
E004,Choi Daniel,Finance,Accounting,Lead,pw-choi
`

func setupTestRoster(t *testing.T) *roster.Provider {
	path := filepath.Join(t.TempDir(), "users.csv")
	err := os.WriteFile(path, []byte(testRosterCSV), 0644)
	require.NoError(t, err)

	provider, err := roster.NewProvider(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { provider.Close() })

	return provider
}
