package roster_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartcowork/cowork-gin/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func writeRoster(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newProvider(t *testing.T, content string) *roster.Provider {
	provider, err := roster.NewProvider(writeRoster(t, content), nil)
	require.NoError(t, err)
	t.Cleanup(func() { provider.Close() })
	return provider
}

const basicRoster = `employeeId,name,department,team,position,password
E001,Kim Jiwon,Operations,Infra,Manager,secret1
E002,Lee Minho,Operations,Infra,Staff,secret2
`

func TestProvider_Load(t *testing.T) {
	provider := newProvider(t, basicRoster)

	all := provider.All()
	require.Len(t, all, 2)
	assert.Equal(t, "E001", all[0].EmployeeID)
	assert.Equal(t, "Kim Jiwon", all[0].Name)
	assert.Equal(t, "Infra", all[0].Team)

	emp := provider.FindByID("E002")
	require.NotNil(t, emp)
	assert.Equal(t, "Lee Minho", emp.Name)

	assert.Nil(t, provider.FindByID("E999"))
}

func TestProvider_LoadWithBOM(t *testing.T) {
	provider := newProvider(t, "\xEF\xBB\xBF"+basicRoster)

	assert.Len(t, provider.All(), 2)
	assert.NotNil(t, provider.FindByID("E001"))
}

func TestProvider_Search(t *testing.T) {
	provider := newProvider(t, basicRoster)

	// Case-insensitive match on name or id substring.
	assert.Len(t, provider.Search("lee"), 1)
	assert.Len(t, provider.Search("e00"), 2)
	assert.Len(t, provider.Search("nobody"), 0)
	assert.Len(t, provider.Search(""), 2)
}

func TestProvider_Authenticate_Plaintext(t *testing.T) {
	provider := newProvider(t, basicRoster)

	emp, err := provider.Authenticate("E001", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Kim Jiwon", emp.Name)

	_, err = provider.Authenticate("E001", "wrong")
	assert.ErrorIs(t, err, roster.ErrInvalidCredentials)

	_, err = provider.Authenticate("E999", "secret1")
	assert.ErrorIs(t, err, roster.ErrInvalidCredentials)
}

func TestProvider_Authenticate_Bcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	content := fmt.Sprintf("employeeId,name,department,team,position,password\nE001,Kim Jiwon,Operations,Infra,Manager,%s\n", hash)
	provider := newProvider(t, content)

	emp, err := provider.Authenticate("E001", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "E001", emp.EmployeeID)

	_, err = provider.Authenticate("E001", "wrong")
	assert.ErrorIs(t, err, roster.ErrInvalidCredentials)
}

func TestProvider_Reload(t *testing.T) {
	path := writeRoster(t, basicRoster)
	provider, err := roster.NewProvider(path, nil)
	require.NoError(t, err)
	defer provider.Close()

	extended := basicRoster + "E003,Park Sora,Finance,Accounting,Staff,secret3\n"
	require.NoError(t, os.WriteFile(path, []byte(extended), 0644))
	require.NoError(t, provider.Reload())

	assert.Len(t, provider.All(), 3)
	assert.NotNil(t, provider.FindByID("E003"))
}
