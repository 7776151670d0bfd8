package auth_test

import (
	"testing"

	"github.com/smartcowork/cowork-gin/internal/auth"
	"github.com/smartcowork/cowork-gin/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEmployee() *roster.Employee {
	return &roster.Employee{
		EmployeeID: "E001",
		Name:       "Kim Jiwon",
		Department: "Operations",
		Team:       "Infra",
		Position:   "Manager",
	}
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	_, err := auth.NewTokenManager("", 12)
	assert.Error(t, err)
}

func TestTokenManager_IssueAndValidate(t *testing.T) {
	tokens, err := auth.NewTokenManager("test-secret", 12)
	require.NoError(t, err)

	token, err := tokens.Issue(testEmployee())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "E001", identity.EmployeeID)
	assert.Equal(t, "Kim Jiwon", identity.Name)
	assert.Equal(t, "Operations", identity.Department)
	assert.Equal(t, "Infra", identity.Team)
	assert.Equal(t, "Manager", identity.Position)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	issuer, err := auth.NewTokenManager("secret-a", 12)
	require.NoError(t, err)
	verifier, err := auth.NewTokenManager("secret-b", 12)
	require.NoError(t, err)

	token, err := issuer.Issue(testEmployee())
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tokens, err := auth.NewTokenManager("test-secret", 12)
	require.NoError(t, err)

	_, err = tokens.Validate("not-a-token")
	assert.Error(t, err)
}
