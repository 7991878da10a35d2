package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicedesk/invoicedesk-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "invoicedesk-test"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := jwt.Generate(testSecret, testUserID, "admin", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "admin", role)
}

func TestGenerateRequiresSecret(t *testing.T) {
	_, err := jwt.Generate("", testUserID, "regular", testIssuer, 60)
	assert.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := jwt.Generate(testSecret, testUserID, "regular", testIssuer, 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("another-secret", token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := jwt.Generate(testSecret, testUserID, "regular", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(testSecret, token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, _, err := jwt.Parse(testSecret, "not.a.token")
	assert.Error(t, err)
}
