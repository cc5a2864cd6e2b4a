package service

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	ts := NewTokenService("test-secret")

	td, err := ts.CreateToken("user-123", "ada")
	require.NoError(t, err)
	require.NotEmpty(t, td.AccessToken)

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+td.AccessToken)

	details, err := ts.ExtractTokenMetadata(r)
	require.NoError(t, err)
	assert.Equal(t, "user-123", details.UserID)
	assert.Equal(t, "ada", details.UserName)
	assert.Equal(t, td.AccessUUID, details.AccessUUID)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	td, err := NewTokenService("secret-a").CreateToken("user-123", "ada")
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+td.AccessToken)

	_, err = NewTokenService("secret-b").ExtractTokenMetadata(r)
	assert.Error(t, err)
}

func TestExtractTokenMissingHeader(t *testing.T) {
	ts := NewTokenService("test-secret")
	r := httptest.NewRequest("GET", "/", nil)

	assert.Empty(t, ts.ExtractToken(r))
	_, err := ts.ExtractTokenMetadata(r)
	assert.Error(t, err)
}
