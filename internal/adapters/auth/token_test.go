package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager("test-secret")

	token, err := m.Issue("admin", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestTokenManager_VerifyRejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret")

	token, err := m.Issue("admin", -time.Minute)
	require.NoError(t, err)

	_, err = m.Verify(token)
	require.Error(t, err)
}

func TestTokenManager_VerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").Issue("admin", time.Hour)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b").Verify(token)
	require.Error(t, err)
}

func TestTokenManager_VerifyRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("test-secret").Verify("not-a-token")
	require.Error(t, err)
}

func TestBcryptVerifier(t *testing.T) {
	hash, err := HashPassword("acts2024")
	require.NoError(t, err)

	v := NewBcryptVerifier()
	require.NoError(t, v.Compare(hash, "acts2024"))
	require.Error(t, v.Compare(hash, "wrong"))
}
