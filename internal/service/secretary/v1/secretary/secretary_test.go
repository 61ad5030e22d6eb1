package secretary

import (
	"testing"

	"github.com/rychardsson/go-bank-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSecretary(t *testing.T) *Secretary {
	t.Helper()
	sec, err := NewSecretaryService(&config.SecretConfig{SecretKey: "test_secret_key"})
	require.NoError(t, err)
	return sec
}

func TestNewSecretaryServiceEmptyKey(t *testing.T) {
	_, err := NewSecretaryService(&config.SecretConfig{})
	require.Error(t, err)
}

func TestHashAndCheckPassword(t *testing.T) {
	sec := newTestSecretary(t)
	hash, err := sec.HashPassword("senha123")
	require.NoError(t, err)
	assert.NotEqual(t, "senha123", hash)
	assert.True(t, sec.CheckPassword("senha123", hash))
	assert.False(t, sec.CheckPassword("senha124", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	sec := newTestSecretary(t)
	accessToken, err := sec.NewToken("user-1")
	require.NoError(t, err)
	userID, err := sec.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateTokenWrongKey(t *testing.T) {
	sec := newTestSecretary(t)
	other, err := NewSecretaryService(&config.SecretConfig{SecretKey: "another_secret_key"})
	require.NoError(t, err)
	accessToken, err := other.NewToken("user-1")
	require.NoError(t, err)
	_, err = sec.ValidateToken(accessToken)
	require.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	sec := newTestSecretary(t)
	_, err := sec.ValidateToken("not.a.token")
	require.Error(t, err)
}
