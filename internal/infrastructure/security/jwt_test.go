package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret")

	access, refresh, err := m.Generate("walletA")
	require.NoError(t, err)

	wallet, err := m.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "walletA", wallet)

	wallet, err = m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "walletA", wallet)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err, "refresh token must not pass as access token")

	_, second, err := m.Generate("walletA")
	require.NoError(t, err)
	assert.NotEqual(t, refresh, second)

	other := NewTokenManager("x", "y")
	_, err = other.ValidateAccessToken(access)
	assert.Error(t, err)
}
