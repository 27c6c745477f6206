package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenServiceRejectsEmptySecret(t *testing.T) {
	_, err := NewTokenService("")
	require.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	tok, err := svc.NewToken("alice")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	username, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc, _ := NewTokenService("test-secret")
	tok, err := svc.NewToken("alice")
	require.NoError(t, err)

	_, err = svc.ValidateToken(tok + "x")
	assert.Error(t, err)

	other, _ := NewTokenService("different-secret")
	otherTok, err := other.NewToken("alice")
	require.NoError(t, err)
	_, err = svc.ValidateToken(otherTok)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := NewTokenService("test-secret")
	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
