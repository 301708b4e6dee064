package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateVerifyRoundTrip(t *testing.T) {
	tok, err := Generate("user-123", "student", secret, DefaultValidity)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Verify(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "student", claims.Role)
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := Generate("user-123", "student", secret, DefaultValidity)
	require.NoError(t, err)

	_, err = Verify(tok, []byte("other-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	tok, err := Generate("user-123", "student", secret, -time.Minute)
	require.NoError(t, err)

	_, err = Verify(tok, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	_, err := Verify("not.a.token", secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
