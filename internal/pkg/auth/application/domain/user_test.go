package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("Asha", "Asha@Example.COM", "secret123", "")
	require.NoError(t, err)

	assert.Equal(t, "Asha", u.Name)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.Equal(t, DefaultRole, u.Role)
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestNewUserMissingFields(t *testing.T) {
	for _, tt := range []struct{ name, email, password string }{
		{"", "a@b.c", "pw"},
		{"name", "", "pw"},
		{"name", "a@b.c", ""},
	} {
		_, err := NewUser(tt.name, tt.email, tt.password, "")
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}

func TestNewUserPasswordTooLong(t *testing.T) {
	// bcrypt rejects inputs over 72 bytes.
	_, err := NewUser("name", "a@b.c", strings.Repeat("p", 73), "")
	assert.ErrorIs(t, err, ErrPasswordTooBig)
}

func TestRandomPassword(t *testing.T) {
	a, err := RandomPassword()
	require.NoError(t, err)
	b, err := RandomPassword()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
