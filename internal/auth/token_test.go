package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAndVerify(t *testing.T) {
	issuer := NewIssuer("secret", "key", time.Hour)

	token, expiresAt, err := issuer.Login("key")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
}

func TestLoginRejectsWrongKey(t *testing.T) {
	_, _, err := NewIssuer("secret", "key", time.Hour).Login("other")
	assert.ErrorIs(t, err, ErrInvalidAdminKey)

	_, _, err = NewIssuer("secret", "", time.Hour).Login("")
	assert.ErrorIs(t, err, ErrInvalidAdminKey, "empty admin key disables login")
}

func TestVerifyRejects(t *testing.T) {
	issuer := NewIssuer("secret", "key", time.Hour)
	token, _, err := issuer.Issue("admin")
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		_, err := NewIssuer("other", "key", time.Hour).Verify(token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("expired", func(t *testing.T) {
		later := NewIssuer("secret", "key", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
