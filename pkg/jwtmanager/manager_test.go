package jwtmanager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_EmptySecret(t *testing.T) {
	_, err := NewManager("   ", time.Hour, "taxiclass")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestIssueAndParse(t *testing.T) {
	m, err := NewManager("secret", time.Hour, "taxiclass")
	require.NoError(t, err)

	token, expiresAt, err := m.Issue(42, "ana@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "taxiclass", claims.Issuer)
}

func TestParse_Expired(t *testing.T) {
	m, err := NewManager("secret", time.Minute, "taxiclass")
	require.NoError(t, err)

	base := time.Now()
	m.now = func() time.Time { return base.Add(-2 * time.Hour) }
	token, _, err := m.Issue(1, "a@b.c")
	require.NoError(t, err)

	m.now = func() time.Time { return base }
	_, err = m.ParseAndValidate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongSecret(t *testing.T) {
	issuer, _ := NewManager("one", time.Hour, "taxiclass")
	verifier, _ := NewManager("two", time.Hour, "taxiclass")

	token, _, err := issuer.Issue(1, "a@b.c")
	require.NoError(t, err)

	_, err = verifier.ParseAndValidate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestFromAuthorization(t *testing.T) {
	token, ok := FromAuthorization("Bearer abc.def.ghi")
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	_, ok = FromAuthorization("Basic abc")
	assert.False(t, ok)

	_, ok = FromAuthorization("Bearer ")
	assert.False(t, ok)

	_, ok = FromAuthorization("")
	assert.False(t, ok)
}
