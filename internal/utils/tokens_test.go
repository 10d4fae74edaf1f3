package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens(t *testing.T, now *time.Time) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("unit-test-secret", 7*24*time.Hour)
	require.NoError(t, err)
	return m.WithClock(func() time.Time { return *now })
}

func TestTokenManager_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m := newTestTokens(t, &now)

	tok, exp, err := m.Sign(SessionClaims{UserID: 30, Role: "student", SchoolID: "SCH1", SchoolName: "Green Valley High"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), exp)

	c, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(30), c.UserID)
	assert.Equal(t, "student", c.Role)
	assert.Equal(t, "SCH1", c.SchoolID)
	assert.Equal(t, "30", c.Subject)
	assert.Equal(t, exp.Unix(), c.ExpiresAt.Unix())
}

func TestTokenManager_Expiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m := newTestTokens(t, &now)
	tok, _, err := m.Sign(SessionClaims{UserID: 1, Role: "admin"})
	require.NoError(t, err)

	now = now.Add(7*24*time.Hour + time.Minute)
	_, err = m.Parse(tok)
	assert.NoError(t, err, "within leeway")

	now = now.Add(2 * time.Minute)
	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_RejectsForeignTokens(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m := newTestTokens(t, &now)

	other, err := NewTokenManager("another-secret", time.Hour)
	require.NoError(t, err)
	tok, _, err := other.WithClock(func() time.Time { return now }).Sign(SessionClaims{UserID: 1})
	require.NoError(t, err)
	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &SessionClaims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Parse(none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.Error(t, err)
}
