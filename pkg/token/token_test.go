package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	m := NewManager(testSecret, WithIssuer("piar-gateway"))
	before := time.Now()

	raw, expiresAt, err := m.Issue(1, "admin@piar.com")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := m.Verify("Bearer " + raw)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "admin@piar.com", claims.Email)
	assert.Equal(t, "piar-gateway", claims.Issuer)
	assert.WithinDuration(t, before.Add(time.Hour), expiresAt, 2*time.Second)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)
	assert.WithinDuration(t, before, claims.IssuedAt.Time, 2*time.Second)
}

func TestVerify_ValidJustBeforeExpiry(t *testing.T) {
	t.Parallel()

	issuedAt := time.Now().Add(-59 * time.Minute)
	m := NewManager(testSecret, WithClock(func() time.Time { return issuedAt }))

	raw, _, err := m.Issue(7, "u@piar.com")
	require.NoError(t, err)

	claims, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuedAt := time.Now().Add(-61 * time.Minute)
	m := NewManager(testSecret, WithClock(func() time.Time { return issuedAt }))

	raw, _, err := m.Issue(7, "u@piar.com")
	require.NoError(t, err)

	_, err = m.Verify("Bearer " + raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	raw, _, err := NewManager("other-secret").Issue(1, "admin@piar.com")
	require.NoError(t, err)

	_, err = NewManager(testSecret).Verify("Bearer " + raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           1,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager(testSecret).Verify("Bearer " + raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingToken(t *testing.T) {
	t.Parallel()

	m := NewManager(testSecret)
	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic abc", "token-without-scheme"} {
		_, err := m.Verify(header)
		assert.Truef(t, errors.Is(err, ErrMissingToken), "header %q: got %v", header, err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewManager(testSecret).Verify("Bearer not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer abc"))
	assert.Equal(t, "abc", BearerToken("  Bearer   abc  "))
	assert.Equal(t, "", BearerToken("Bearer"))
	assert.Equal(t, "", BearerToken("Basic abc"))
}
