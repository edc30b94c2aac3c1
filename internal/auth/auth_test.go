package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	Cost = bcrypt.MinCost
}

func TestIssueAndParse(t *testing.T) {
	iss, err := NewIssuer("test-secret", time.Hour, "arcade-portal")
	require.NoError(t, err)

	token, err := iss.Issue("user-1", "ann")
	require.NoError(t, err)

	claims, err := iss.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "ann", claims.Username)
	assert.Equal(t, "arcade-portal", claims.Issuer)
}

func TestParseRejects(t *testing.T) {
	iss, err := NewIssuer("test-secret", time.Hour, "arcade-portal")
	require.NoError(t, err)
	token, err := iss.Issue("user-1", "ann")
	require.NoError(t, err)

	other, _ := NewIssuer("other-secret", time.Hour, "arcade-portal")
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong secret")

	foreign, _ := NewIssuer("test-secret", time.Hour, "someone-else")
	_, err = foreign.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong issuer")

	_, err = iss.Parse(token[:len(token)-2])
	assert.ErrorIs(t, err, ErrInvalidToken, "truncated signature")

	_, err = iss.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: "arcade-portal"},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = iss.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken, "alg none")
}

func TestTokenExpires(t *testing.T) {
	iss, err := NewIssuer("test-secret", time.Minute, "arcade-portal")
	require.NoError(t, err)
	start := time.Now()
	iss.now = func() time.Time { return start }

	token, err := iss.Issue("user-1", "ann")
	require.NoError(t, err)

	iss.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = iss.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRandomSecret(t *testing.T) {
	a, err := NewIssuer("", 0, "arcade-portal")
	require.NoError(t, err)
	b, err := NewIssuer("", 0, "arcade-portal")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, a.ttl)

	token, err := a.Issue("u", "n")
	require.NoError(t, err)
	_, err = b.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "each random secret is distinct")
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))

	_, err = HashPassword("short")
	assert.ErrorIs(t, err, ErrWeakPassword)
	_, err = HashPassword(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrWeakPassword)
}
