package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/keepnotes/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken("bob@example.com", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := GetSubjectFromToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", subject)
}

func TestToken_Expired(t *testing.T) {
	token, err := GenerateToken("bob@example.com", secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetSubjectFromToken(token, secret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("bob@example.com", secret, time.Hour)
	require.NoError(t, err)

	_, err = GetSubjectFromToken(token, []byte("other-secret"))
	require.Error(t, err)
}

func TestToken_Garbage(t *testing.T) {
	_, err := GetSubjectFromToken("not.a.token", secret)
	require.Error(t, err)
}

func TestToken_EmptySubjectRejected(t *testing.T) {
	token, err := GenerateToken("", secret, time.Hour)
	require.NoError(t, err)

	_, err = GetSubjectFromToken(token, secret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestToken_RejectsUnsignedAlgorithm(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "bob@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = GetSubjectFromToken(tokenString, secret)
	require.Error(t, err)
}

func TestToken_RequiresExpiry(t *testing.T) {
	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "bob@example.com",
	})
	tokenString, err := noExpiry.SignedString(secret)
	require.NoError(t, err)

	_, err = GetSubjectFromToken(tokenString, secret)
	require.Error(t, err)
}
