package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testTokenService() TokenService {
	return TokenService{
		Secret:      []byte("test-secret"),
		Issuer:      "crowdspark",
		TokenTTL:    24 * time.Hour,
		RememberTTL: 30 * 24 * time.Hour,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	svc := testTokenService()
	hashed, err := svc.HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "$argon2id$"))
	assert.True(t, svc.VerifyPassword("hunter22", hashed))
	assert.False(t, svc.VerifyPassword("hunter23", hashed))
}

func TestVerifyPasswordBcryptFallback(t *testing.T) {
	svc := testTokenService()
	hashed, err := bcrypt.GenerateFromPassword([]byte("legacy-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, svc.VerifyPassword("legacy-pass", string(hashed)))
	assert.False(t, svc.VerifyPassword("wrong", string(hashed)))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	svc := testTokenService()
	assert.False(t, svc.VerifyPassword("anything", "$argon2id$garbage"))
}

func TestCreateAndParseToken(t *testing.T) {
	svc := testTokenService()
	signed, exp, err := svc.CreateToken("user-1", "jane@example.com", true, false)
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	token, claims, err := svc.ParseToken(signed)
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "jane@example.com", claims["email"])
	assert.Equal(t, true, claims["isAdmin"])
	assert.Equal(t, "crowdspark", claims["iss"])
}

func TestCreateTokenRememberMeTTL(t *testing.T) {
	svc := testTokenService()
	_, short, err := svc.CreateToken("user-1", "a@b.c", false, false)
	require.NoError(t, err)
	_, long, err := svc.CreateToken("user-1", "a@b.c", false, true)
	require.NoError(t, err)
	assert.InDelta(t, 29*24*time.Hour.Seconds(), float64(long-short), 5,
		"remember-me sessions are 30 days instead of one")
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	svc := testTokenService()
	signed, _, err := svc.CreateToken("user-1", "a@b.c", false, false)
	require.NoError(t, err)

	other := testTokenService()
	other.Secret = []byte("different-secret")
	_, _, err = other.ParseToken(signed)
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongIssuer(t *testing.T) {
	svc := testTokenService()
	other := testTokenService()
	other.Issuer = "someone-else"
	signed, _, err := other.CreateToken("user-1", "a@b.c", false, false)
	require.NoError(t, err)

	_, _, err = svc.ParseToken(signed)
	assert.Error(t, err)
}
