package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomarket/internal/pkg/token"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := token.NewService("segredo", time.Hour)

	tok, expiresAt, err := svc.GenerateToken("sess-1")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "GoMarket-API", claims.Issuer)
}

func TestGenerateToken_EmptySession(t *testing.T) {
	_, _, err := token.NewService("segredo", time.Hour).GenerateToken("")
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tok, _, err := token.NewService("segredo", time.Hour).GenerateToken("sess-1")
	require.NoError(t, err)

	_, err = token.NewService("outro", time.Hour).ValidateToken(tok)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	tok, _, err := token.NewService("segredo", -time.Minute).GenerateToken("sess-1")
	require.NoError(t, err)

	_, err = token.NewService("segredo", time.Hour).ValidateToken(tok)
	assert.Error(t, err)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	claims := token.CustomClaims{
		SessionID: "sess-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "outro-servico",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("segredo"))
	require.NoError(t, err)

	_, err = token.NewService("segredo", time.Hour).ValidateToken(tok)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := token.NewService("segredo", time.Hour).ValidateToken("nao.e.jwt")
	assert.Error(t, err)
}
