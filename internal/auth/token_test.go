package auth

import (
	"testing"
	"time"

	"github.com/folhadev/funcionarios-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_GerarToken(t *testing.T) {
	issuer := NewIssuer(Config{
		SecretKey:     "test-secret-key",
		TokenDuration: 15 * time.Minute,
	})

	cargo := "Analista"
	nome := "Ana"

	signed, err := issuer.GerarToken(&domain.Claims{
		Email:   "ana@x.com",
		Usuario: "ana1",
		Cargo:   &cargo,
		Nome:    &nome,
		ID:      42,
	})
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	var parsed tokenClaims
	token, err := jwt.ParseWithClaims(signed, &parsed, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret-key"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, "ana@x.com", parsed.Email)
	assert.Equal(t, "ana1", parsed.Usuario)
	require.NotNil(t, parsed.Cargo)
	assert.Equal(t, "Analista", *parsed.Cargo)
	require.NotNil(t, parsed.Nome)
	assert.Equal(t, "Ana", *parsed.Nome)
	assert.Equal(t, "42", parsed.Subject)
	assert.NotEmpty(t, parsed.ID, "jti should be set")

	require.NotNil(t, parsed.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), parsed.ExpiresAt.Time, time.Minute)
}

func TestIssuer_NullableClaimsOmitted(t *testing.T) {
	issuer := NewIssuer(Config{
		SecretKey:     "test-secret-key",
		TokenDuration: time.Minute,
	})

	signed, err := issuer.GerarToken(&domain.Claims{
		Email:   "ana@x.com",
		Usuario: "ana1",
		ID:      1,
	})
	require.NoError(t, err)

	var parsed tokenClaims
	_, err = jwt.ParseWithClaims(signed, &parsed, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret-key"), nil
	})
	require.NoError(t, err)

	assert.Nil(t, parsed.Cargo)
	assert.Nil(t, parsed.Nome)
}

func TestIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := NewIssuer(Config{
		SecretKey:     "test-secret-key",
		TokenDuration: time.Minute,
	})

	signed, err := issuer.GerarToken(&domain.Claims{Email: "ana@x.com", Usuario: "ana1", ID: 1})
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(*jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}
