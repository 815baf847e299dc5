package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/folhadev/funcionarios-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Config contains token issuer settings.
type Config struct {
	SecretKey     string
	TokenDuration time.Duration
}

// Issuer produces signed HS256 session tokens from employee claims.
// The token is opaque to the rest of the service; nothing here
// verifies incoming tokens.
type Issuer struct {
	secret   []byte
	duration time.Duration
}

// NewIssuer creates a token issuer.
func NewIssuer(cfg Config) *Issuer {
	return &Issuer{
		secret:   []byte(cfg.SecretKey),
		duration: cfg.TokenDuration,
	}
}

type tokenClaims struct {
	Email   string  `json:"email"`
	Usuario string  `json:"usuario"`
	Cargo   *string `json:"cargo,omitempty"`
	Nome    *string `json:"nomeFuncionario,omitempty"`
	jwt.RegisteredClaims
}

// GerarToken signs a session token embedding the given claims.
func (i *Issuer) GerarToken(claims *domain.Claims) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Email:   claims.Email,
		Usuario: claims.Usuario,
		Cargo:   claims.Cargo,
		Nome:    claims.Nome,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(claims.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.duration)),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
