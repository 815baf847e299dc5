// Package funcionarios implements the employee lifecycle workflow:
// request validation, uniqueness and cargo-reference enforcement,
// persistence, and login token issuance.
package funcionarios

import (
	"context"

	"github.com/folhadev/funcionarios-api/internal/domain"
)

// LookupField enumerates the columns FindByField may query. Keeping
// the set closed prevents unsafe query construction from arbitrary
// field names.
type LookupField string

// Permitted lookup fields.
const (
	LookupFieldEmail   LookupField = "email"
	LookupFieldUsuario LookupField = "usuario"
)

// Repository is the persistence gateway for funcionarios. Create and
// Update own password hashing: plaintext never reaches storage.
type Repository interface {
	// Create inserts the funcionario, hashing Senha first, and
	// returns the assigned id.
	Create(ctx context.Context, f *domain.Funcionario) (int64, error)
	// Update overwrites all fields. An empty Senha leaves the stored
	// hash untouched; a non-empty one is rehashed. Returns whether a
	// row matched.
	Update(ctx context.Context, f *domain.Funcionario) (bool, error)
	// Delete removes by id, reporting whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
	FindAll(ctx context.Context) ([]domain.Funcionario, error)
	FindByID(ctx context.Context, id int64) (*domain.Funcionario, error)
	// FindByField returns exact matches on an allow-listed field.
	// Other field names fail with ErrInvalidLookupField.
	FindByField(ctx context.Context, field LookupField, value string) ([]domain.Funcionario, error)
	// Login finds by email and verifies the plaintext against the
	// stored hash. Unknown email and wrong password both return
	// ErrInvalidCredentials.
	Login(ctx context.Context, email, senha string) (*domain.Funcionario, error)
}

// Hasher is the one-way credential hashing capability injected into
// the persistence gateway.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(hashed, plain string) error
}

// CargoLookup resolves a cargo reference. Cargo existence is verified,
// never created, by this package.
type CargoLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Cargo, error)
}

// TokenIssuer produces a signed session token from claims.
type TokenIssuer interface {
	GerarToken(claims *domain.Claims) (string, error)
}
