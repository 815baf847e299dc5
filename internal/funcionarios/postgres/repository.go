// Package postgres provides the PostgreSQL implementation of the
// funcionarios persistence gateway.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/folhadev/funcionarios-api/internal/domain"
	"github.com/folhadev/funcionarios-api/internal/funcionarios"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool used by the repository. Declared so
// tests can substitute a pgxmock pool.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository implements funcionarios.Repository over PostgreSQL. All
// password hashing happens here, through the injected hasher: callers
// hand over plaintext and it never reaches a statement argument.
type Repository struct {
	db     DB
	hasher funcionarios.Hasher
}

// NewRepository creates a new PostgreSQL funcionarios repository.
func NewRepository(db DB, hasher funcionarios.Hasher) *Repository {
	return &Repository{db: db, hasher: hasher}
}

// Create inserts the funcionario with a hashed senha and returns the
// assigned id. Unique constraint violations come back as the same
// conflict errors the service's advisory checks produce.
func (r *Repository) Create(ctx context.Context, f *domain.Funcionario) (int64, error) {
	hashed, err := r.hasher.Hash(f.Senha)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO funcionario (nome, email, senha, usuario, cargo_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err = r.db.QueryRow(ctx, query,
		f.Nome,
		f.Email,
		hashed,
		f.Usuario,
		f.Cargo.ID,
	).Scan(&id)

	if err != nil {
		if conflictErr := translateUniqueViolation(err); conflictErr != nil {
			return 0, conflictErr
		}
		return 0, fmt.Errorf("create funcionario: %w", err)
	}
	return id, nil
}

// Update overwrites the row. The statement shape depends on whether a
// new senha was supplied: an empty senha keeps the stored hash.
func (r *Repository) Update(ctx context.Context, f *domain.Funcionario) (bool, error) {
	var tag pgconn.CommandTag
	var err error

	if f.Senha != "" {
		var hashed string
		hashed, err = r.hasher.Hash(f.Senha)
		if err != nil {
			return false, err
		}

		query := `
			UPDATE funcionario
			SET nome = $2, email = $3, senha = $4, usuario = $5, cargo_id = $6
			WHERE id = $1
		`
		tag, err = r.db.Exec(ctx, query, f.ID, f.Nome, f.Email, hashed, f.Usuario, f.Cargo.ID)
	} else {
		query := `
			UPDATE funcionario
			SET nome = $2, email = $3, usuario = $4, cargo_id = $5
			WHERE id = $1
		`
		tag, err = r.db.Exec(ctx, query, f.ID, f.Nome, f.Email, f.Usuario, f.Cargo.ID)
	}

	if err != nil {
		if conflictErr := translateUniqueViolation(err); conflictErr != nil {
			return false, conflictErr
		}
		return false, fmt.Errorf("update funcionario: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes the row by id, reporting whether one existed.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM funcionario WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete funcionario: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

const selectFuncionario = `
	SELECT f.id, f.nome, f.email, f.usuario, c.id, c.nome
	FROM funcionario f
	JOIN cargo c ON c.id = f.cargo_id
`

// FindAll retrieves every funcionario joined with its cargo.
func (r *Repository) FindAll(ctx context.Context) ([]domain.Funcionario, error) {
	rows, err := r.db.Query(ctx, selectFuncionario+` ORDER BY f.id`)
	if err != nil {
		return nil, fmt.Errorf("list funcionarios: %w", err)
	}
	defer rows.Close()

	return scanFuncionarios(rows)
}

// FindByID retrieves one funcionario or funcionarios.ErrFuncionarioNotFound.
func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Funcionario, error) {
	var f domain.Funcionario
	err := r.db.QueryRow(ctx, selectFuncionario+` WHERE f.id = $1`, id).Scan(
		&f.ID,
		&f.Nome,
		&f.Email,
		&f.Usuario,
		&f.Cargo.ID,
		&f.Cargo.Nome,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, funcionarios.ErrFuncionarioNotFound
		}
		return nil, fmt.Errorf("get funcionario by id: %w", err)
	}
	return &f, nil
}

// FindByField retrieves exact matches on an allow-listed column. Any
// other field name fails before touching the database.
func (r *Repository) FindByField(ctx context.Context, field funcionarios.LookupField, value string) ([]domain.Funcionario, error) {
	switch field {
	case funcionarios.LookupFieldEmail, funcionarios.LookupFieldUsuario:
	default:
		return nil, fmt.Errorf("%q: %w", field, funcionarios.ErrInvalidLookupField)
	}

	// field is a member of the closed enum checked above, never raw input
	query := fmt.Sprintf("%s WHERE f.%s = $1", selectFuncionario, field)

	rows, err := r.db.Query(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("find funcionarios by %s: %w", field, err)
	}
	defer rows.Close()

	return scanFuncionarios(rows)
}

// Login finds by email and verifies the plaintext against the stored
// hash. Unknown email and a failed comparison are indistinguishable to
// the caller.
func (r *Repository) Login(ctx context.Context, email, senha string) (*domain.Funcionario, error) {
	query := `
		SELECT f.id, f.nome, f.email, f.usuario, f.senha, c.id, c.nome
		FROM funcionario f
		JOIN cargo c ON c.id = f.cargo_id
		WHERE f.email = $1
	`
	var f domain.Funcionario
	var hashed string
	err := r.db.QueryRow(ctx, query, email).Scan(
		&f.ID,
		&f.Nome,
		&f.Email,
		&f.Usuario,
		&hashed,
		&f.Cargo.ID,
		&f.Cargo.Nome,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, funcionarios.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login funcionario: %w", err)
	}

	if err := r.hasher.Verify(hashed, senha); err != nil {
		return nil, funcionarios.ErrInvalidCredentials
	}
	return &f, nil
}

func scanFuncionarios(rows pgx.Rows) ([]domain.Funcionario, error) {
	result := make([]domain.Funcionario, 0)
	for rows.Next() {
		var f domain.Funcionario
		err := rows.Scan(
			&f.ID,
			&f.Nome,
			&f.Email,
			&f.Usuario,
			&f.Cargo.ID,
			&f.Cargo.Nome,
		)
		if err != nil {
			return nil, fmt.Errorf("scan funcionario: %w", err)
		}
		result = append(result, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate funcionarios: %w", err)
	}
	return result, nil
}

// translateUniqueViolation maps a 23505 on one of the funcionario
// unique constraints to its conflict error. Returns nil for anything
// else so callers fall through to generic wrapping.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}

	switch pgErr.ConstraintName {
	case "funcionario_email_key":
		return funcionarios.ErrEmailExists
	case "funcionario_usuario_key":
		return funcionarios.ErrUsuarioExists
	}
	return nil
}
