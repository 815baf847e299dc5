// Package postgres provides the PostgreSQL implementation of the
// cargos repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/folhadev/funcionarios-api/internal/cargos"
	"github.com/folhadev/funcionarios-api/internal/domain"
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

// Repository implements cargos.Repository over PostgreSQL.
type Repository struct {
	db DB
}

// NewRepository creates a new PostgreSQL cargos repository.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a cargo by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Cargo, error) {
	query := `SELECT id, nome FROM cargo WHERE id = $1`

	var cargo domain.Cargo
	err := r.db.QueryRow(ctx, query, id).Scan(&cargo.ID, &cargo.Nome)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cargos.ErrCargoNotFound
		}
		return nil, fmt.Errorf("get cargo by id: %w", err)
	}
	return &cargo, nil
}

// List retrieves every cargo ordered by id.
func (r *Repository) List(ctx context.Context) ([]domain.Cargo, error) {
	query := `SELECT id, nome FROM cargo ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cargos: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Cargo, 0)
	for rows.Next() {
		var cargo domain.Cargo
		if err := rows.Scan(&cargo.ID, &cargo.Nome); err != nil {
			return nil, fmt.Errorf("scan cargo: %w", err)
		}
		result = append(result, cargo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cargos: %w", err)
	}
	return result, nil
}
