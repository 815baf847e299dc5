// Package cargos exposes read-only access to the cargo (role) table.
// Cargos are reference data for this service: they are looked up and
// listed, never created or mutated here.
package cargos

import (
	"context"
	"errors"

	"github.com/folhadev/funcionarios-api/internal/domain"
)

// ErrCargoNotFound is returned when no cargo matches the given id.
var ErrCargoNotFound = errors.New("cargo not found")

// Repository defines the interface for cargo data access.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Cargo, error)
	List(ctx context.Context) ([]domain.Cargo, error)
}
