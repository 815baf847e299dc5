package funcionarios

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/folhadev/funcionarios-api/internal/cargos"
	"github.com/folhadev/funcionarios-api/internal/domain"
	"github.com/folhadev/funcionarios-api/internal/pkg/ctxlog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Input carries the fields of a create or update request after
// validation. Senha holds plaintext; it must never be logged.
type Input struct {
	Nome    string
	Email   string
	Senha   string
	Usuario string
	CargoID int64
}

// Service orchestrates the employee workflow over the persistence
// gateway, cargo lookup, and token issuer.
type Service struct {
	repo     Repository
	cargos   CargoLookup
	issuer   TokenIssuer
	collator *collate.Collator
}

// NewService creates a new funcionarios service.
func NewService(repo Repository, cargoLookup CargoLookup, issuer TokenIssuer) *Service {
	return &Service{
		repo:     repo,
		cargos:   cargoLookup,
		issuer:   issuer,
		collator: collate.New(language.BrazilianPortuguese),
	}
}

// Create runs the business checks in a fixed order — cargo reference,
// then email uniqueness, then usuario uniqueness; the first failure
// wins — and persists the assembled funcionario. The uniqueness checks
// are advisory: the table constraints remain authoritative and the
// gateway translates their violations to the same conflict errors.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Funcionario, error) {
	cargo, err := s.cargos.GetByID(ctx, in.CargoID)
	if err != nil {
		if errors.Is(err, cargos.ErrCargoNotFound) {
			return nil, fmt.Errorf("cargo %d: %w", in.CargoID, cargos.ErrCargoNotFound)
		}
		return nil, fmt.Errorf("lookup cargo: %w", err)
	}

	byEmail, err := s.repo.FindByField(ctx, LookupFieldEmail, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email uniqueness: %w", err)
	}
	if len(byEmail) > 0 {
		return nil, ErrEmailExists
	}

	byUsuario, err := s.repo.FindByField(ctx, LookupFieldUsuario, in.Usuario)
	if err != nil {
		return nil, fmt.Errorf("check usuario uniqueness: %w", err)
	}
	if len(byUsuario) > 0 {
		return nil, ErrUsuarioExists
	}

	f := &domain.Funcionario{
		Nome:    in.Nome,
		Email:   in.Email,
		Usuario: in.Usuario,
		Senha:   in.Senha,
		Cargo:   *cargo,
	}

	id, err := s.repo.Create(ctx, f)
	if err != nil {
		return nil, err
	}
	f.ID = id
	f.Senha = ""

	ctxlog.FromContext(ctx).Info("funcionario created", "id", id, "usuario", f.Usuario)
	return f, nil
}

// Login verifies credentials through the gateway and issues a session
// token. Unknown email and wrong password surface identically so the
// response never reveals whether an account exists.
func (s *Service) Login(ctx context.Context, email, senha string) (*domain.Claims, string, error) {
	f, err := s.repo.Login(ctx, email, senha)
	if err != nil {
		return nil, "", err
	}

	claims := &domain.Claims{
		Email:   f.Email,
		Usuario: f.Usuario,
		ID:      f.ID,
	}
	if f.Cargo.Nome != "" {
		claims.Cargo = &f.Cargo.Nome
	}
	if f.Nome != "" {
		claims.Nome = &f.Nome
	}

	token, err := s.issuer.GerarToken(claims)
	if err != nil {
		return nil, "", fmt.Errorf("gerar token: %w", err)
	}

	ctxlog.FromContext(ctx).Info("funcionario logged in", "id", f.ID)
	return claims, token, nil
}

// FindAll returns every funcionario joined with its cargo, ordered by
// display name under pt-BR collation so accented names sort naturally.
func (s *Service) FindAll(ctx context.Context) ([]domain.Funcionario, error) {
	result, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(result, func(i, j int) bool {
		return s.collator.CompareString(result[i].Nome, result[j].Nome) < 0
	})
	return result, nil
}

// FindByID returns one funcionario or ErrFuncionarioNotFound.
func (s *Service) FindByID(ctx context.Context, id int64) (*domain.Funcionario, error) {
	return s.repo.FindByID(ctx, id)
}

// Update overwrites the funcionario's fields. Unlike Create, no cargo
// or uniqueness pre-checks run here — the table constraints are the
// only guard. An empty Senha keeps the stored hash.
func (s *Service) Update(ctx context.Context, id int64, in Input) (bool, error) {
	f := &domain.Funcionario{
		ID:      id,
		Nome:    in.Nome,
		Email:   in.Email,
		Usuario: in.Usuario,
		Senha:   in.Senha,
		Cargo:   domain.Cargo{ID: in.CargoID},
	}

	updated, err := s.repo.Update(ctx, f)
	if err != nil {
		return false, err
	}
	if updated {
		ctxlog.FromContext(ctx).Info("funcionario updated", "id", id)
	}
	return updated, nil
}

// Delete removes by id. A missing id yields false, not an error.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		ctxlog.FromContext(ctx).Info("funcionario deleted", "id", id)
	}
	return deleted, nil
}
