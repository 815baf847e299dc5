package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/folhadev/funcionarios-api/internal/domain"
	"github.com/folhadev/funcionarios-api/internal/funcionarios"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHasher makes hashing deterministic so statement arguments can be
// asserted exactly. Real bcrypt behavior is covered in internal/auth.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (fakeHasher) Verify(hashed, plain string) error {
	if hashed != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *Repository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewRepository(mock, fakeHasher{})
}

func anaFuncionario() *domain.Funcionario {
	return &domain.Funcionario{
		Nome:    "Ana",
		Email:   "ana@x.com",
		Usuario: "ana1",
		Senha:   "secret",
		Cargo:   domain.Cargo{ID: 1, Nome: "Analista"},
	}
}

func TestCreate_HashesSenhaBeforeInsert(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO funcionario`).
		WithArgs("Ana", "ana@x.com", "hashed:secret", "ana1", int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.Create(context.Background(), anaFuncionario())

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolationBecomesConflict(t *testing.T) {
	tests := []struct {
		constraint string
		want       error
	}{
		{constraint: "funcionario_email_key", want: funcionarios.ErrEmailExists},
		{constraint: "funcionario_usuario_key", want: funcionarios.ErrUsuarioExists},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			mock, repo := newMockRepo(t)

			mock.ExpectQuery(`INSERT INTO funcionario`).
				WithArgs("Ana", "ana@x.com", "hashed:secret", "ana1", int64(1)).
				WillReturnError(&pgconn.PgError{
					Code:           pgerrcode.UniqueViolation,
					ConstraintName: tt.constraint,
				})

			_, err := repo.Create(context.Background(), anaFuncionario())

			assert.ErrorIs(t, err, tt.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdate_WithSenhaRehashes(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`UPDATE funcionario\s+SET nome = \$2, email = \$3, senha = \$4`).
		WithArgs(int64(5), "Ana", "ana@x.com", "hashed:newpass", "ana1", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	f := anaFuncionario()
	f.ID = 5
	f.Senha = "newpass"

	updated, err := repo.Update(context.Background(), f)

	require.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_WithoutSenhaKeepsStoredHash(t *testing.T) {
	mock, repo := newMockRepo(t)

	// the statement must not touch the senha column at all
	mock.ExpectExec(`UPDATE funcionario\s+SET nome = \$2, email = \$3, usuario = \$4`).
		WithArgs(int64(5), "Ana", "ana@x.com", "ana1", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	f := anaFuncionario()
	f.ID = 5
	f.Senha = ""

	updated, err := repo.Update(context.Background(), f)

	require.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NoMatchingRow(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`UPDATE funcionario`).
		WithArgs(int64(42), "Ana", "ana@x.com", "ana1", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	f := anaFuncionario()
	f.ID = 42
	f.Senha = ""

	updated, err := repo.Update(context.Background(), f)

	require.NoError(t, err)
	assert.False(t, updated)
}

func TestDelete_ReportsWhetherRowExisted(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM funcionario WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM funcionario WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := repo.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, deleted, "missing id is false, not an error")
}

func TestFindByID_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT f.id, f.nome, f.email, f.usuario, c.id, c.nome`).
		WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 42)

	assert.ErrorIs(t, err, funcionarios.ErrFuncionarioNotFound)
}

func TestFindAll_JoinsCargo(t *testing.T) {
	mock, repo := newMockRepo(t)

	rows := pgxmock.NewRows([]string{"id", "nome", "email", "usuario", "cargo_id", "cargo_nome"}).
		AddRow(int64(1), "Ana", "ana@x.com", "ana1", int64(1), "Analista").
		AddRow(int64(2), "Bia", "bia@x.com", "bia1", int64(2), "Gerente")

	mock.ExpectQuery(`FROM funcionario f\s+JOIN cargo c ON c.id = f.cargo_id`).
		WillReturnRows(rows)

	result, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Analista", result[0].Cargo.Nome)
	assert.Equal(t, "Gerente", result[1].Cargo.Nome)
	assert.Empty(t, result[0].Senha)
}

func TestFindByField_AllowListedFields(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`WHERE f.email = \$1`).
		WithArgs("ana@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "nome", "email", "usuario", "cargo_id", "cargo_nome"}).
			AddRow(int64(1), "Ana", "ana@x.com", "ana1", int64(1), "Analista"))

	result, err := repo.FindByField(context.Background(), funcionarios.LookupFieldEmail, "ana@x.com")

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "ana1", result[0].Usuario)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByField_RejectsUnknownField(t *testing.T) {
	mock, repo := newMockRepo(t)

	_, err := repo.FindByField(context.Background(), funcionarios.LookupField("senha; DROP TABLE funcionario"), "x")

	assert.ErrorIs(t, err, funcionarios.ErrInvalidLookupField)
	assert.NoError(t, mock.ExpectationsWereMet(), "no query may reach the database")
}

func loginRows(senhaHash string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "nome", "email", "usuario", "senha", "cargo_id", "cargo_nome"}).
		AddRow(int64(3), "Ana", "ana@x.com", "ana1", senhaHash, int64(1), "Analista")
}

func TestLogin_Success(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`WHERE f.email = \$1`).
		WithArgs("ana@x.com").
		WillReturnRows(loginRows("hashed:secret"))

	f, err := repo.Login(context.Background(), "ana@x.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, int64(3), f.ID)
	assert.Equal(t, "Analista", f.Cargo.Nome)
	assert.Empty(t, f.Senha, "hash must not leave the gateway")
}

func TestLogin_UnknownEmailAndWrongPasswordIdentical(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`WHERE f.email = \$1`).
		WithArgs("ghost@x.com").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`WHERE f.email = \$1`).
		WithArgs("ana@x.com").
		WillReturnRows(loginRows("hashed:secret"))

	_, unknownErr := repo.Login(context.Background(), "ghost@x.com", "secret")
	_, wrongErr := repo.Login(context.Background(), "ana@x.com", "wrong")

	assert.ErrorIs(t, unknownErr, funcionarios.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, funcionarios.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestCreate_GenericDatabaseErrorWrapped(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO funcionario`).
		WithArgs("Ana", "ana@x.com", "hashed:secret", "ana1", int64(1)).
		WillReturnError(fmt.Errorf("connection reset"))

	_, err := repo.Create(context.Background(), anaFuncionario())

	require.Error(t, err)
	assert.NotErrorIs(t, err, funcionarios.ErrEmailExists)
	assert.Contains(t, err.Error(), "create funcionario")
}
