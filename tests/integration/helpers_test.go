//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/folhadev/funcionarios-api/internal/testutil"
	"github.com/stretchr/testify/require"
)

// funcionarioPayload builds a create/update request body around unique
// random credentials. Override fields on the returned maps as needed.
func funcionarioPayload(nome string, cargoID int64) map[string]interface{} {
	return map[string]interface{}{
		"funcionario": map[string]interface{}{
			"nomeFuncionario": nome,
			"email":           testutil.RandomEmail(),
			"senha":           "s3nh4-secreta",
			"usuario":         testutil.RandomUsuario(),
			"cargo": map[string]interface{}{
				"idCargo": cargoID,
			},
		},
	}
}

// createTestCargo inserts a cargo row directly; the API exposes cargos
// read-only, so tests seed them through the database.
func createTestCargo(t *testing.T, nome string) int64 {
	t.Helper()

	var id int64
	err := testDB.QueryRow(context.Background(),
		"INSERT INTO cargo (nome) VALUES ($1) RETURNING id", nome).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = testDB.Exec(context.Background(), "DELETE FROM cargo WHERE id = $1", id)
	})
	return id
}

type funcionarioResponse struct {
	ID      int64  `json:"idFuncionario"`
	Nome    string `json:"nomeFuncionario"`
	Email   string `json:"email"`
	Usuario string `json:"usuario"`
	Cargo   struct {
		ID   int64  `json:"idCargo"`
		Nome string `json:"nomeCargo"`
	} `json:"cargo"`
}

// createTestFuncionario creates a funcionario through the API and
// registers cleanup. The senha used is returned by funcionarioPayload.
func createTestFuncionario(t *testing.T, client *testutil.Client, payload map[string]interface{}) funcionarioResponse {
	t.Helper()

	resp, err := client.POST("/api/v1/funcionarios", payload)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created funcionarioResponse
	testutil.DecodeJSON(t, resp, &created)
	require.NotZero(t, created.ID)

	t.Cleanup(func() {
		_, _ = testDB.Exec(context.Background(), "DELETE FROM funcionario WHERE id = $1", created.ID)
	})
	return created
}

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Title      string `json:"title"`
	Detail     struct {
		Message string `json:"message"`
	} `json:"detail"`
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var payload errorResponse
	testutil.DecodeJSON(t, resp, &payload)
	return payload
}
