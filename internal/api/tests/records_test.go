package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brexcellence/intranet-server/internal/api/testutils"
	"github.com/brexcellence/intranet-server/internal/models"
	"github.com/brexcellence/intranet-server/internal/schema"
)

func TestAddForecast(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	req := models.ForecastRequest{
		Mes:        "Janeiro",
		Ano:        "2024",
		PostoNome:  "Posto A",
		ValorBruto: 1500.0,
		Descricao:  "Contrato novo",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/forecasts",
		req,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	sheet, err := testCtx.Store.Read(context.Background(), schema.SheetForecasts)
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	id, _ := sheet.Cell(0, 0).(string)
	assert.True(t, strings.HasPrefix(id, "PREV-"))
	// The submitting user's name from the token is stamped on the row.
	assert.Equal(t, "Test User", sheet.Cell(0, sheet.Col("Responsavel")))
}

func TestAddClient(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	req := models.ClientRequest{
		CNPJ:        "12.345.678/0001-90",
		RazaoSocial: "Empresa Exemplo Ltda",
		NomeContato: "Maria",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/clients",
		req,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.AddClientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.NewClient)
	assert.True(t, strings.HasPrefix(resp.NewClient.ID, "CLI-"))
	assert.Equal(t, "Empresa Exemplo Ltda", resp.NewClient.RazaoSocial)
}

func TestSalaryBaseLifecycle(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	ctx := context.Background()

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/salaries",
		models.SalaryEntryRequest{Nome: "Vigilante", Salario: 2100.0},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var addResp models.AddSalaryEntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &addResp))
	require.NotNil(t, addResp.NewEntry)

	// Batch update: one real ID, one unknown ID that must be skipped.
	update := models.UpdateSalariesRequest{Entries: []models.SalaryUpdate{
		{ID: addResp.NewEntry.ID, Salario: 2300.0},
		{ID: "CONV-does-not-exist", Salario: 9999.0},
	}}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/salaries",
		update,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	sheet, err := testCtx.Store.Read(ctx, schema.SheetSalaryBase)
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, 2300.0, sheet.Cell(0, sheet.Col(schema.ColConventionSalary)))
}

func TestGetInitialData(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	ctx := context.Background()

	require.NoError(t, testCtx.Store.AppendRow(ctx, schema.SheetPostos, []interface{}{"PST-1", "Posto Central"}))
	// Missing NOME: filtered out.
	require.NoError(t, testCtx.Store.AppendRow(ctx, schema.SheetPostos, []interface{}{"PST-2", ""}))
	require.NoError(t, testCtx.Store.AppendRow(ctx, schema.SheetProposalBudget, []interface{}{"ORC-1", "Porteiro", float64(1800)}))
	// Zero salary: filtered out of the proposal budget.
	require.NoError(t, testCtx.Store.AppendRow(ctx, schema.SheetProposalBudget, []interface{}{"ORC-2", "Zelador", float64(0)}))

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/data/initial",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.InitialDataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Postos, 1)
	assert.Equal(t, "Posto Central", resp.Postos[0].Nome)
	require.Len(t, resp.OrcamentoBase, 1)
	assert.Equal(t, "Porteiro", resp.OrcamentoBase[0].Funcao)
	assert.Empty(t, resp.Clientes)
}
