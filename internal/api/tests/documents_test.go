package api_test

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brexcellence/intranet-server/internal/api/testutils"
	"github.com/brexcellence/intranet-server/internal/docgen"
	"github.com/brexcellence/intranet-server/internal/models"
)

func writeTemplate(t *testing.T, dir, name string, doc *docgen.Document) {
	t.Helper()
	require.NoError(t, doc.Save(filepath.Join(dir, name+".json")))
}

func proposalTemplate() *docgen.Document {
	return &docgen.Document{Elements: []docgen.Element{
		{Paragraph: &docgen.Paragraph{Text: "Proposta Comercial", Bold: true, Size: 16, Align: "C"}},
		{Paragraph: &docgen.Paragraph{Text: "Cliente: {{CLIENTE}} - CNPJ: {{CNPJ}} - Data: {{DATA}}"}},
		{Table: &docgen.Table{Rows: []docgen.TableRow{
			{Cells: []docgen.TableCell{
				{Text: "Item", Attrs: docgen.CellAttrs{Bold: true, Fill: true}},
				{Text: "Função", Attrs: docgen.CellAttrs{Bold: true, Fill: true}},
				{Text: "Escala", Attrs: docgen.CellAttrs{Bold: true, Fill: true}},
				{Text: "Qtd", Attrs: docgen.CellAttrs{Bold: true, Fill: true}},
				{Text: "Valor Unit.", Attrs: docgen.CellAttrs{Bold: true, Fill: true}},
				{Text: "Total", Attrs: docgen.CellAttrs{Bold: true, Fill: true}},
			}},
			{Cells: []docgen.TableCell{
				{Text: "1"}, {Text: "exemplo"}, {Text: "12x36"},
				{Text: "1"}, {Text: "R$ 0,00"}, {Text: "R$ 0,00"},
			}},
		}}},
		{Paragraph: &docgen.Paragraph{Text: "Total: {{TOTAL_GLOBAL}}"}},
	}}
}

func TestGenerateProposalPDF(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	writeTemplate(t, testCtx.TemplatesDir, docgen.ProposalTemplateName, proposalTemplate())

	req := models.ProposalPDFRequest{
		Cliente: models.ProposalClient{RazaoSocial: "Empresa Exemplo Ltda", CNPJ: "12.345.678/0001-90"},
		Items: []models.ProposalItem{
			{Cargo: "Vigilante", Escala: "12x36", Quantidade: 2, ValorUnitario: "R$ 2.100,00", TotalLinha: "R$ 4.200,00"},
		},
		Total: "R$ 4.200,00",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/documents/proposal",
		req,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.DocumentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success, resp.Message)
	assert.NotEmpty(t, resp.URL)

	// Only the PDF survives in the output directory.
	entries, err := os.ReadDir(testCtx.OutputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".pdf", filepath.Ext(entries[0].Name()))
}

func TestGenerateProposalPDFMissingTemplate(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	req := models.ProposalPDFRequest{
		Cliente: models.ProposalClient{RazaoSocial: "Empresa Exemplo Ltda"},
		Total:   "R$ 0,00",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/documents/proposal",
		req,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.DocumentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, docgen.ProposalTemplateName)
}

func TestGenerateReportPDFDirectorRouting(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	reportTemplate := &docgen.Document{Elements: []docgen.Element{
		{Paragraph: &docgen.Paragraph{Text: "{{TITULO_RELATORIO}}", Bold: true, Size: 14, Align: "C"}},
		{Paragraph: &docgen.Paragraph{Text: "{{PERIODO}}"}},
		{Table: &docgen.Table{Rows: []docgen.TableRow{
			{Cells: []docgen.TableCell{{Text: "Relatório", Attrs: docgen.CellAttrs{Bold: true}}}},
			{Cells: []docgen.TableCell{{Text: "exemplo"}}},
		}}},
	}}
	writeTemplate(t, testCtx.TemplatesDir, docgen.ReportTemplateName, reportTemplate)

	req := models.ReportPDFRequest{
		Title:   "Contas a Pagar",
		Period:  "Janeiro/2024",
		Headers: []string{"ID", "Valor"},
		Rows:    [][]string{{"PAG-1", "R$ 100,00"}},
	}

	// Director role routes the artifact to the director destination.
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/documents/report",
		req,
		testutils.AuthHeaders(testCtx.DirectorJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.DocumentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success, resp.Message)

	entries, err := os.ReadDir(testCtx.DirectorDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".pdf", filepath.Ext(entries[0].Name()))

	// A non-director lands in the regular output directory.
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/documents/report",
		req,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	entries, err = os.ReadDir(testCtx.OutputDir)
	require.NoError(t, err)
	var pdfs []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".pdf" {
			pdfs = append(pdfs, e.Name())
		}
	}
	require.Len(t, pdfs, 1)
}
