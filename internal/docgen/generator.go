package docgen

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/brexcellence/intranet-server/internal/models"
	"github.com/brexcellence/intranet-server/internal/schema"
	"github.com/brexcellence/intranet-server/internal/utils"
)

// Template document names looked up inside the templates directory.
const (
	ProposalTemplateName = "Proposta Comercial Template"
	ReportTemplateName   = "Relatorios Template"
)

// servicesTableMarker identifies the services table inside a proposal
// template by its second header cell.
const servicesTableMarker = "FUNÇÃO"

// Document dates use the São Paulo offset regardless of server timezone.
var saoPaulo = time.FixedZone("GMT-3", -3*60*60)

// Config locates templates and output destinations.
type Config struct {
	TemplatesDir string
	OutputDir    string
	// DirectorDir receives reports generated by the director role.
	DirectorDir string
	// BaseURL prefixes returned artifact URLs; when empty the local file
	// path is returned instead.
	BaseURL string
}

// Generator copies templates, substitutes placeholders and renders PDFs.
type Generator struct {
	cfg Config
	log *utils.Logger
	now func() time.Time
}

// NewGenerator creates a new document generator
func NewGenerator(cfg Config, log *utils.Logger) *Generator {
	return &Generator{cfg: cfg, log: log, now: time.Now}
}

// GenerateProposal produces a commercial proposal PDF for the client and
// line items, returning the artifact URL.
func (g *Generator) GenerateProposal(client models.ProposalClient, items []models.ProposalItem, total string) (string, error) {
	doc, err := g.loadTemplate(ProposalTemplateName)
	if err != nil {
		return "", err
	}

	today := g.now().In(saoPaulo).Format("02/01/2006")
	docName := fmt.Sprintf("Proposta - %s - %s", client.RazaoSocial, today)

	cnpj := client.CNPJ
	if strings.TrimSpace(cnpj) == "" {
		cnpj = "Não informado"
	}

	doc.ReplaceText("{{CLIENTE}}", client.RazaoSocial)
	doc.ReplaceText("{{CNPJ}}", cnpj)
	doc.ReplaceText("{{DATA}}", today)
	doc.ReplaceText("{{TOTAL_SERVICOS}}", total)
	doc.ReplaceText("{{TOTAL_BENEFICIOS}}", "R$ 0,00")
	doc.ReplaceText("{{TOTAL_GLOBAL}}", total)

	servicesTable := doc.FindServicesTable(servicesTableMarker)
	if servicesTable != nil && len(servicesTable.Rows) > 1 {
		templateRow := servicesTable.Rows[1]
		for i, item := range items {
			servicesTable.AppendClonedRow(templateRow, []string{
				strconv.Itoa(i + 1),
				item.Cargo,
				item.Escala,
				asText(item.Quantidade),
				asText(item.ValorUnitario),
				asText(item.TotalLinha),
			})
		}
		servicesTable.RemoveRow(1)
	}

	return g.render(doc, docName, g.cfg.OutputDir)
}

// GenerateReport produces a mini report PDF: a literal bold header row
// followed by the data rows, cloned from the template's example row.
// The director role routes output to the director reports destination.
func (g *Generator) GenerateReport(title, reportPeriod string, headers []string, rows [][]string, userRole string) (string, error) {
	doc, err := g.loadTemplate(ReportTemplateName)
	if err != nil {
		return "", err
	}

	today := g.now().In(saoPaulo).Format("02_01_2006")
	docName := fmt.Sprintf("Relatório - %s - %s", title, today)

	outputDir := g.cfg.OutputDir
	if userRole == schema.RoleDirector {
		outputDir = g.cfg.DirectorDir
	}

	doc.ReplaceText("{{TITULO_RELATORIO}}", strings.ToUpper(title))
	doc.ReplaceText("{{PERIODO}}", "Período do Filtro: "+reportPeriod)

	tables := doc.Tables()
	if len(tables) > 0 {
		reportTable := tables[0]
		if len(reportTable.Rows) > 1 {
			templateRow := reportTable.Rows[1]

			headerRow := TableRow{}
			for _, h := range headers {
				headerRow.Cells = append(headerRow.Cells, TableCell{Text: h, Attrs: CellAttrs{Bold: true}})
			}
			reportTable.InsertRow(1, headerRow)

			for _, rowData := range rows {
				reportTable.AppendClonedRow(templateRow, rowData)
			}
			// The example row sits at index 2 after the header insertion.
			reportTable.RemoveRow(2)
		}
	}

	return g.render(doc, docName, outputDir)
}

// loadTemplate locates a template document by exact name.
func (g *Generator) loadTemplate(name string) (*Document, error) {
	path := filepath.Join(g.cfg.TemplatesDir, name+".json")
	doc, err := LoadDocument(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("template %q não encontrado na pasta de templates", name)
		}
		return nil, err
	}
	return doc, nil
}

// render saves the working copy, renders it to PDF and removes the copy.
// The copy is removed on every exit path; only the PDF is durable.
func (g *Generator) render(doc *Document, docName, outputDir string) (url string, err error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}

	base := sanitizeFileName(docName)
	copyPath := filepath.Join(outputDir, base+".json")
	pdfPath := filepath.Join(outputDir, base+".pdf")

	if err := doc.Save(copyPath); err != nil {
		return "", fmt.Errorf("saving working copy: %w", err)
	}
	defer func() {
		if rmErr := os.Remove(copyPath); rmErr != nil && err == nil {
			g.log.Warn("failed to remove working copy %s: %v", copyPath, rmErr)
		}
	}()

	if err := renderPDF(doc, pdfPath); err != nil {
		return "", fmt.Errorf("rendering PDF: %w", err)
	}

	if g.cfg.BaseURL != "" {
		return strings.TrimRight(g.cfg.BaseURL, "/") + "/" + base + ".pdf", nil
	}
	return pdfPath, nil
}

// sanitizeFileName keeps the deterministic document name printable as a
// file name; slashes in the display date become dashes on disk.
func sanitizeFileName(name string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", "\x00", "")
	return replacer.Replace(name)
}
