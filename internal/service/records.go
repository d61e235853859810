package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brexcellence/intranet-server/internal/models"
	"github.com/brexcellence/intranet-server/internal/money"
	"github.com/brexcellence/intranet-server/internal/schema"
	"github.com/brexcellence/intranet-server/internal/sheets"
)

// newID builds a prefixed collision-resistant identifier, e.g.
// "CLI-4f9d...". The prefix keeps rows recognizable to operators.
func newID(prefix string) string {
	return prefix + "-" + uuid.New().String()
}

// readRequired loads a sheet and converts absence into the operator-facing
// "aba não encontrada" error.
func (s *DefaultService) readRequired(ctx context.Context, name string) (*sheets.Sheet, error) {
	sheet, err := s.store.Read(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", name, err)
	}
	if sheet == nil {
		return nil, fmt.Errorf("a aba '%s' não foi encontrada", name)
	}
	return sheet, nil
}

// AddForecast appends one billing forecast row, stamped with the
// submitting user's name.
func (s *DefaultService) AddForecast(ctx context.Context, req models.ForecastRequest, userName string) (*models.StatusResponse, error) {
	if _, err := s.readRequired(ctx, schema.SheetForecasts); err != nil {
		return nil, err
	}

	row := []interface{}{
		newID("PREV"),
		s.now().UTC().Format(time.RFC3339),
		req.Mes,
		req.Ano,
		req.PostoNome,
		req.ValorBruto,
		req.Descricao,
		userName,
	}
	if err := s.store.AppendRow(ctx, schema.SheetForecasts, row); err != nil {
		return nil, fmt.Errorf("error appending forecast: %w", err)
	}

	return &models.StatusResponse{Success: true, Message: "Previsão de faturamento lançada com sucesso!"}, nil
}

// AddClient appends one client row and echoes the reference view of the
// new record.
func (s *DefaultService) AddClient(ctx context.Context, req models.ClientRequest) (*models.AddClientResponse, error) {
	if _, err := s.readRequired(ctx, schema.SheetClients); err != nil {
		return nil, err
	}

	id := newID("CLI")
	row := []interface{}{
		id,
		req.PostoID,
		req.CNPJ,
		req.RazaoSocial,
		req.NomeContato,
		req.Celular,
		req.Telefone,
		req.Email,
		req.Endereco,
	}
	if err := s.store.AppendRow(ctx, schema.SheetClients, row); err != nil {
		return nil, fmt.Errorf("error appending client: %w", err)
	}

	return &models.AddClientResponse{
		Success: true,
		Message: "Cliente cadastrado com sucesso!",
		NewClient: &models.Cliente{
			ID:          id,
			PostoID:     req.PostoID,
			RazaoSocial: req.RazaoSocial,
			CNPJ:        req.CNPJ,
		},
	}, nil
}

// SaveGeneratedProposal appends one audit row for a generated proposal.
func (s *DefaultService) SaveGeneratedProposal(ctx context.Context, req models.ProposalRecordRequest) (*models.StatusResponse, error) {
	if _, err := s.readRequired(ctx, schema.SheetProposals); err != nil {
		return nil, err
	}

	row := []interface{}{
		newID("PROP"),
		s.now().UTC().Format(time.RFC3339),
		req.ClienteNome,
		req.ValorTotal,
		"Gerada",
		req.Responsavel,
	}
	if err := s.store.AppendRow(ctx, schema.SheetProposals, row); err != nil {
		return nil, fmt.Errorf("error appending proposal record: %w", err)
	}

	return &models.StatusResponse{Success: true, Message: "Registro da proposta salvo com sucesso!"}, nil
}

// AddSalaryBaseEntry appends one convention salary row.
func (s *DefaultService) AddSalaryBaseEntry(ctx context.Context, req models.SalaryEntryRequest) (*models.AddSalaryEntryResponse, error) {
	if _, err := s.readRequired(ctx, schema.SheetSalaryBase); err != nil {
		return nil, err
	}

	id := newID("CONV")
	if err := s.store.AppendRow(ctx, schema.SheetSalaryBase, []interface{}{id, req.Nome, req.Salario}); err != nil {
		return nil, fmt.Errorf("falha ao cadastrar o novo cargo de convenção: %w", err)
	}

	return &models.AddSalaryEntryResponse{
		Success:  true,
		Message:  "Novo cargo de convenção adicionado!",
		NewEntry: &models.SalaryEntry{ID: id, Funcao: req.Nome, Salario: req.Salario},
	}, nil
}

// UpdateSalaryBaseEntries batch-updates convention salaries keyed by entry
// ID. Entries whose ID is not found are silently skipped.
func (s *DefaultService) UpdateSalaryBaseEntries(ctx context.Context, entries []models.SalaryUpdate) (*models.StatusResponse, error) {
	sheet, err := s.readRequired(ctx, schema.SheetSalaryBase)
	if err != nil {
		return nil, err
	}

	idCol := sheet.Col(schema.ColSalaryBaseID)
	salarioCol := sheet.Col(schema.ColConventionSalary)
	if idCol == -1 || salarioCol == -1 {
		return nil, fmt.Errorf("colunas '%s' ou '%s' não encontradas na aba",
			schema.ColSalaryBaseID, schema.ColConventionSalary)
	}

	rowByID := make(map[string]int, len(sheet.Rows))
	for i := range sheet.Rows {
		if id := sheets.CellText(sheet.Cell(i, idCol)); id != "" {
			rowByID[id] = i
		}
	}

	for _, entry := range entries {
		row, ok := rowByID[entry.ID]
		if !ok {
			continue
		}
		if err := s.store.UpdateCell(ctx, schema.SheetSalaryBase, row, salarioCol, entry.Salario); err != nil {
			return nil, fmt.Errorf("error updating salary for %s: %w", entry.ID, err)
		}
	}

	return &models.StatusResponse{Success: true, Message: "Base de salários convenção atualizada com sucesso!"}, nil
}

// GetInitialData bulk-reads the reference tables the frontend needs at
// startup. Missing sheets yield empty slices; rows missing their key
// fields are filtered out.
func (s *DefaultService) GetInitialData(ctx context.Context) (*models.InitialDataResponse, error) {
	resp := &models.InitialDataResponse{
		Postos:                []models.Posto{},
		Clientes:              []models.Cliente{},
		OrcamentoBase:         []models.SalaryEntry{},
		BaseSalariosConvencao: []models.SalaryEntry{},
	}

	postos, err := s.store.Read(ctx, schema.SheetPostos)
	if err != nil {
		return nil, fmt.Errorf("error reading postos: %w", err)
	}
	if postos != nil {
		idCol := postos.Col(schema.ColPostoID)
		nomeCol := postos.Col(schema.ColPostoName)
		for i := range postos.Rows {
			p := models.Posto{
				ID:   sheets.CellText(postos.Cell(i, idCol)),
				Nome: sheets.CellText(postos.Cell(i, nomeCol)),
			}
			if p.ID != "" && p.Nome != "" {
				resp.Postos = append(resp.Postos, p)
			}
		}
	}

	clientes, err := s.store.Read(ctx, schema.SheetClients)
	if err != nil {
		return nil, fmt.Errorf("error reading clientes: %w", err)
	}
	if clientes != nil {
		idCol := clientes.Col(schema.ColClientID)
		postoCol := clientes.Col(schema.ColClientPostoID)
		razaoCol := clientes.Col(schema.ColClientLegalName)
		cnpjCol := clientes.Col(schema.ColClientCNPJ)
		for i := range clientes.Rows {
			c := models.Cliente{
				ID:          sheets.CellText(clientes.Cell(i, idCol)),
				PostoID:     sheets.CellText(clientes.Cell(i, postoCol)),
				RazaoSocial: sheets.CellText(clientes.Cell(i, razaoCol)),
				CNPJ:        sheets.CellText(clientes.Cell(i, cnpjCol)),
			}
			if c.RazaoSocial != "" {
				resp.Clientes = append(resp.Clientes, c)
			}
		}
	}

	orcamento, err := s.store.Read(ctx, schema.SheetProposalBudget)
	if err != nil {
		return nil, fmt.Errorf("error reading orçamento base: %w", err)
	}
	if orcamento != nil {
		for i := range orcamento.Rows {
			entry := models.SalaryEntry{
				ID:      sheets.CellText(orcamento.Cell(i, 0)),
				Funcao:  sheets.CellText(orcamento.Cell(i, 1)),
				Salario: orcamento.Cell(i, 2),
			}
			if entry.Funcao != "" && money.ParseAmount(entry.Salario).IsPositive() {
				resp.OrcamentoBase = append(resp.OrcamentoBase, entry)
			}
		}
	}

	convencao, err := s.store.Read(ctx, schema.SheetSalaryBase)
	if err != nil {
		return nil, fmt.Errorf("error reading base salários convenção: %w", err)
	}
	if convencao != nil {
		for i := range convencao.Rows {
			entry := models.SalaryEntry{
				ID:      sheets.CellText(convencao.Cell(i, 0)),
				Funcao:  sheets.CellText(convencao.Cell(i, 1)),
				Salario: convencao.Cell(i, 2),
			}
			if entry.Funcao != "" {
				resp.BaseSalariosConvencao = append(resp.BaseSalariosConvencao, entry)
			}
		}
	}

	return resp, nil
}
