package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/brexcellence/intranet-server/internal/models"
	"github.com/brexcellence/intranet-server/internal/money"
	"github.com/brexcellence/intranet-server/internal/period"
	"github.com/brexcellence/intranet-server/internal/schema"
	"github.com/brexcellence/intranet-server/internal/sheets"
)

// kpiSheets maps the fixed KPI names to their backing sheets.
var kpiSheets = map[string]string{
	"previaFaturamento": schema.SheetForecasts,
	"faturamento":       schema.SheetBilling,
	"contasAReceber":    schema.SheetReceivables,
	"totalAPagar":       schema.SheetPayables,
}

// ErrUnknownKPI is returned for a KPI name outside the fixed mapping.
var ErrUnknownKPI = errors.New("KPI desconhecido")

// ComputeDashboard aggregates the financial sheets into the named KPI
// totals for one period. Missing sheets contribute zero instead of failing
// the whole aggregation; the result is plain formatted data.
func (s *DefaultService) ComputeDashboard(ctx context.Context, p period.Period) (*models.DashboardResponse, error) {
	forecasts, err := s.store.Read(ctx, schema.SheetForecasts)
	if err != nil {
		return nil, fmt.Errorf("error reading forecasts: %w", err)
	}
	billing, err := s.store.Read(ctx, schema.SheetBilling)
	if err != nil {
		return nil, fmt.Errorf("error reading billing: %w", err)
	}
	receivables, err := s.store.Read(ctx, schema.SheetReceivables)
	if err != nil {
		return nil, fmt.Errorf("error reading receivables: %w", err)
	}
	payables, err := s.store.Read(ctx, schema.SheetPayables)
	if err != nil {
		return nil, fmt.Errorf("error reading payables: %w", err)
	}

	totalRecebido, totalAReceber := s.splitReceivables(receivables, p)

	return &models.DashboardResponse{
		PreviaFaturamento:  money.FormatBRL(s.sumColumn(forecasts, p, schema.ColGrossValue, "", "")),
		FaturamentoBruto:   money.FormatBRL(s.sumColumn(billing, p, schema.ColGrossValue, "", "")),
		FaturamentoLiquido: money.FormatBRL(s.sumColumn(billing, p, schema.ColNetValue, "", "")),
		TotalAReceber:      money.FormatBRL(totalAReceber),
		TotalRecebido:      money.FormatBRL(totalRecebido),
		TotalAPagar:        money.FormatBRL(s.sumColumn(payables, p, schema.ColPayableValue, "", "")),
		TotalPago:          money.FormatBRL(s.sumColumn(payables, p, schema.ColPayableValue, schema.ColPayableStatus, "Pago")),
	}, nil
}

// sumColumn accumulates the value column over rows matching the period
// and, when filterCol is set, a case/trim-insensitive equality filter.
// A nil sheet or an absent value column sums to zero.
func (s *DefaultService) sumColumn(sheet *sheets.Sheet, p period.Period, valueCol, filterCol, filterValue string) decimal.Decimal {
	if sheet == nil {
		return decimal.Zero
	}

	valueIdx := sheet.Col(valueCol)
	if valueIdx == -1 {
		return decimal.Zero
	}

	filterIdx := -1
	if filterCol != "" {
		filterIdx = sheet.Col(filterCol)
	}

	if !period.HasColumns(sheet) {
		// Sheets without period columns aggregate unfiltered.
		s.log.Warn("sheet %q has no %s/%s columns; summing %q unfiltered",
			sheet.Name, period.MonthColumn, period.YearColumn, valueCol)
	}

	total := decimal.Zero
	for i := range sheet.Rows {
		if !p.MatchesRow(sheet, i) {
			continue
		}
		if filterIdx != -1 && filterValue != "" && sheet.Cell(i, filterIdx) != nil {
			if sheets.NormalizeText(sheet.Cell(i, filterIdx)) != sheets.NormalizeText(filterValue) {
				continue
			}
		}
		total = total.Add(money.ParseAmount(sheet.Cell(i, valueIdx)))
	}
	return total
}

// splitReceivables scans the receivables sheet once, accumulating rows
// with status "recebido" into the received total and "pendente"/"atrasado"
// into the outstanding total. Any other status counts toward neither.
// All four columns must be present or both totals stay zero.
func (s *DefaultService) splitReceivables(sheet *sheets.Sheet, p period.Period) (recebido, aReceber decimal.Decimal) {
	recebido, aReceber = decimal.Zero, decimal.Zero
	if sheet == nil {
		return recebido, aReceber
	}

	valorIdx := sheet.Col(schema.ColReceivableValue)
	statusIdx := sheet.Col(schema.ColReceivableStatus)
	if valorIdx == -1 || statusIdx == -1 || !period.HasColumns(sheet) {
		return recebido, aReceber
	}

	for i := range sheet.Rows {
		if !p.MatchesRow(sheet, i) {
			continue
		}
		value := money.ParseAmount(sheet.Cell(i, valorIdx))
		switch sheets.NormalizeText(sheet.Cell(i, statusIdx)) {
		case "recebido":
			recebido = recebido.Add(value)
		case "pendente", "atrasado":
			aReceber = aReceber.Add(value)
		}
	}
	return recebido, aReceber
}

// GetKpiDetails returns the raw rows backing one KPI for drill-down. A
// missing sheet is a recoverable payload, not a fault; an absent period or
// missing period columns return the rows unfiltered.
func (s *DefaultService) GetKpiDetails(ctx context.Context, kpiName string, p period.Period) (*models.KpiDetailsResponse, error) {
	sheetName, ok := kpiSheets[kpiName]
	if !ok {
		return nil, ErrUnknownKPI
	}

	sheet, err := s.store.Read(ctx, sheetName)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheetName, err)
	}
	if sheet == nil {
		return &models.KpiDetailsResponse{
			Headers: []string{},
			Data:    [][]interface{}{},
			Error:   fmt.Sprintf("A aba '%s' não foi encontrada.", sheetName),
		}, nil
	}

	resp := &models.KpiDetailsResponse{
		Headers:   sheet.Headers,
		Data:      [][]interface{}{},
		SheetName: sheetName,
	}

	if p.IsZero() || !period.HasColumns(sheet) {
		if !period.HasColumns(sheet) {
			s.log.Warn("sheet %q has no %s/%s columns; returning unfiltered rows",
				sheetName, period.MonthColumn, period.YearColumn)
		}
		resp.Data = sheet.Rows
		return resp, nil
	}

	for i := range sheet.Rows {
		if p.MatchesRow(sheet, i) {
			resp.Data = append(resp.Data, sheet.Rows[i])
		}
	}
	return resp, nil
}
