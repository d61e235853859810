package service

import (
	"context"

	"github.com/brexcellence/intranet-server/internal/models"
)

// GenerateProposalPDF renders a commercial proposal for the client and
// line items. Failures come back as a structured response, never as a
// fault past the operation boundary.
func (s *DefaultService) GenerateProposalPDF(ctx context.Context, req models.ProposalPDFRequest) (*models.DocumentResponse, error) {
	url, err := s.docs.GenerateProposal(req.Cliente, req.Items, req.Total)
	if err != nil {
		s.log.Error("proposal generation failed for %s: %v", req.Cliente.RazaoSocial, err)
		return &models.DocumentResponse{
			Success: false,
			Message: "Ocorreu um erro ao gerar o PDF: " + err.Error(),
		}, nil
	}
	return &models.DocumentResponse{Success: true, URL: url}, nil
}

// GenerateReportPDF renders a mini report; the director role routes the
// artifact to the director reports destination.
func (s *DefaultService) GenerateReportPDF(ctx context.Context, req models.ReportPDFRequest, userRole string) (*models.DocumentResponse, error) {
	url, err := s.docs.GenerateReport(req.Title, req.Period, req.Headers, req.Rows, userRole)
	if err != nil {
		s.log.Error("report generation failed for %q: %v", req.Title, err)
		return &models.DocumentResponse{
			Success: false,
			Message: "Ocorreu um erro ao gerar o PDF do relatório: " + err.Error(),
		}, nil
	}
	return &models.DocumentResponse{Success: true, URL: url}, nil
}
