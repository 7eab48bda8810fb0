package report

import (
	"encoding/base64"

	"boleto-management-backend/internal/models"
	"boleto-management-backend/internal/repository"
)

type Service struct {
	boletos *repository.BoletoRepository
}

func NewService(boletos *repository.BoletoRepository) *Service {
	return &Service{boletos: boletos}
}

// Search returns the boletos matching the filter, structured mode.
func (s *Service) Search(filter repository.BoletoFilter) ([]models.Boleto, error) {
	return s.boletos.Search(filter)
}

// RenderPDFBase64 runs the same query and renders the result set as a tabular
// PDF, returned base64-encoded for embedding in a single-field JSON result.
func (s *Service) RenderPDFBase64(filter repository.BoletoFilter) (string, error) {
	boletos, err := s.boletos.Search(filter)
	if err != nil {
		return "", err
	}
	raw, err := renderReportPDF(boletos)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
