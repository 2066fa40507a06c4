package importer

import (
	"fmt"
	"io"

	"github.com/lbarreto/equifinance/internal/importer/planilha"
	"github.com/lbarreto/equifinance/internal/transaction"
)

type Service struct {
	planilhaImporter Importer
}

func NewService() *Service {
	return &Service{
		planilhaImporter: planilha.New(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]transaction.CreateParams, error) {
	var imp Importer

	switch format {
	case FormatPlanilha:
		imp = s.planilhaImporter
	default:
		return nil, fmt.Errorf("unknown import format: %s", format)
	}

	return imp.Parse(r)
}
